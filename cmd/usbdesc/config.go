package main

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Class keys recognized in the device definition, in the fixed order the
// assembler serializes them.
const (
	classConsole = "console"
	classData    = "data"
	classStorage = "storage"
	classMIDI    = "midi"
	classHID     = "hid"
)

// ClassConfig is the per-class section of the device definition.
type ClassConfig struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"`
	Report  string `json:"report"` // hex-encoded HID report descriptor
}

// initConfig defines config flags, config file, and envs
func initConfig() error {
	cfgFile := flag.String("config", "", "Path to the device definition file.")
	flag.Uint16("vid", 0x239A, "USB vendor ID.")
	flag.Uint16("pid", 0x80F4, "USB product ID.")
	flag.String("manufacturer", "usbdesc", "Manufacturer string (ASCII).")
	flag.String("product", "usbdesc composite device", "Product string (ASCII).")
	flag.String("uid", "", "Hardware unique ID as hex digits.")
	flag.Uint8("endpoint-budget", 8, "Endpoint numbers available beyond the control endpoint.")
	flag.String("log-level", logLevelWarn, fmt.Sprintf("Log level to use. Possible values: %s", availableLogLevels))
	flag.String("log-file", "", "Write logs to this file (rotated) instead of stderr.")

	flag.Parse()
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		return fmt.Errorf("failed to bind config: %w", err)
	}

	if *cfgFile != "" {
		viper.SetConfigFile(*cfgFile)
	} else {
		viper.SetConfigName("usbdesc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/usbdesc/")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
		} else {
			// Config file was found but another error was produced
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// getConfiguredClasses decodes the classes section of the device
// definition. Classes absent from the definition are disabled.
func getConfiguredClasses() (map[string]ClassConfig, error) {
	classDefs := viper.GetStringMap("classes")
	result := make(map[string]ClassConfig, len(classDefs))

	for key, raw := range classDefs {
		switch key {
		case classConsole, classData, classStorage, classMIDI, classHID:
		default:
			return nil, fmt.Errorf("unknown class %q; possible values: %s, %s, %s, %s, %s",
				key, classConsole, classData, classStorage, classMIDI, classHID)
		}

		var cc ClassConfig
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &cc,
			TagName: "json",
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("failed to decode class %q: %w", key, err)
		}
		result[key] = cc
	}
	return result, nil
}
