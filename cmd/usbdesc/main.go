// Command usbdesc builds the descriptor set for a composite USB device
// definition and prints the resulting blobs as hex dumps. It is a
// development aid for inspecting exactly what a device with a given
// class combination would present to the host.
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/efficientgo/core/errors"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ardnew/usbdesc/descriptor"
	"github.com/ardnew/usbdesc/descriptor/class/cdc"
	"github.com/ardnew/usbdesc/descriptor/class/hid"
	"github.com/ardnew/usbdesc/descriptor/class/midi"
	"github.com/ardnew/usbdesc/descriptor/class/msc"
	"github.com/ardnew/usbdesc/pkg"
)

const (
	logLevelDebug = "debug"
	logLevelInfo  = "info"
	logLevelWarn  = "warn"
	logLevelError = "error"
)

var availableLogLevels = strings.Join([]string{
	logLevelDebug,
	logLevelInfo,
	logLevelWarn,
	logLevelError,
}, ", ")

// Main is the principal function for the binary, wrapped only by `main` for convenience.
func Main() error {
	if err := initConfig(); err != nil {
		return err
	}

	switch logLevel := viper.GetString("log-level"); logLevel {
	case logLevelDebug:
		pkg.SetLogLevel(slog.LevelDebug)
	case logLevelInfo:
		pkg.SetLogLevel(slog.LevelInfo)
	case logLevelWarn:
		pkg.SetLogLevel(slog.LevelWarn)
	case logLevelError:
		pkg.SetLogLevel(slog.LevelError)
	default:
		return fmt.Errorf("log level %v unknown; possible values are: %s", logLevel, availableLogLevels)
	}

	if logFile := viper.GetString("log-file"); logFile != "" {
		pkg.SetLogger(pkg.NewLogger(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
		}, nil))
	}

	uid, err := hex.DecodeString(viper.GetString("uid"))
	if err != nil {
		return errors.Wrap(err, "failed to parse uid")
	}

	classes, err := getConfiguredClasses()
	if err != nil {
		return err
	}

	product := viper.GetString("product")
	cfg := &descriptor.Config{
		VendorID:       uint16(viper.GetUint32("vid")),
		ProductID:      uint16(viper.GetUint32("pid")),
		Manufacturer:   viper.GetString("manufacturer"),
		Product:        product,
		UID:            uid,
		EndpointBudget: uint8(viper.GetUint32("endpoint-budget")),
	}

	if cc, ok := classes[classConsole]; ok && cc.Enabled {
		cfg.SerialConsole = cdc.NewACM(classLabel(cc, product+" console"))
	}
	if cc, ok := classes[classData]; ok && cc.Enabled {
		cfg.SerialData = cdc.NewACM(classLabel(cc, product+" data"))
	}
	if cc, ok := classes[classStorage]; ok && cc.Enabled {
		cfg.MassStorage = msc.New(classLabel(cc, product+" storage"))
	}
	if cc, ok := classes[classMIDI]; ok && cc.Enabled {
		cfg.MIDI = midi.New(classLabel(cc, product+" MIDI"))
	}
	if cc, ok := classes[classHID]; ok && cc.Enabled {
		report, err := hex.DecodeString(cc.Report)
		if err != nil {
			return errors.Wrap(err, "failed to parse hid report descriptor")
		}
		if len(report) == 0 {
			return errors.New("hid class enabled without a report descriptor")
		}
		cfg.HID = hid.New(classLabel(cc, product+" HID"), report)
	}

	l, err := descriptor.Build(cfg)
	if err != nil {
		return errors.Wrap(err, "descriptor build failed")
	}

	fmt.Printf("device descriptor (%d bytes):\n%s\n",
		len(l.DeviceDescriptor()), hex.Dump(l.DeviceDescriptor()))
	fmt.Printf("configuration descriptor (%d bytes):\n%s\n",
		len(l.ConfigurationDescriptor()), hex.Dump(l.ConfigurationDescriptor()))

	for index := uint8(1); ; index++ {
		blob := l.String(index)
		if blob == nil {
			break
		}
		fmt.Printf("string descriptor %d (%d bytes):\n%s\n",
			index, len(blob), hex.Dump(blob))
	}

	if report := l.HIDReportDescriptor(); report != nil {
		fmt.Printf("hid report descriptor (%d bytes):\n%s\n",
			len(report), hex.Dump(report))
	}

	return nil
}

// classLabel returns the configured name for a class, or the fallback
// when the definition leaves it empty.
func classLabel(cc ClassConfig, fallback string) string {
	if cc.Name != "" {
		return cc.Name
	}
	return fallback
}

func main() {
	if err := Main(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}
