// Package pkg provides shared utilities for the usbdesc descriptor builder.
//
// This package contains functionality used across the descriptor, class,
// and command packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for descriptor construction failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with build-time context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentAssembler, "configuration built", "total", n)
//
// # Errors
//
// Construction failures are reported as sentinel values so callers can
// distinguish budget exhaustion from malformed contributors:
//
//	if errors.Is(err, pkg.ErrNotEnoughEndpoints) {
//	    // Device cannot enumerate with this class combination.
//	}
package pkg
