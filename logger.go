// logger.go
// Package shebang provides shared utilities for the go_shebang package.
package shebang

import (
	_ "embed"

	"github.com/baditaflorin/go_shebang/internal/adapters/logger"
	"github.com/baditaflorin/go_shebang/internal/ports"
)

//go:embed LICENSE
var licenseText string

// LicenseText returns the license the module is distributed under.
func LicenseText() string {
	return licenseText
}

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}
