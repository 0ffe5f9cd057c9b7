package spatialign

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Warning describes a non-fatal issue encountered while transforming.
// Warnings indicate approximations or deprecated usage; the returned data
// is still valid.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// FormatWarnings renders warnings as a single semicolon-separated string.
func FormatWarnings(ws []Warning) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.Message
	}
	return strings.Join(parts, "; ")
}

// warningCollector accumulates warnings for a single Apply call and
// mirrors them to the engine logger.
type warningCollector struct {
	logger   *log.Logger
	warnings []Warning
}

func (c *warningCollector) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, Warning{Message: msg})
	if c.logger != nil {
		c.logger.Warn(msg)
	}
}
