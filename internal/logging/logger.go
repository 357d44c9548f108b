package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel names the environment variable holding the log level.
	EnvLogLevel = "BONE_RENAMER_LOG_LEVEL"
	// EnvJSONLog switches to JSON output when set to "1".
	EnvJSONLog = "BONE_RENAMER_JSON_LOG"

	// DefaultLevel is used when neither flag, config nor environment set one.
	DefaultLevel = "warn"

	textPrefix = "bone-renamer | "
)

// NewLogger creates an hclog logger with the standard settings.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(EnvJSONLog) == "1"

	if !jsonFormat {
		output = NewPrefixWriter(textPrefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the first non-empty level among the candidates, then
// the environment, then DefaultLevel.
func GetLogLevel(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		return level
	}

	return DefaultLevel
}
