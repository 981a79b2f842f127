// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "CREDIND_LOG_LEVEL"
	EnvLogTimestamp = "CREDIND_LOG_TIMESTAMP"
	EnvLogNoColor   = "CREDIND_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Settings controls logger output.
type Settings struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
}

var configureOnce sync.Once

// ConfigureRuntime installs the runtime logger from config file settings.
// An empty level keeps the default. Environment variables take precedence.
func ConfigureRuntime(level string, timestamp, noColor bool) {
	s := DefaultSettings(ProfileRuntime)
	if lvl, ok := ParseLevel(level); ok {
		s.Level = lvl
	}
	s.Timestamp = timestamp
	s.NoColor = noColor
	Configure(s)
}

func ConfigureTests() {
	Configure(DefaultSettings(ProfileTest))
}

// Configure applies env overrides to s and installs the result as the
// global logger. Only the first call has any effect.
func Configure(s Settings) {
	configureOnce.Do(func() {
		applyEnvOverrides(&s)
		zerolog.SetGlobalLevel(s.Level)
		log.Logger = New(s, os.Stderr)
	})
}

// New builds a console logger writing to w.
func New(s Settings, w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: s.NoColor, TimeFormat: time.RFC3339}
	if !s.Timestamp {
		out.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	logger := zerolog.New(out).Level(s.Level)
	if s.Timestamp {
		logger = logger.With().Timestamp().Logger()
	}
	return logger
}

func DefaultSettings(profile Profile) Settings {
	switch profile {
	case ProfileTest:
		return Settings{Level: zerolog.DebugLevel, Timestamp: false, NoColor: true}
	default:
		return Settings{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func applyEnvOverrides(s *Settings) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		s.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		s.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		s.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level. ok is false for empty
// or unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
