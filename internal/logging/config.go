// Package logging configures the diagnostic logger.
//
// Operator-facing output is printed by the cli package; this logger carries
// debug detail (skipped files, subprocess argv, record bookkeeping) to stderr
// and is quiet by default.
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
	EnvLogLevel   = "WORKSPYCE_LOG_LEVEL"
	EnvLogNoColor = "WORKSPYCE_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileVerbose
	ProfileTest
)

var configureOnce sync.Once

func ConfigureRuntime(verbose bool) {
	if verbose {
		Configure(ProfileVerbose, os.Stderr)
		return
	}
	Configure(ProfileRuntime, os.Stderr)
}

func ConfigureTests() {
	Configure(ProfileTest, io.Discard)
}

// Configure installs the global logger once per process.
func Configure(profile Profile, out io.Writer) {
	configureOnce.Do(func() {
		log.Logger = New(profile, out)
	})
}

// New builds a logger for profile writing to out, honouring env overrides.
func New(profile Profile, out io.Writer) zerolog.Logger {
	level := defaultLevel(profile)
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}
	noColor := profile == ProfileTest
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		noColor = v
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Str("app", "workspyce").Logger()
}

func defaultLevel(profile Profile) zerolog.Level {
	switch profile {
	case ProfileVerbose:
		return zerolog.DebugLevel
	case ProfileTest:
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
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
		return zerolog.WarnLevel, false
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
