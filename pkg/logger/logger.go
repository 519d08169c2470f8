// Package logger holds the process-wide zerolog logger of the explorer API.
// cmd/server calls Init once; packages receive derived loggers through their
// constructors, usually built with Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level is a zerolog level name; "warning" is accepted for warn.
	// Unknown or empty values log at info.
	Level   string
	Pretty  bool
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the root logger. Later calls return the existing logger and
// ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := parseLevel(opts.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(level)

	fields := zerolog.New(out).Level(level).With().Timestamp()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	l := fields.Logger()
	root = &l
	return l
}

// Get returns the root logger and panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		panic("logger: Get called before Init")
	}
	return *root
}

// Component derives a logger carrying a "component" field.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset drops the root logger. Tests use it to start from scratch.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
