// Package logging builds the process zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log level and sinks.
type Options struct {
	Level string
	// File, when set, receives JSON logs rotated at MaxSizeMB.
	File      string
	MaxSizeMB int
	// Console overrides terminal detection for the stderr sink.
	Console *bool
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names yield info;
// "off" disables logging.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "disabled", "none":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New returns a logger writing to stderr (human-readable on a terminal) and,
// optionally, to a rotating file.
func New(opts Options) zerolog.Logger {
	return NewWithWriter(os.Stderr, opts)
}

// NewWithWriter is New with an explicit primary sink.
func NewWithWriter(w io.Writer, opts Options) zerolog.Logger {
	console := false
	if opts.Console != nil {
		console = *opts.Console
	} else if f, ok := w.(*os.File); ok {
		console = isatty.IsTerminal(f.Fd())
	}
	var out io.Writer = w
	if console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	if opts.File != "" {
		size := opts.MaxSizeMB
		if size <= 0 {
			size = 50
		}
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    size,
			MaxBackups: 3,
			Compress:   true,
		})
	}
	return zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
}
