// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Setup sets the global level and output. Format "auto" picks the console
// writer when stdout is a terminal and JSON otherwise.
func Setup(level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	switch format {
	case "auto", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(writer(format, os.Stdout)).With().Timestamp().Logger()
	return nil
}

func writer(format string, out *os.File) io.Writer {
	console := format == "console" ||
		(format == "auto" && term.IsTerminal(int(out.Fd())))
	if console {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return out
}
