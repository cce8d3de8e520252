package logger

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLogger writes human readable lines through a zerolog console writer.
// Progress messages (Log/Logf) are only emitted in verbose mode.
type DefaultLogger struct {
	logger zerolog.Logger
}

// Default is a verbose logger on stdout, used where no logger is injected.
var Default Logger = New(os.Stdout, true)

var urlRegex = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*:\/\/[a-zA-Z0-9+%/.\-:_?&=#@+]+`)

// New creates a logger writing to out. When verbose is false only warnings
// and errors are written. DEBUG=true enables debug output regardless.
func New(out io.Writer, verbose bool) *DefaultLogger {
	if out == nil {
		out = io.Discard
	}

	level := zerolog.InfoLevel
	if !verbose {
		level = zerolog.WarnLevel
	}
	if os.Getenv("DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !isTerminal(out),
		TimeFormat: "15:04:05",
	}

	return &DefaultLogger{
		logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func cleanString(text string) string {
	return urlRegex.ReplaceAllString(text, "[redacted url]")
}

func safeLogf(format string, v ...any) string {
	safeString := format
	if len(v) > 0 {
		safeString = fmt.Sprintf(format, v...)
	}
	if os.Getenv("SAFE_LOGS") == "true" {
		return cleanString(safeString)
	}
	return safeString
}

func (l *DefaultLogger) Log(format string) {
	l.logger.Info().Msg(safeLogf("%s", format))
}

func (l *DefaultLogger) Logf(format string, v ...any) {
	l.logger.Info().Msg(safeLogf(format, v...))
}

func (l *DefaultLogger) Debug(format string) {
	l.logger.Debug().Msg(safeLogf("%s", format))
}

func (l *DefaultLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msg(safeLogf(format, v...))
}

func (l *DefaultLogger) Error(format string) {
	l.logger.Error().Msg(safeLogf("%s", format))
}

func (l *DefaultLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msg(safeLogf(format, v...))
}

func (l *DefaultLogger) Warn(format string) {
	l.logger.Warn().Msg(safeLogf("%s", format))
}

func (l *DefaultLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msg(safeLogf(format, v...))
}
