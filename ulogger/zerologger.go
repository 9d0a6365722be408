package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	colorRed    = 31
	colorGreen  = 32
	colorYellow = 33
	colorBlue   = 34
	colorWhite  = 37
	colorBold   = 1

	callerWidth = 32
)

var levelColors = map[string]int{
	"debug": colorBlue,
	"info":  colorGreen,
	"warn":  colorYellow,
	"error": colorRed,
	"fatal": colorRed,
	"panic": colorRed,
}

// zerolog level to the gocore level reported by LogLevel
var gocoreLevels = map[zerolog.Level]int{
	zerolog.DebugLevel: int(gocore.DEBUG),
	zerolog.InfoLevel:  int(gocore.INFO),
	zerolog.WarnLevel:  int(gocore.WARN),
	zerolog.ErrorLevel: int(gocore.ERROR),
	zerolog.FatalLevel: int(gocore.FATAL),
}

type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	w       io.Writer
	skip    int
}

// NewZeroLogger logs JSON lines with a "service" field to the configured
// writer. On stdout with PRETTY_LOGS set it uses a colored console layout.
func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "bitwire"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	ctx := zerolog.New(opts.writer).With().Str("service", service)
	if opts.writer == os.Stdout && gocore.Config().GetBool("PRETTY_LOGS", true) {
		ctx = zerolog.New(newConsoleWriter(service)).With()
	}

	z := &ZLoggerWrapper{
		Logger: ctx.
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1 + opts.skip).
			Timestamp().
			Logger(),
		service: service,
		w:       opts.writer,
		skip:    opts.skip,
	}

	z.SetLogLevel(opts.logLevel)

	return z
}

func newConsoleWriter(service string) zerolog.ConsoleWriter {
	noColor := !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != ""

	paint := func(s string, c int) string {
		if noColor || c == 0 {
			return s
		}

		return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
	}

	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)

			c, ok := levelColors[level]
			if !ok {
				c = colorWhite
			}

			return "| " + paint(fmt.Sprintf("%-6s", strings.ToUpper(level)), c) + "|"
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("| %-6s| %v", service, i)
		},
		FormatCaller: func(i interface{}) string {
			caller, _ := i.(string)
			if caller == "" {
				return ""
			}

			return paint(fmt.Sprintf("%-*s", callerWidth, shortCaller(caller)), colorBold)
		},
	}
}

// shortCaller keeps as many trailing path elements of a caller as fit the
// caller column, relative to the working directory when possible.
func shortCaller(caller string) string {
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, caller); err == nil {
			caller = rel
		}
	}

	parts := strings.Split(caller, "/")
	short := parts[len(parts)-1]

	for i := len(parts) - 2; i >= 0 && len(short)+len(parts[i])+1 <= callerWidth; i-- {
		short = parts[i] + "/" + short
	}

	return short
}

func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	inherited := []Option{
		WithWriter(z.w),
		WithLevel(z.Logger.GetLevel().String()),
		WithSkipFrame(z.skip),
	}

	return NewZeroLogger(service, append(inherited, options...)...)
}

func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	opts := &Options{logLevel: z.Logger.GetLevel().String()}
	for _, o := range options {
		o(opts)
	}

	return &ZLoggerWrapper{z.Logger.Level(toZerologLevel(opts.logLevel)), z.service, z.w, z.skip}
}

// toZerologLevel accepts gocore style names (DEBUG, INFO, ...) as well as
// zerolog's own. Anything unknown means info.
func toZerologLevel(logLevel string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	z.Logger = z.Logger.Level(toZerologLevel(logLevel))
}

func (z *ZLoggerWrapper) LogLevel() int {
	if level, ok := gocoreLevels[z.Logger.GetLevel()]; ok {
		return level
	}

	return int(gocore.INFO)
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}
