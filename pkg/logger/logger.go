package logger

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Fields are structured key/value pairs attached to a log line.
type Fields = map[string]interface{}

// Logger wraps zerolog.Logger with additional context
type Logger struct {
	logger zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error, fatal
	Format      string // json, console
	Output      io.Writer
	EnableColor bool
}

var globalLogger *Logger

// Initialize initializes the global logger with the given configuration
func Initialize(cfg Config) {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.Level))

	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.EnableColor,
		}
	}

	l := zerolog.New(output).With().Timestamp().Logger()
	globalLogger = &Logger{logger: l}
	log.Logger = l
}

// ForEnvironment picks level and format from the deployment environment name.
func ForEnvironment(env string) Config {
	if strings.EqualFold(env, "production") {
		return Config{Level: "info", Format: "json"}
	}
	return Config{Level: "debug", Format: "console", EnableColor: true}
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger instance
func Get() *Logger {
	if globalLogger == nil {
		Initialize(Config{
			Level:       "info",
			Format:      "console",
			EnableColor: true,
		})
	}
	return globalLogger
}

// WithContext returns a logger with additional context fields
func (l *Logger) WithContext(fields Fields) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{logger: ctx.Logger()}
}

// emit writes one event; skip is the number of frames between the caller and emit.
func (l *Logger) emit(event *zerolog.Event, skip int, msg string, fields []Fields) {
	if pc, file, line, ok := runtime.Caller(skip + 1); ok {
		event = event.Str("caller", zerolog.CallerMarshalFunc(pc, file, line))
	}
	for _, f := range fields {
		for k, v := range f {
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.emit(l.logger.Debug(), 1, msg, fields)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.emit(l.logger.Info(), 1, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.emit(l.logger.Warn(), 1, msg, fields)
}

func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.emit(l.logger.Error().Err(err), 1, msg, fields)
}

// Fatal logs and exits the process
func (l *Logger) Fatal(msg string, err error, fields ...Fields) {
	l.emit(l.logger.Fatal().Err(err), 1, msg, fields)
}

// Package-level convenience functions using the global logger

func Debug(msg string, fields ...Fields) {
	l := Get()
	l.emit(l.logger.Debug(), 1, msg, fields)
}

func Info(msg string, fields ...Fields) {
	l := Get()
	l.emit(l.logger.Info(), 1, msg, fields)
}

func Warn(msg string, fields ...Fields) {
	l := Get()
	l.emit(l.logger.Warn(), 1, msg, fields)
}

func Error(msg string, err error, fields ...Fields) {
	l := Get()
	l.emit(l.logger.Error().Err(err), 1, msg, fields)
}

func Fatal(msg string, err error, fields ...Fields) {
	l := Get()
	l.emit(l.logger.Fatal().Err(err), 1, msg, fields)
}

// WithContext returns a logger with additional context fields
func WithContext(fields Fields) *Logger {
	return Get().WithContext(fields)
}
