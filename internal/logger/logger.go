package logger

import (
	"os"

	"github.com/rs/zerolog"
)

const (
	DefaultLogLevel = "info"
	// EnvVarLogLevel overrides the console log level when set.
	EnvVarLogLevel = "THREEF_LOG_LEVEL"
)

// New creates a new logger instance
func New(opts ...Option) *zerolog.Logger {
	config := &Config{
		output:       os.Stdout,
		level:        zerolog.InfoLevel,
		excludeParts: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName},
		isDev:        true,
	}

	for _, opt := range opts {
		opt.apply(config)
	}

	ctx := zerolog.New(config.output).
		Level(config.level).
		With()
	if config.component != "" {
		ctx = ctx.Str("component", config.component)
	}
	logger := ctx.Logger()

	if config.isDev {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:          config.output,
			PartsExclude: config.excludeParts,
		})
	}

	return &logger
}

func NewConsoleLogger() *zerolog.Logger {
	level := DefaultLogLevel
	if v := os.Getenv(EnvVarLogLevel); v != "" {
		level = v
	}
	return New(
		WithLevel(level),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
	)
}
