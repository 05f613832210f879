package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with loader-specific helpers.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// DefaultConfig returns production logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		OutputPaths: []string{"stderr"},
	}
}

// New creates a logger with the provided configuration.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encodingFormat(cfg.Development),
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: logger}, nil
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		return NewNop()
	}
	return logger
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Wrap adopts an existing zap logger, e.g. one built with zaptest/observer.
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return &Logger{Logger: l}
}

// Named returns a child logger with the given name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// ForCharacter returns a child logger tagged with a character's display name.
func (l *Logger) ForCharacter(name string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("character", name))}
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func encodingFormat(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			StacktraceKey:  "S",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
