// Package logging provides structured logging for the pricer.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	home, _ := os.UserHomeDir()
	return LogConfig{
		Level:      "info",
		Console:    true,
		File:       false,
		FilePath:   filepath.Join(home, ".config", "derivative-pricer", "logs", "pricer.log"),
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
	}
}

// NewLogger creates a new logger with default configuration.
func NewLogger() zerolog.Logger {
	return NewLoggerWithConfig(DefaultLogConfig())
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					switch ll {
					case "debug":
						return "\033[36mDBG\033[0m"
					case "info":
						return "\033[32mINF\033[0m"
					case "warn":
						return "\033[33mWRN\033[0m"
					case "error":
						return "\033[31mERR\033[0m"
					default:
						return ll
					}
				}
				return "???"
			},
		}
		writers = append(writers, consoleWriter)
	}

	// File writer with rotation
	if cfg.File {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			fileWriter := &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			}
			writers = append(writers, fileWriter)
		}
	}

	var writer io.Writer
	if len(writers) == 0 {
		writer = os.Stderr
	} else if len(writers) == 1 {
		writer = writers[0]
	} else {
		writer = zerolog.MultiLevelWriter(writers...)
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	return zerolog.New(writer).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// SetInfoLevel sets the global log level to info.
func SetInfoLevel() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// ContextKey is the type for context keys.
type ContextKey string

// LoggerKey is the context key for the logger.
const LoggerKey ContextKey = "logger"

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger when
// none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// WithContract adds a contract type to the logger context.
func WithContract(logger zerolog.Logger, contract string) zerolog.Logger {
	return logger.With().Str("contract", contract).Logger()
}

// WithEngine adds a pricing engine name to the logger context.
func WithEngine(logger zerolog.Logger, engine string) zerolog.Logger {
	return logger.With().Str("engine", engine).Logger()
}

// LogPricing logs a completed valuation.
func LogPricing(logger zerolog.Logger, contract, engine string, price float64, duration time.Duration) {
	logger.Info().
		Str("event", "pricing").
		Str("contract", contract).
		Str("engine", engine).
		Float64("price", price).
		Dur("duration", duration).
		Msg("Contract priced")
}

// LogSimulation logs a Monte-Carlo run.
func LogSimulation(logger zerolog.Logger, paths int64, steps int, seed uint64, stderr float64, duration time.Duration) {
	logger.Info().
		Str("event", "simulation").
		Int64("paths", paths).
		Int("steps", steps).
		Uint64("seed", seed).
		Float64("std_error", stderr).
		Dur("duration", duration).
		Msg("Simulation completed")
}

// LogGreeks logs a sensitivity calculation.
func LogGreeks(logger zerolog.Logger, contract, engine string, count int, duration time.Duration) {
	logger.Info().
		Str("event", "greeks").
		Str("contract", contract).
		Str("engine", engine).
		Int("greeks", count).
		Dur("duration", duration).
		Msg("Sensitivities computed")
}

// LogImpliedVol logs an implied volatility solve.
func LogImpliedVol(logger zerolog.Logger, contract string, target, vol float64, duration time.Duration) {
	logger.Info().
		Str("event", "implied_vol").
		Str("contract", contract).
		Float64("target_price", target).
		Float64("implied_vol", vol).
		Dur("duration", duration).
		Msg("Implied volatility solved")
}
