package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/zfogg/resep/pkg/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *log.Logger

// Init initializes the logger
func Init(verbose bool) {
	logLevel, err := log.ParseLevel(config.GetString("log.level"))
	if err != nil {
		logLevel = log.InfoLevel
	}
	if verbose {
		logLevel = log.DebugLevel
	}

	logger = log.New(fileWriter(config.GetString("log.file")))
	logger.SetLevel(logLevel)
	logger.SetReportTimestamp(true)
}

// fileWriter returns a rotating writer for path, or stderr when the
// directory cannot be created
func fileWriter(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.GetInt("log.max_size_mb"),
		MaxBackups: config.GetInt("log.max_backups"),
	}
}

// SetOutput replaces the logger with one writing to w at debug level
func SetOutput(w io.Writer) {
	logger = log.New(w)
	logger.SetLevel(log.DebugLevel)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, args ...interface{}) {
	if logger != nil {
		logger.Fatal(msg, args...)
	} else {
		os.Exit(1)
	}
}

// GetLogger returns the logger instance
func GetLogger() *log.Logger {
	return logger
}
