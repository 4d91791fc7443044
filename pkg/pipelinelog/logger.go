// Package pipelinelog provides the pipeline's structured, leveled logging.
package pipelinelog

import (
	"fmt"
	"log"
	"os"
)

// Level is the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// Logger writes leveled messages to an underlying *log.Logger.
type Logger struct {
	level  Level
	logger *log.Logger
}

var defaultLogger = New(INFO)

// New creates a logger writing to stderr at the given level.
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(os.Stderr, "", log.Ldate|log.Ltime),
	}
}

// SetLevel adjusts the package-level default logger's level.
func SetLevel(level Level) {
	defaultLogger.level = level
}

// Debug logs at DEBUG via the default logger.
func Debug(format string, args ...any) { defaultLogger.Debug(format, args...) }

// Info logs at INFO via the default logger.
func Info(format string, args ...any) { defaultLogger.Info(format, args...) }

// Warn logs at WARN via the default logger.
func Warn(format string, args ...any) { defaultLogger.Warn(format, args...) }

// Error logs at ERROR via the default logger.
func Error(format string, args ...any) { defaultLogger.Error(format, args...) }

// Debug logs a debug message if the logger's level permits it.
func (l *Logger) Debug(format string, args ...any) {
	if l.level <= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

// Info logs an info message if the logger's level permits it.
func (l *Logger) Info(format string, args ...any) {
	if l.level <= INFO {
		l.log("INFO", format, args...)
	}
}

// Warn logs a warning message if the logger's level permits it.
func (l *Logger) Warn(format string, args ...any) {
	if l.level <= WARN {
		l.log("WARN", format, args...)
	}
}

// Error logs an error message if the logger's level permits it.
func (l *Logger) Error(format string, args ...any) {
	if l.level <= ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *Logger) log(level, format string, args ...any) {
	l.logger.Output(3, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...)))
}
