// Package logger provides the logging interface used across autoclaim.
// Every line carries a UTC timestamp; backends write to the console,
// an append-only log file, or both through MultiLogger.
package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Logger defines the interface for logging across all autoclaim components.
type Logger interface {
	// Info logs an informational message (e.g., "Claim successful!").
	Info(format string, args ...interface{})

	// Warning logs a warning message (e.g., "next claim time has already passed").
	Warning(format string, args ...interface{})

	// Error logs an error message (e.g., "Failed to get page! Status code: 502").
	Error(format string, args ...interface{})

	// Close releases resources held by the logger (e.g., an open log file).
	// Safe to call multiple times. Returns nil for loggers without resources.
	Close() error
}

// utcFlags render "2006/01/02 15:04:05 UTC " ahead of every message.
const (
	utcFlags  = log.Ldate | log.Ltime | log.LUTC | log.Lmsgprefix
	utcPrefix = "UTC "
)

// StandardLogger wraps the stdlib *log.Logger for console/file output.
type StandardLogger struct {
	logger *log.Logger

	mu     sync.Mutex
	closer io.Closer
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

// NewUTCLogger creates a logger writing to w with UTC date/time headers.
func NewUTCLogger(w io.Writer) *StandardLogger {
	return NewStandardLogger(log.New(w, utcPrefix, utcFlags))
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close closes the underlying sink when the logger owns one.
func (s *StandardLogger) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger implements Logger for testing purposes.
// It records all log calls for verification in tests.
type MockLogger struct {
	mu           sync.Mutex
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		InfoCalls:    make([]string, 0),
		WarningCalls: make([]string, 0),
		ErrorCalls:   make([]string, 0),
	}
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
	m.mu.Unlock()
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.mu.Lock()
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
	m.mu.Unlock()
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
	m.mu.Unlock()
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	m.CloseCalled = true
	m.mu.Unlock()
	return nil
}

var _ Logger = (*MockLogger)(nil)
