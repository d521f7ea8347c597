// Package logging provides the small logger interface used across axotly.
//
// There is no global logger. Components take a Logger and default to Discard.
package logging

import (
	"fmt"
	"sync"
	"time"
)

type Logger interface {
	Debugf(message string, args ...any)
	Infof(message string, args ...any)
	Warnf(message string, args ...any)
	Errorf(message string, args ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...any) {}
func (discardLogger) Infof(string, ...any)  {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Errorf(string, ...any) {}

// Discard drops every message.
var Discard Logger = discardLogger{}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}

type CapturedMessage struct {
	Time    time.Time
	Level   Level
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records messages in memory. Tests use it to assert on what
// a component logged.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Debugf(message string, args ...any) { l.capture(LevelDebug, message, args) }
func (l *CapturingLogger) Infof(message string, args ...any)  { l.capture(LevelInfo, message, args) }
func (l *CapturingLogger) Warnf(message string, args ...any)  { l.capture(LevelWarn, message, args) }
func (l *CapturingLogger) Errorf(message string, args ...any) { l.capture(LevelError, message, args) }

func (l *CapturingLogger) capture(level Level, message string, args []any) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Level: level, Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Messages returns the captured messages at or above level.
func (output CapturedOutput) Messages(level Level) []string {
	var ret []string
	for _, m := range output {
		if m.Level >= level {
			ret = append(ret, m.Message)
		}
	}
	return ret
}
