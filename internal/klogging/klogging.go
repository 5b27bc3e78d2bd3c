// Package klogging is a small structured logging facade. Call sites build an
// entry fluently and name the event they are reporting:
//
//	klogging.Info(ctx).With("nodeId", id).Log("PrepareAccepted", "")
//
// The process-wide Logger decides how entries are rendered; by default a
// BasicLogger prints them to stdout, cmd/ binaries install a LogrusLogger.
package klogging

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/senutpal/paxossim/internal/kerror"
)

type Level uint32

const (
	FatalLevel Level = iota + 1
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	VerboseLevel
)

func (l Level) String() string {
	switch l {
	case FatalLevel:
		return "fatal"
	case ErrorLevel:
		return "error"
	case WarnLevel:
		return "warn"
	case InfoLevel:
		return "info"
	case DebugLevel:
		return "debug"
	case VerboseLevel:
		return "verbose"
	default:
		return fmt.Sprintf("%d", int(l))
	}
}

func ParseLogLevel(str string) (Level, error) {
	switch {
	case strings.EqualFold("fatal", str):
		return FatalLevel, nil
	case strings.EqualFold("error", str) || strings.EqualFold("err", str):
		return ErrorLevel, nil
	case strings.EqualFold("warning", str) || strings.EqualFold("warn", str):
		return WarnLevel, nil
	case strings.EqualFold("information", str) || strings.EqualFold("info", str):
		return InfoLevel, nil
	case strings.EqualFold("debug", str):
		return DebugLevel, nil
	case strings.EqualFold("verbose", str) || strings.EqualFold("trace", str):
		return VerboseLevel, nil
	default:
		return 0, kerror.Create("UnknownLogLevel", "parse log level failed").
			WithErrorCode(kerror.EC_INVALID_PARAMETER).
			With("str", str)
	}
}

// NeedLog reports whether an entry of the given importance passes threshold.
func NeedLog(importance Level, threshold Level) bool {
	return int(importance) <= int(threshold)
}

type Logger interface {
	Log(entry *LogEntry, shouldLog bool)
	Level() Level
}

type loggerHolder struct {
	logger Logger
}

var currentLogger atomic.Value

// OsExit is swapped out by tests that exercise Fatal.
var OsExit = os.Exit

func GetLogger() Logger {
	if holder, ok := currentLogger.Load().(*loggerHolder); ok {
		return holder.logger
	}
	basic := &BasicLogger{LogLevel: InfoLevel}
	currentLogger.Store(&loggerHolder{basic})
	return basic
}

func SetDefaultLogger(logger Logger) {
	currentLogger.Store(&loggerHolder{logger})
}

type Keypair struct {
	K string
	V interface{}
}

type LogEntry struct {
	Logger    Logger
	Level     Level
	ShouldLog bool
	LogType   string
	Msg       string
	Details   []Keypair
	Ctx       context.Context
	Timestamp time.Time
}

func NewEntry(ctx context.Context, level Level) *LogEntry {
	logger := GetLogger()
	return &LogEntry{
		Logger:    logger,
		Level:     level,
		ShouldLog: NeedLog(level, logger.Level()),
		Ctx:       ctx,
		Timestamp: time.Now(),
	}
}

func (entry *LogEntry) With(k string, v interface{}) *LogEntry {
	if entry.ShouldLog {
		entry.Details = append(entry.Details, Keypair{k, v})
	}
	return entry
}

func (entry *LogEntry) WithError(err error) *LogEntry {
	if !entry.ShouldLog || err == nil {
		return entry
	}
	if ke, ok := err.(*kerror.Kerror); ok {
		for _, item := range ke.Details {
			entry.Details = append(entry.Details, Keypair{item.K, item.V})
		}
		entry.Details = append(entry.Details, Keypair{"errorType", ke.Type}, Keypair{"errorMsg", ke.Msg})
		if ke.Stack != "" {
			entry.Details = append(entry.Details, Keypair{"stack", ke.Stack})
		}
	} else {
		entry.Details = append(entry.Details, Keypair{"error", err.Error()})
	}
	return entry
}

func (entry *LogEntry) WithPanic(r interface{}) *LogEntry {
	if err, ok := r.(error); ok {
		return entry.WithError(err)
	}
	return entry.With("panic", r).With("stack", kerror.GetCallStack(1))
}

func (entry *LogEntry) Log(logType, msg string) {
	entry.LogType = logType
	entry.Msg = msg
	entry.Logger.Log(entry, entry.ShouldLog)
	if entry.Level == FatalLevel {
		OsExit(1)
	}
}

func (entry *LogEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "level=%v, event=%s, msg=%s", entry.Level, entry.LogType, entry.Msg)
	for _, item := range entry.Details {
		fmt.Fprintf(&b, ", %s=%v", item.K, item.V)
	}
	return b.String()
}

func Fatal(ctx context.Context) *LogEntry {
	return NewEntry(ctx, FatalLevel)
}
func Error(ctx context.Context) *LogEntry {
	return NewEntry(ctx, ErrorLevel)
}
func Warning(ctx context.Context) *LogEntry {
	return NewEntry(ctx, WarnLevel)
}
func Info(ctx context.Context) *LogEntry {
	return NewEntry(ctx, InfoLevel)
}
func Debug(ctx context.Context) *LogEntry {
	return NewEntry(ctx, DebugLevel)
}
func Verbose(ctx context.Context) *LogEntry {
	return NewEntry(ctx, VerboseLevel)
}

/********************************* BasicLogger ************************************/

type BasicLogger struct {
	LogLevel Level
}

func (bl *BasicLogger) Log(entry *LogEntry, shouldLog bool) {
	if shouldLog {
		fmt.Println(entry.String())
	}
}

func (bl *BasicLogger) Level() Level {
	return bl.LogLevel
}

/********************************* NullLogger ************************************/

// NullLogger discards everything.
type NullLogger struct{}

func (nl *NullLogger) Log(entry *LogEntry, shouldLog bool) {}

func (nl *NullLogger) Level() Level {
	return VerboseLevel
}

func NewNullLogger() Logger {
	return &NullLogger{}
}

/********************************* MemoryLogger ************************************/

// MemoryLogger keeps every rendered entry, tests read them back.
type MemoryLogger struct {
	LogLevel Level
	Entries  []*LogEntry
}

func NewMemoryLogger(level Level) *MemoryLogger {
	return &MemoryLogger{LogLevel: level}
}

func (ml *MemoryLogger) Log(entry *LogEntry, shouldLog bool) {
	if shouldLog {
		ml.Entries = append(ml.Entries, entry)
	}
}

func (ml *MemoryLogger) Level() Level {
	return ml.LogLevel
}

// Events returns the event types logged so far, in order.
func (ml *MemoryLogger) Events() []string {
	events := make([]string, 0, len(ml.Entries))
	for _, e := range ml.Entries {
		events = append(events, e.LogType)
	}
	return events
}
