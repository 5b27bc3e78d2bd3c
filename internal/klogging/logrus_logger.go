package klogging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/sirupsen/logrus"
)

// TimestampFormat keeps millisecond resolution and the zone, and sorts well.
const TimestampFormat = "2006-01-02T15:04:05.999Z07:00"

type LogFormat uint32

const (
	TextFormat LogFormat = iota + 1
	JsonFormat
)

func (f LogFormat) String() string {
	switch f {
	case TextFormat:
		return "text"
	case JsonFormat:
		return "json"
	default:
		return fmt.Sprintf("%d", int(f))
	}
}

func ParseLogFormat(str string) (LogFormat, error) {
	switch {
	case strings.EqualFold("text", str):
		return TextFormat, nil
	case strings.EqualFold("json", str):
		return JsonFormat, nil
	}
	return 0, kerror.Create("UnknownLogFormat", "parse log format failed").
		WithErrorCode(kerror.EC_INVALID_PARAMETER).
		With("str", str)
}

// MetricsReporter receives one call per entry, logged or not.
type MetricsReporter interface {
	ReportLogEvent(ctx context.Context, level, eventType string, logged bool)
}

// LogrusLogger implements Logger on top of logrus.
type LogrusLogger struct {
	RusLogger       *logrus.Logger
	logLevel        Level
	logFormat       LogFormat
	metricsReporter MetricsReporter
}

func NewLogrusLogger() *LogrusLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: TimestampFormat,
		FullTimestamp:   true,
	})
	// the threshold is evaluated by LogrusLogger, logrus itself takes everything
	log.SetLevel(logrus.TraceLevel)
	return &LogrusLogger{
		RusLogger: log,
		logLevel:  InfoLevel,
		logFormat: TextFormat,
	}
}

func (logger *LogrusLogger) WithOutput(w io.Writer) *LogrusLogger {
	logger.RusLogger.SetOutput(w)
	return logger
}

func (logger *LogrusLogger) WithMetricsReporter(reporter MetricsReporter) *LogrusLogger {
	logger.metricsReporter = reporter
	return logger
}

// SetConfig applies level (fatal..verbose) and format (text, json).
func (logger *LogrusLogger) SetConfig(levelStr string, formatStr string) error {
	level, err := ParseLogLevel(levelStr)
	if err != nil {
		return err
	}
	format, err := ParseLogFormat(formatStr)
	if err != nil {
		return err
	}
	logger.logLevel = level
	if format != logger.logFormat {
		switch format {
		case TextFormat:
			logger.RusLogger.SetFormatter(&logrus.TextFormatter{
				DisableColors:   true,
				TimestampFormat: TimestampFormat,
				FullTimestamp:   true,
			})
		case JsonFormat:
			logger.RusLogger.SetFormatter(&logrus.JSONFormatter{
				TimestampFormat: TimestampFormat,
			})
		}
		logger.logFormat = format
	}
	return nil
}

func (logger *LogrusLogger) Log(entry *LogEntry, shouldLog bool) {
	if logger.metricsReporter != nil && NeedLog(entry.Level, DebugLevel) {
		logger.metricsReporter.ReportLogEvent(entry.Ctx, entry.Level.String(), entry.LogType, shouldLog)
	}
	if !shouldLog {
		return
	}
	fields := make(logrus.Fields, len(entry.Details))
	for _, item := range entry.Details {
		fields[item.K] = item.V
	}
	ent := logger.RusLogger.WithField("event", entry.LogType).WithFields(fields)
	ent.Time = entry.Timestamp
	ent.Log(kloggingLevel2Logrus(entry.Level), entry.Msg)
}

func (logger *LogrusLogger) Level() Level {
	return logger.logLevel
}

func (logger *LogrusLogger) Format() LogFormat {
	return logger.logFormat
}

// klogging levels line up with logrus levels from Fatal downwards.
func kloggingLevel2Logrus(level Level) logrus.Level {
	return logrus.Level(int(level))
}
