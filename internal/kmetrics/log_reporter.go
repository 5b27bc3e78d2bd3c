package kmetrics

import "context"

var LogEventMetrics = CreateKmetric("klogging_event", "log entries by level and event (including skipped ones)", []string{"level", "event", "logged"}).CountOnly()

// LogEventReporter feeds klogging entries into LogEventMetrics.
type LogEventReporter struct{}

func NewLogEventReporter() *LogEventReporter {
	return &LogEventReporter{}
}

func (r *LogEventReporter) ReportLogEvent(ctx context.Context, level, eventType string, logged bool) {
	loggedStr := "false"
	if logged {
		loggedStr = "true"
	}
	LogEventMetrics.GetTimeSequence(level, eventType, loggedStr).Add(1)
}
