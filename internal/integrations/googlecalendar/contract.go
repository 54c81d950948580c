package googlecalendar

// Logger is the logging interface used by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder counts outbound calendar calls. May be nil.
type MetricsRecorder interface {
	ObserveCalendarRequest(operation string, err error)
}
