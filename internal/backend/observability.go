package backend

import "log/slog"

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Endpoint   string
	Method     string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
	Err        error
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes backend call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"endpoint", event.Endpoint,
		"method", event.Method,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		if event.Err != nil {
			attrs = append(attrs, "error", event.Err.Error())
		}
		o.logger.Warn("backend_call", attrs...)
		return
	}
	o.logger.Debug("backend_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
