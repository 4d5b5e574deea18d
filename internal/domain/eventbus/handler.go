package eventbus

import (
	"pralay-server-go/internal/utils"
)

// EventHandler consumes bus events by type.
type EventHandler interface {
	Handle(eventType string, data interface{})
}

// LoggingEventHandler writes verification and report events to the
// structured log so operators can trace the pipeline without a debugger.
type LoggingEventHandler struct {
	logger *utils.Logger
}

// NewLoggingEventHandler creates a handler backed by the given logger.
// A nil logger falls back to utils.DefaultLogger.
func NewLoggingEventHandler(logger *utils.Logger) *LoggingEventHandler {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &LoggingEventHandler{logger: logger}
}

// Handle dispatches an event to the matching log line.
func (h *LoggingEventHandler) Handle(eventType string, data interface{}) {
	switch eventType {
	case EventImageVerified, EventVideoVerified:
		if v, ok := data.(VerificationEventData); ok {
			h.handleVerification(v)
		}
	case EventReportStored:
		if r, ok := data.(ReportEventData); ok {
			h.handleReport(r)
		}
	case EventSystemError:
		if s, ok := data.(SystemEventData); ok {
			h.logger.ErrorTag("EVENT", "system error: level=%s message=%s", s.Level, s.Message)
		}
	case EventSystemInfo:
		if s, ok := data.(SystemEventData); ok {
			h.logger.InfoTag("EVENT", "system info: level=%s message=%s", s.Level, s.Message)
		}
	default:
		h.logger.DebugTag("EVENT", "unhandled event type %s", eventType)
	}
}

func (h *LoggingEventHandler) handleVerification(data VerificationEventData) {
	h.logger.InfoTag("EVENT", "%s %q verified: category=%s status=%s confidence=%.2f",
		data.MediaType, data.Filename, data.Category, data.Status, data.Confidence)
}

func (h *LoggingEventHandler) handleReport(data ReportEventData) {
	h.logger.InfoTag("EVENT", "report %s stored: media=%s status=%s",
		data.ReportID, data.MediaType, data.Status)
}

// SetupEventHandlers subscribes the logging handler to all pipeline topics.
func SetupEventHandlers(logger *utils.Logger) {
	handler := NewLoggingEventHandler(logger)

	for _, topic := range []string{
		EventImageVerified,
		EventVideoVerified,
		EventReportStored,
		EventSystemError,
		EventSystemInfo,
	} {
		topic := topic
		_ = SubscribeAsync(topic, func(args ...interface{}) {
			if len(args) > 0 {
				handler.Handle(topic, args[0])
			}
		})
	}
}
