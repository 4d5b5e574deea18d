package eventbus

// Event topics published across the service.
const (
	// Verification events
	EventImageVerified = "verify:image:completed"
	EventVideoVerified = "verify:video:completed"

	// Report events
	EventReportStored = "report:stored"

	// System events
	EventSystemError = "system:error"
	EventSystemInfo  = "system:info"
)

// VerificationEventData describes one completed verification.
type VerificationEventData struct {
	MediaType  string  `json:"media_type"`
	Filename   string  `json:"filename"`
	Category   string  `json:"category,omitempty"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
}

// ReportEventData describes one archived report record.
type ReportEventData struct {
	ReportID  string `json:"report_id"`
	MediaType string `json:"media_type"`
	Status    string `json:"status"`
}

// SystemEventData carries free-form system notifications.
type SystemEventData struct {
	Level   string      `json:"level"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
