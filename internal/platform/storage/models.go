package storage

import (
	"time"

	"gorm.io/datatypes"
)

// ReportRecord is the persisted form of one verification report. The
// full verdict payload is kept as JSON so the archive survives schema
// churn in the analysis layer.
type ReportRecord struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	MediaType  string         `gorm:"index;not null" json:"media_type"`
	Filename   string         `gorm:"not null" json:"filename"`
	Category   string         `gorm:"index" json:"category"`
	Status     string         `gorm:"index;not null" json:"status"`
	Confidence float64        `json:"confidence"`
	Message    string         `gorm:"type:text" json:"message"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (ReportRecord) TableName() string {
	return "report_records"
}
