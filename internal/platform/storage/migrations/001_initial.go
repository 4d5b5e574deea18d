package migrations

import (
	"gorm.io/gorm"
)

// Migration001Initial creates the report archive schema.
type Migration001Initial struct{}

func (m *Migration001Initial) Version() string {
	return "001_initial"
}

func (m *Migration001Initial) Description() string {
	return "Create report archive tables"
}

func (m *Migration001Initial) Up(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS report_records (
			id VARCHAR(36) PRIMARY KEY,
			media_type VARCHAR(32) NOT NULL,
			filename VARCHAR(255) NOT NULL,
			category VARCHAR(64),
			status VARCHAR(32) NOT NULL,
			confidence REAL NOT NULL DEFAULT 0,
			message TEXT,
			payload JSON,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_report_records_media_type ON report_records(media_type)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_report_records_category ON report_records(category)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_report_records_status ON report_records(status)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_report_records_created_at ON report_records(created_at)`).Error; err != nil {
		return err
	}

	return nil
}

func (m *Migration001Initial) Down(db *gorm.DB) error {
	return db.Exec(`DROP TABLE IF EXISTS report_records`).Error
}
