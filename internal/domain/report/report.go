// Package report archives completed verification verdicts so operators
// can audit what the pipeline accepted and rejected.
package report

import (
	"context"
	"time"
)

// Report is one archived verification outcome.
type Report struct {
	ID         string      `json:"id"`
	MediaType  string      `json:"media_type"`
	Filename   string      `json:"filename"`
	Category   string      `json:"category,omitempty"`
	Status     string      `json:"status"`
	Confidence float64     `json:"confidence"`
	Message    string      `json:"message"`
	Payload    interface{} `json:"payload,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Filter narrows List queries. Zero values mean "no constraint".
type Filter struct {
	MediaType string
	Status    string
	Category  string
	Limit     int
	Offset    int
}

// Repository is the report archive's data access surface.
type Repository interface {
	Store(ctx context.Context, rep Report) error

	FindByID(ctx context.Context, id string) (Report, error)

	// List returns reports newest first, filtered and paginated.
	List(ctx context.Context, filter Filter) ([]Report, error)

	// CountByStatus aggregates the archive by verdict status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// DeleteOlderThan prunes reports created before the given time.
	DeleteOlderThan(ctx context.Context, before time.Time) error
}
