package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pralay-server-go/internal/domain/eventbus"
	"pralay-server-go/internal/utils"
)

const storeTimeout = 10 * time.Second

// Persister subscribes to verification events and archives each one as
// a report record. Archiving is best effort: a storage failure is
// logged and the verdict already returned to the caller is unaffected.
type Persister struct {
	repo   Repository
	logger *utils.Logger
}

func NewPersister(repo Repository, logger *utils.Logger) *Persister {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &Persister{repo: repo, logger: logger}
}

// Start subscribes the persister to the verification topics.
func (p *Persister) Start() error {
	if err := eventbus.SubscribeAsync(eventbus.EventImageVerified, p.onVerified); err != nil {
		return err
	}
	return eventbus.SubscribeAsync(eventbus.EventVideoVerified, p.onVerified)
}

func (p *Persister) onVerified(args ...interface{}) {
	if len(args) == 0 {
		return
	}
	data, ok := args[0].(eventbus.VerificationEventData)
	if !ok {
		return
	}

	createdAt, err := time.Parse(time.RFC3339, data.Timestamp)
	if err != nil {
		createdAt = time.Now()
	}

	rep := Report{
		ID:         uuid.NewString(),
		MediaType:  data.MediaType,
		Filename:   data.Filename,
		Category:   data.Category,
		Status:     data.Status,
		Confidence: data.Confidence,
		Message:    data.Message,
		Payload:    data,
		CreatedAt:  createdAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := p.repo.Store(ctx, rep); err != nil {
		p.logger.ErrorTag("STORE", "failed to archive report for %q: %v", data.Filename, err)
		return
	}

	p.logger.DebugTag("STORE", "report %s archived: media=%s status=%s", rep.ID, rep.MediaType, rep.Status)

	eventbus.PublishAsync(eventbus.EventReportStored, eventbus.ReportEventData{
		ReportID:  rep.ID,
		MediaType: rep.MediaType,
		Status:    rep.Status,
	})
}
