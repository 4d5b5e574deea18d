package report

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"pralay-server-go/internal/platform/errors"
	"pralay-server-go/internal/platform/storage"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a Repository backed by the given gorm handle.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Store(ctx context.Context, rep Report) error {
	var payload []byte
	if rep.Payload != nil {
		var err error
		payload, err = json.Marshal(rep.Payload)
		if err != nil {
			return errors.Wrap(errors.KindStorage, "report.store.marshal", "failed to marshal report payload", err)
		}
	}

	record := &storage.ReportRecord{
		ID:         rep.ID,
		MediaType:  rep.MediaType,
		Filename:   rep.Filename,
		Category:   rep.Category,
		Status:     rep.Status,
		Confidence: rep.Confidence,
		Message:    rep.Message,
		Payload:    payload,
		CreatedAt:  rep.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "report.store.create", "failed to store report", err)
	}

	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (Report, error) {
	var record storage.ReportRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return Report{}, errors.New(errors.KindStorage, "report.find.id", "report not found")
		}
		return Report{}, errors.Wrap(errors.KindStorage, "report.find.id", "failed to find report", err)
	}

	return r.convertRecord(record)
}

func (r *gormRepository) List(ctx context.Context, filter Filter) ([]Report, error) {
	query := r.db.WithContext(ctx).Model(&storage.ReportRecord{}).Order("created_at DESC")

	if filter.MediaType != "" {
		query = query.Where("media_type = ?", filter.MediaType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []storage.ReportRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "report.list", "failed to list reports", err)
	}

	reports := make([]Report, 0, len(records))
	for _, record := range records {
		rep, err := r.convertRecord(record)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

func (r *gormRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var stats []struct {
		Status string
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&storage.ReportRecord{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&stats).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "report.stats", "failed to get report stats", err)
	}

	result := make(map[string]int64)
	for _, stat := range stats {
		result[stat.Status] = stat.Count
	}

	return result, nil
}

func (r *gormRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&storage.ReportRecord{}).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "report.delete.old", "failed to delete old reports", err)
	}

	return nil
}

func (r *gormRepository) convertRecord(record storage.ReportRecord) (Report, error) {
	var payload interface{}
	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &payload); err != nil {
			return Report{}, errors.Wrap(errors.KindStorage, "report.convert.unmarshal", "failed to unmarshal report payload", err)
		}
	}

	return Report{
		ID:         record.ID,
		MediaType:  record.MediaType,
		Filename:   record.Filename,
		Category:   record.Category,
		Status:     record.Status,
		Confidence: record.Confidence,
		Message:    record.Message,
		Payload:    payload,
		CreatedAt:  record.CreatedAt,
	}, nil
}
