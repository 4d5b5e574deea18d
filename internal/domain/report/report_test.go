package report

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pralay-server-go/internal/platform/storage"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.ReportRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewRepository(db)
}

func sampleReport(id, mediaType, status string, createdAt time.Time) Report {
	return Report{
		ID:         id,
		MediaType:  mediaType,
		Filename:   "wave.jpg",
		Category:   "high_waves",
		Status:     status,
		Confidence: 0.8,
		Message:    "Image verified successfully",
		Payload:    map[string]interface{}{"confidence": 0.8},
		CreatedAt:  createdAt,
	}
}

func TestRepositoryStoreAndFind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rep := sampleReport("r1", "image", "verified", time.Now())
	if err := repo.Store(ctx, rep); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := repo.FindByID(ctx, "r1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.MediaType != "image" || got.Status != "verified" || got.Filename != "wave.jpg" {
		t.Errorf("unexpected report: %+v", got)
	}
	payload, ok := got.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload type = %T, want map", got.Payload)
	}
	if payload["confidence"] != 0.8 {
		t.Errorf("payload confidence = %v, want 0.8", payload["confidence"])
	}
}

func TestRepositoryFindMissing(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.FindByID(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing report")
	}
}

func TestRepositoryListFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()

	seed := []Report{
		sampleReport("a", "image", "verified", now.Add(-3*time.Hour)),
		sampleReport("b", "image", "failed", now.Add(-2*time.Hour)),
		sampleReport("c", "video", "verified", now.Add(-1*time.Hour)),
	}
	for _, rep := range seed {
		if err := repo.Store(ctx, rep); err != nil {
			t.Fatalf("store %s: %v", rep.ID, err)
		}
	}

	all, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	images, err := repo.List(ctx, Filter{MediaType: "image"})
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("len(images) = %d, want 2", len(images))
	}

	verified, err := repo.List(ctx, Filter{Status: "verified", Limit: 1})
	if err != nil {
		t.Fatalf("list verified: %v", err)
	}
	if len(verified) != 1 || verified[0].ID != "c" {
		t.Errorf("unexpected limited list: %+v", verified)
	}
}

func TestRepositoryCountByStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()

	for i, status := range []string{"verified", "verified", "failed"} {
		rep := sampleReport(string(rune('a'+i)), "image", status, now)
		if err := repo.Store(ctx, rep); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	stats, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats["verified"] != 2 || stats["failed"] != 1 {
		t.Errorf("stats = %v", stats)
	}
}

func TestRepositoryDeleteOlderThan(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.Store(ctx, sampleReport("old", "image", "verified", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("store old: %v", err)
	}
	if err := repo.Store(ctx, sampleReport("new", "image", "verified", now)); err != nil {
		t.Fatalf("store new: %v", err)
	}

	if err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	remaining, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "new" {
		t.Errorf("remaining = %+v", remaining)
	}
}
