package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

type mockStatsRepo struct {
	collectErr error
	insertErr  error
	inserted   *domain.StatsSnapshot
}

func (m *mockStatsRepo) Collect(context.Context) (*domain.StatsSnapshot, error) {
	if m.collectErr != nil {
		return nil, m.collectErr
	}
	return &domain.StatsSnapshot{TotalEntries: 42, PublishedEntries: 40, TotalSenses: 99}, nil
}

func (m *mockStatsRepo) InsertSnapshot(_ context.Context, snap *domain.StatsSnapshot) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = snap
	snap.TakenAt = time.Now()
	return nil
}

func TestUpdateStats(t *testing.T) {
	t.Parallel()

	repo := &mockStatsRepo{}
	snap, err := UpdateStats(context.Background(), discardLogger(), repo)
	if err != nil {
		t.Fatalf("UpdateStats: %v", err)
	}
	if snap.TotalEntries != 42 || snap.PublishedEntries != 40 {
		t.Errorf("snapshot: got %+v", snap)
	}
	if repo.inserted != snap {
		t.Error("collected snapshot was not the one persisted")
	}
	if snap.TakenAt.IsZero() {
		t.Error("taken_at not set on persist")
	}
}

func TestUpdateStats_CollectFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := UpdateStats(context.Background(), discardLogger(), &mockStatsRepo{collectErr: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped collect error, got %v", err)
	}
}
