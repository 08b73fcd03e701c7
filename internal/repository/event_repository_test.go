package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/event-status-service/internal/domain"
	"github.com/spec-kit/event-status-service/internal/persistence"
)

// newTestPostgresRepository connects to the database named by PGX_TEST_DSN
// and applies the service migrations. Tests are skipped without it.
func newTestPostgresRepository(t *testing.T) (EventRepository, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("PGX_TEST_DSN")
	if dsn == "" {
		t.Skip("PGX_TEST_DSN not set; skipping postgres repository tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := persistence.RunMigrations(ctx, pool, "../../migrations", zap.NewNop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewPostgresEventRepository(pool), pool
}

// uniqueGroup isolates each test's rows in a shared database.
func uniqueGroup(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	groupID := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM events WHERE group_id=$1`, groupID)
	})
	return groupID
}

func TestPostgresEventRepositoryReturnsNilForUnknownGroup(t *testing.T) {
	repo, pool := newTestPostgresRepository(t)
	groupID := uniqueGroup(t, pool)

	event, err := repo.GetLastEvent(context.Background(), groupID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Fatalf("expected no event, got %+v", event)
	}
}

func TestPostgresEventRepositoryReturnsLatestEndDate(t *testing.T) {
	repo, pool := newTestPostgresRepository(t)
	groupID := uniqueGroup(t, pool)
	otherGroup := uniqueGroup(t, pool)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	older := &domain.Event{ID: uuid.NewString(), GroupID: groupID, EndDate: base, ReviewDurationHours: 1, CreatedAt: base}
	newer := &domain.Event{ID: uuid.NewString(), GroupID: groupID, Title: "May poll", EndDate: base.Add(24 * time.Hour), ReviewDurationHours: 2.5, CreatedAt: base}
	other := &domain.Event{ID: uuid.NewString(), GroupID: otherGroup, EndDate: base.Add(48 * time.Hour), CreatedAt: base}
	for _, e := range []*domain.Event{newer, older, other} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s failed: %v", e.ID, err)
		}
	}

	got, err := repo.GetLastEvent(ctx, groupID)
	if err != nil {
		t.Fatalf("get last failed: %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Fatalf("expected %s, got %+v", newer.ID, got)
	}
	if !got.EndDate.Equal(newer.EndDate) || got.ReviewDurationHours != 2.5 || got.Title != "May poll" {
		t.Fatalf("event fields not preserved: %+v", got)
	}
}

func TestPostgresEventRepositoryBreaksTiesOnCreatedAt(t *testing.T) {
	repo, pool := newTestPostgresRepository(t)
	groupID := uniqueGroup(t, pool)
	ctx := context.Background()
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// End dates differ below the stored precision, so the newest row wins.
	first := &domain.Event{ID: uuid.NewString(), GroupID: groupID, EndDate: end.Add(900 * time.Microsecond), CreatedAt: end.Add(-2 * time.Hour)}
	second := &domain.Event{ID: uuid.NewString(), GroupID: groupID, EndDate: end.Add(100 * time.Microsecond), CreatedAt: end.Add(-time.Hour)}
	for _, e := range []*domain.Event{first, second} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.GetLastEvent(ctx, groupID)
	if err != nil {
		t.Fatalf("get last failed: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("expected most recently created event, got %s", got.ID)
	}
	if !got.EndDate.Equal(end) {
		t.Fatalf("expected end date truncated to %s, got %s", end, got.EndDate)
	}
}
