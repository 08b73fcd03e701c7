package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-status-service/internal/domain"
)

// EventRepository manages persistence for group events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	// GetLastEvent returns the group's most recent event, or nil when it has none.
	GetLastEvent(ctx context.Context, groupID string) (*domain.Event, error)
}

type postgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository constructs a pgx backed repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) EventRepository {
	return &postgresEventRepository{pool: pool}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (id, group_id, title, end_date, review_duration_hours, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.GroupID,
		event.Title,
		event.EndDate.Truncate(domain.EndDatePrecision),
		event.ReviewDurationHours,
		event.CreatedAt,
	)
	return err
}

func (r *postgresEventRepository) GetLastEvent(ctx context.Context, groupID string) (*domain.Event, error) {
	const query = `
        SELECT id, group_id, title, end_date, review_duration_hours, created_at
        FROM events WHERE group_id=$1
        ORDER BY end_date DESC, created_at DESC
        LIMIT 1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&event.ID,
		&event.GroupID,
		&event.Title,
		&event.EndDate,
		&event.ReviewDurationHours,
		&event.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
