package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/event-status-service/internal/domain"
)

const eventKeyPrefix = "events:group:"

type redisEventRepository struct {
	client *redis.Client
}

// NewRedisEventRepository stores each group's events in a sorted set scored
// by end date in unix milliseconds.
func NewRedisEventRepository(client *redis.Client) EventRepository {
	return &redisEventRepository{client: client}
}

type redisEventRecord struct {
	ID                  string    `json:"id"`
	GroupID             string    `json:"group_id"`
	Title               string    `json:"title,omitempty"`
	EndDate             time.Time `json:"end_date"`
	ReviewDurationHours float64   `json:"review_duration_hours"`
	CreatedAt           time.Time `json:"created_at"`
}

func (r *redisEventRepository) Create(ctx context.Context, event *domain.Event) error {
	endDate := event.EndDate.UTC().Truncate(domain.EndDatePrecision)
	payload, err := json.Marshal(redisEventRecord{
		ID:                  event.ID,
		GroupID:             event.GroupID,
		Title:               event.Title,
		EndDate:             endDate,
		ReviewDurationHours: event.ReviewDurationHours,
		CreatedAt:           event.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return r.client.ZAdd(ctx, groupKey(event.GroupID), redis.Z{
		Score:  float64(endDate.UnixMilli()),
		Member: string(payload),
	}).Err()
}

func (r *redisEventRepository) GetLastEvent(ctx context.Context, groupID string) (*domain.Event, error) {
	// Members sharing the top score are compared lexically, so fetch all of
	// them and break the tie on CreatedAt like the SQL store does.
	top, err := r.client.ZRevRangeWithScores(ctx, groupKey(groupID), 0, 0).Result()
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, nil
	}
	score := strconv.FormatFloat(top[0].Score, 'f', -1, 64)
	members, err := r.client.ZRangeByScore(ctx, groupKey(groupID), &redis.ZRangeBy{Min: score, Max: score}).Result()
	if err != nil {
		return nil, err
	}

	var last *domain.Event
	for _, member := range members {
		var rec redisEventRecord
		if err := json.Unmarshal([]byte(member), &rec); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		if last == nil || rec.CreatedAt.After(last.CreatedAt) {
			last = &domain.Event{
				ID:                  rec.ID,
				GroupID:             rec.GroupID,
				Title:               rec.Title,
				EndDate:             rec.EndDate,
				ReviewDurationHours: rec.ReviewDurationHours,
				CreatedAt:           rec.CreatedAt,
			}
		}
	}
	return last, nil
}

func groupKey(groupID string) string {
	return eventKeyPrefix + groupID
}
