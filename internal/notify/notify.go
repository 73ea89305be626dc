// Package notify delivers domain events, such as unlocked achievements, to
// outside consumers.
package notify

import (
	"context"
	"time"
)

const AchievementUnlockedType = "achievement.unlocked"

// AchievementUnlocked is emitted once per achievement when it is first unlocked.
type AchievementUnlocked struct {
	Type          string    `json:"type"`
	Identity      string    `json:"identity"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	TotalPoints   int       `json:"total_points"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

type PublisherI interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, event any) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
