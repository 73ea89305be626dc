package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/internal/achievements"
	"github.com/limbo/habitflow/internal/ledger"
	"github.com/limbo/habitflow/internal/reports"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
)

type HabitsService struct {
	*snapshots
}

func NewHabitsService(snapshotsRepo repository.SnapshotsRepositoryI, opts ...Option) *HabitsService {
	return &HabitsService{
		snapshots: newSnapshots(snapshotsRepo, opts...),
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, identity string, req *CreateHabitRequest) (*HabitResult, error) {
	if req == nil {
		req = &CreateHabitRequest{}
	}
	var habitID uuid.UUID
	s, unlocked, err := hs.update(ctx, identity, func(s *entity.UserSnapshot, now time.Time) error {
		habit, err := ledger.CreateHabit(s, req.Name, req.Icon, now)
		if err != nil {
			return err
		}
		habitID = habit.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habitResult(s, habitID, unlocked), nil
}

func (hs *HabitsService) ListHabits(ctx context.Context, identity string) ([]reports.HabitCard, error) {
	s, err := hs.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return reports.HabitCards(s, hs.now()), nil
}

func (hs *HabitsService) ToggleHabit(ctx context.Context, identity string, habitID uuid.UUID) (*HabitResult, error) {
	s, unlocked, err := hs.update(ctx, identity, func(s *entity.UserSnapshot, now time.Time) error {
		_, err := ledger.ToggleCompletion(s, habitID, entity.DayOf(now))
		return err
	})
	if err != nil {
		return nil, err
	}
	return habitResult(s, habitID, unlocked), nil
}

func (hs *HabitsService) FreezeHabit(ctx context.Context, identity string, habitID uuid.UUID) (*HabitResult, error) {
	s, unlocked, err := hs.update(ctx, identity, func(s *entity.UserSnapshot, now time.Time) error {
		_, err := ledger.ApplyStreakFreeze(s, habitID, entity.DayOf(now))
		return err
	})
	if err != nil {
		return nil, err
	}
	return habitResult(s, habitID, unlocked), nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, identity string, habitID uuid.UUID) error {
	_, _, err := hs.update(ctx, identity, func(s *entity.UserSnapshot, _ time.Time) error {
		return ledger.DeleteHabit(s, habitID)
	})
	return err
}

func habitResult(s *entity.UserSnapshot, habitID uuid.UUID, unlocked []achievements.Rule) *HabitResult {
	result := &HabitResult{
		StreakFreezeCredits: s.StreakFreezeCredits,
		TotalPoints:         s.TotalPoints,
		Unlocked:            unlockedView(unlocked),
	}
	if idx := s.HabitIndex(habitID); idx >= 0 {
		result.Habit = s.Habits[idx]
	}
	return result
}
