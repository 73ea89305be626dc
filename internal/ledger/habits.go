// Package ledger holds the mutations over habits and tasks of a single user
// snapshot. Every function validates its input before touching the snapshot,
// so a returned error always means the snapshot is unchanged.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

const (
	maxHabitNameLen = 100
	refillInterval  = 7 // days
)

// CreateHabit appends a new habit with zero streak and empty date sets.
func CreateHabit(s *entity.UserSnapshot, name, icon string, now time.Time) (*entity.Habit, error) {
	name, err := cleanText("habit name", name, maxHabitNameLen)
	if err != nil {
		return nil, err
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = entity.DefaultHabitIcon
	}
	s.Habits = append(s.Habits, entity.Habit{
		ID:             uuid.New(),
		Name:           name,
		Icon:           icon,
		CompletedDates: make([]entity.Day, 0),
		FreezeDates:    make([]entity.Day, 0),
		CreatedAt:      now,
	})
	return &s.Habits[len(s.Habits)-1], nil
}

// ToggleCompletion checks the habit in for today or undoes today's check-in.
// The streak is a counter moved by one on each toggle; it is never derived
// from CompletedDates, so freezes and past-day edits can make the two disagree.
func ToggleCompletion(s *entity.UserSnapshot, habitID uuid.UUID, today entity.Day) (*entity.Habit, error) {
	idx := s.HabitIndex(habitID)
	if idx < 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	if !today.Valid() {
		return nil, errorvalues.ErrValidation
	}
	habit := &s.Habits[idx]
	if habit.CompletedOn(today) {
		habit.CompletedDates = entity.RemoveDay(habit.CompletedDates, today)
		habit.CurrentStreak = max(0, habit.CurrentStreak-1)
	} else {
		habit.CompletedDates = entity.AddDay(habit.CompletedDates, today)
		habit.CurrentStreak++
	}
	return habit, nil
}

// ApplyStreakFreeze spends one credit to cover today for the habit.
func ApplyStreakFreeze(s *entity.UserSnapshot, habitID uuid.UUID, today entity.Day) (*entity.Habit, error) {
	idx := s.HabitIndex(habitID)
	if idx < 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	if !today.Valid() {
		return nil, errorvalues.ErrValidation
	}
	if s.StreakFreezeCredits <= 0 {
		return nil, errorvalues.ErrNoCredits
	}
	habit := &s.Habits[idx]
	if habit.CoveredOn(today) {
		return nil, errorvalues.ErrAlreadyCovered
	}
	habit.FreezeDates = entity.AddDay(habit.FreezeDates, today)
	s.StreakFreezeCredits--
	s.FreezeCreditsConsumed++
	return habit, nil
}

// RefillCredits grants one freeze credit (up to the cap) once seven whole days
// have passed since the previous refill. The refill clock restarts even when
// the credits are already full. Reports whether the snapshot changed.
func RefillCredits(s *entity.UserSnapshot, now time.Time) bool {
	if !RefillDue(s, now) {
		return false
	}
	s.StreakFreezeCredits = min(entity.MaxStreakFreezeCredits, s.StreakFreezeCredits+1)
	s.LastFreezeRefillAt = now
	return true
}

// RefillDue reports whether RefillCredits would change the snapshot.
func RefillDue(s *entity.UserSnapshot, now time.Time) bool {
	return entity.DaysBetween(s.LastFreezeRefillAt, now) >= refillInterval
}

// DeleteHabit removes the habit. Points and unlocked achievements stay.
func DeleteHabit(s *entity.UserSnapshot, habitID uuid.UUID) error {
	idx := s.HabitIndex(habitID)
	if idx < 0 {
		return errorvalues.ErrHabitNotFound
	}
	s.Habits = append(s.Habits[:idx], s.Habits[idx+1:]...)
	return nil
}

// Reset wipes habits, tasks and achievements and restores the freeze credits.
// Identity, credentials and registration time are kept.
func Reset(s *entity.UserSnapshot, now time.Time) {
	fresh := entity.NewUserSnapshot(s.Identity, s.Email, s.CredentialHash, now)
	fresh.CreatedAt = s.CreatedAt
	*s = *fresh
}
