package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/ledger"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, time.May, 20, 10, 30, 0, 0, time.UTC)
	today = entity.DayOf(now)
)

func newSnapshot() *entity.UserSnapshot {
	return entity.NewUserSnapshot("test_user", "test@mail.com", "pass_hash", now)
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc  string
		Error error
		Name  string
		Icon  string
		Want  entity.Habit
	}{
		{
			Desc: "success",
			Name: "Read",
			Icon: "📚",
			Want: entity.Habit{Name: "Read", Icon: "📚"},
		},
		{
			Desc: "trimmed name and default icon",
			Name: "  Run  ",
			Want: entity.Habit{Name: "Run", Icon: entity.DefaultHabitIcon},
		},
		{
			Desc:  "error empty name",
			Error: errorvalues.ErrValidation,
			Name:  "   ",
		},
		{
			Desc:  "error markup only",
			Error: errorvalues.ErrValidation,
			Name:  "<b></b>",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			s := newSnapshot()
			habit, err := ledger.CreateHabit(s, tc.Name, tc.Icon, now)
			assert.ErrorIs(t, err, tc.Error)
			if tc.Error != nil {
				assert.Empty(t, s.Habits)
				return
			}
			require.Len(t, s.Habits, 1)
			assert.NotEqual(t, uuid.Nil, habit.ID)
			assert.Equal(t, tc.Want.Name, habit.Name)
			assert.Equal(t, tc.Want.Icon, habit.Icon)
			assert.Zero(t, habit.CurrentStreak)
			assert.Empty(t, habit.CompletedDates)
			assert.Empty(t, habit.FreezeDates)
			assert.Equal(t, now, habit.CreatedAt)
		})
	}
	t.Run("keeps insertion order", func(t *testing.T) {
		s := newSnapshot()
		for _, name := range []string{"a", "b", "c"} {
			_, err := ledger.CreateHabit(s, name, "", now)
			require.NoError(t, err)
		}
		assert.Equal(t, "a", s.Habits[0].Name)
		assert.Equal(t, "c", s.Habits[2].Name)
		assert.NotEqual(t, s.Habits[0].ID, s.Habits[1].ID)
	})
}

func TestToggleCompletion(t *testing.T) {
	t.Parallel()
	t.Run("check in increments streak", func(t *testing.T) {
		s := newSnapshot()
		h, _ := ledger.CreateHabit(s, "Read", "", now)
		habit, err := ledger.ToggleCompletion(s, h.ID, today)
		assert.NoError(t, err)
		assert.Equal(t, 1, habit.CurrentStreak)
		assert.Equal(t, []entity.Day{today}, habit.CompletedDates)
	})
	t.Run("toggle twice is identity", func(t *testing.T) {
		s := newSnapshot()
		h, _ := ledger.CreateHabit(s, "Read", "", now)
		s.Habits[0].CurrentStreak = 4
		s.Habits[0].CompletedDates = []entity.Day{today.AddDays(-2), today.AddDays(-1)}
		before := s.Clone()
		_, err := ledger.ToggleCompletion(s, h.ID, today)
		require.NoError(t, err)
		_, err = ledger.ToggleCompletion(s, h.ID, today)
		require.NoError(t, err)
		assert.Equal(t, before, s)
	})
	t.Run("undo floors streak at zero", func(t *testing.T) {
		s := newSnapshot()
		h, _ := ledger.CreateHabit(s, "Read", "", now)
		s.Habits[0].CompletedDates = []entity.Day{today}
		habit, err := ledger.ToggleCompletion(s, h.ID, today)
		assert.NoError(t, err)
		assert.Zero(t, habit.CurrentStreak)
		assert.Empty(t, habit.CompletedDates)
	})
	t.Run("streak is not recomputed from dates", func(t *testing.T) {
		s := newSnapshot()
		h, _ := ledger.CreateHabit(s, "Read", "", now)
		// checking in on a past day still bumps the counter
		_, err := ledger.ToggleCompletion(s, h.ID, today.AddDays(-10))
		require.NoError(t, err)
		_, err = ledger.ToggleCompletion(s, h.ID, today)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Habits[0].CurrentStreak)
	})
	t.Run("error habit not found", func(t *testing.T) {
		s := newSnapshot()
		_, err := ledger.ToggleCompletion(s, uuid.New(), today)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestApplyStreakFreeze(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc     string
		Error    error
		Credits  int
		Prepare  func(h *entity.Habit)
		Consumed int
	}{
		{
			Desc:     "success",
			Credits:  3,
			Prepare:  func(h *entity.Habit) {},
			Consumed: 1,
		},
		{
			Desc:    "error no credits",
			Error:   errorvalues.ErrNoCredits,
			Credits: 0,
			Prepare: func(h *entity.Habit) {},
		},
		{
			Desc:    "error already completed",
			Error:   errorvalues.ErrAlreadyCovered,
			Credits: 2,
			Prepare: func(h *entity.Habit) { h.CompletedDates = []entity.Day{today} },
		},
		{
			Desc:    "error already frozen",
			Error:   errorvalues.ErrAlreadyCovered,
			Credits: 2,
			Prepare: func(h *entity.Habit) { h.FreezeDates = []entity.Day{today} },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			s := newSnapshot()
			h, _ := ledger.CreateHabit(s, "Read", "", now)
			s.StreakFreezeCredits = tc.Credits
			tc.Prepare(&s.Habits[0])
			before := s.Clone()
			habit, err := ledger.ApplyStreakFreeze(s, h.ID, today)
			assert.ErrorIs(t, err, tc.Error)
			if tc.Error != nil {
				assert.Equal(t, before, s)
				return
			}
			assert.True(t, habit.FrozenOn(today))
			assert.Equal(t, tc.Credits-1, s.StreakFreezeCredits)
			assert.Equal(t, tc.Consumed, s.FreezeCreditsConsumed)
			assert.Zero(t, habit.CurrentStreak)
		})
	}
	t.Run("credits never drop below zero", func(t *testing.T) {
		s := newSnapshot()
		for i := 0; i < 5; i++ {
			h, _ := ledger.CreateHabit(s, "habit", "", now)
			_, _ = ledger.ApplyStreakFreeze(s, h.ID, today)
			assert.GreaterOrEqual(t, s.StreakFreezeCredits, 0)
		}
		assert.Zero(t, s.StreakFreezeCredits)
		assert.Equal(t, 3, s.FreezeCreditsConsumed)
	})
	t.Run("error habit not found", func(t *testing.T) {
		_, err := ledger.ApplyStreakFreeze(newSnapshot(), uuid.New(), today)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestRefillCredits(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc       string
		Credits    int
		SinceRefil time.Duration
		Changed    bool
		Result     int
	}{
		{Desc: "too early", Credits: 1, SinceRefil: 6*24*time.Hour + 23*time.Hour, Changed: false, Result: 1},
		{Desc: "refilled", Credits: 1, SinceRefil: 7 * 24 * time.Hour, Changed: true, Result: 2},
		{Desc: "capped", Credits: 3, SinceRefil: 30 * 24 * time.Hour, Changed: true, Result: 3},
		{Desc: "one per window", Credits: 0, SinceRefil: 21 * 24 * time.Hour, Changed: true, Result: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			s := newSnapshot()
			s.StreakFreezeCredits = tc.Credits
			s.LastFreezeRefillAt = now.Add(-tc.SinceRefil)
			assert.Equal(t, tc.Changed, ledger.RefillDue(s, now))
			changed := ledger.RefillCredits(s, now)
			assert.Equal(t, tc.Changed, changed)
			assert.Equal(t, tc.Result, s.StreakFreezeCredits)
			if tc.Changed {
				assert.Equal(t, now, s.LastFreezeRefillAt)
			}
		})
	}
	t.Run("idempotent within window", func(t *testing.T) {
		s := newSnapshot()
		s.StreakFreezeCredits = 0
		s.LastFreezeRefillAt = now.Add(-8 * 24 * time.Hour)
		for i := 0; i < 10; i++ {
			ledger.RefillCredits(s, now.Add(time.Duration(i)*time.Hour))
		}
		assert.Equal(t, 1, s.StreakFreezeCredits)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()
	s := newSnapshot()
	first, _ := ledger.CreateHabit(s, "first", "", now)
	firstID := first.ID
	second, _ := ledger.CreateHabit(s, "second", "", now)
	secondID := second.ID
	_, err := ledger.ToggleCompletion(s, secondID, today)
	require.NoError(t, err)
	s.UnlockedAchievements["first_habit"] = entity.UnlockedAchievement{UnlockedAt: now, PointsAwarded: 10}
	s.TotalPoints = 10
	kept := s.Habits[1]

	err = ledger.DeleteHabit(s, firstID)
	assert.NoError(t, err)
	require.Len(t, s.Habits, 1)
	assert.Equal(t, kept, s.Habits[0])
	assert.Equal(t, 10, s.TotalPoints)
	assert.Len(t, s.UnlockedAchievements, 1)

	err = ledger.DeleteHabit(s, firstID)
	assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
}

func TestReset(t *testing.T) {
	t.Parallel()
	created := now.Add(-100 * 24 * time.Hour)
	s := entity.NewUserSnapshot("test_user", "test@mail.com", "pass_hash", created)
	_, _ = ledger.CreateHabit(s, "Read", "", now)
	_, _ = ledger.AddTask(s, "buy milk", now)
	s.TotalPoints = 10
	s.StreakFreezeCredits = 0
	s.FreezeCreditsConsumed = 3

	ledger.Reset(s, now)
	assert.Equal(t, "test_user", s.Identity)
	assert.Equal(t, "pass_hash", s.CredentialHash)
	assert.Equal(t, created, s.CreatedAt)
	assert.Empty(t, s.Habits)
	assert.Empty(t, s.Tasks)
	assert.Zero(t, s.TotalPoints)
	assert.Equal(t, 3, s.StreakFreezeCredits)
	assert.Zero(t, s.FreezeCreditsConsumed)
	assert.Equal(t, now, s.LastFreezeRefillAt)
}
