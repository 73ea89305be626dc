package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/notify"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/repository/mocks"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitsService(t *testing.T) {
	repo, s := seededRepo("test_user")
	publisher := &recordingPublisher{}
	hs := service.NewHabitsService(repo, options(publisher)...)
	ctx := context.Background()
	today := entity.DayOf(now)
	var habitID uuid.UUID
	t.Run("created habit unlocks first achievement", func(t *testing.T) {
		res, err := hs.CreateHabit(ctx, s.Identity, &service.CreateHabitRequest{Name: "  Read  "})
		require.NoError(t, err)
		habitID = res.Habit.ID
		assert.Equal(t, "Read", res.Habit.Name)
		assert.Equal(t, entity.DefaultHabitIcon, res.Habit.Icon)
		assert.Equal(t, 10, res.TotalPoints)
		require.Len(t, res.Unlocked, 1)
		assert.Equal(t, "first_habit", res.Unlocked[0].ID)
		require.Len(t, publisher.events, 1)
		event := publisher.events[0].(notify.AchievementUnlocked)
		assert.Equal(t, "first_habit", event.AchievementID)
		assert.Equal(t, s.Identity, event.Identity)
		assert.Equal(t, now, event.UnlockedAt)
		assert.Equal(t, []string{s.Identity}, publisher.keys)
	})
	t.Run("empty name rejected", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, s.Identity, &service.CreateHabitRequest{Name: "   "})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		stored, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		assert.Len(t, stored.Habits, 1)
	})
	t.Run("toggle is self-inverse", func(t *testing.T) {
		res, err := hs.ToggleHabit(ctx, s.Identity, habitID)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Habit.CurrentStreak)
		assert.Equal(t, []entity.Day{today}, res.Habit.CompletedDates)
		assert.Empty(t, res.Unlocked)

		res, err = hs.ToggleHabit(ctx, s.Identity, habitID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Habit.CurrentStreak)
		assert.Empty(t, res.Habit.CompletedDates)
	})
	t.Run("freeze spends a credit and unlocks comeback", func(t *testing.T) {
		res, err := hs.FreezeHabit(ctx, s.Identity, habitID)
		require.NoError(t, err)
		assert.Equal(t, []entity.Day{today}, res.Habit.FreezeDates)
		assert.Equal(t, 2, res.StreakFreezeCredits)
		require.Len(t, res.Unlocked, 1)
		assert.Equal(t, "comeback_kid", res.Unlocked[0].ID)
		assert.Equal(t, 50, res.TotalPoints)
	})
	t.Run("second freeze on same day", func(t *testing.T) {
		_, err := hs.FreezeHabit(ctx, s.Identity, habitID)
		assert.ErrorIs(t, err, errorvalues.ErrAlreadyCovered)
		stored, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.StreakFreezeCredits)
	})
	t.Run("unknown habit", func(t *testing.T) {
		_, err := hs.ToggleHabit(ctx, s.Identity, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
		_, err = hs.FreezeHabit(ctx, s.Identity, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
		assert.ErrorIs(t, hs.DeleteHabit(ctx, s.Identity, uuid.New()), errorvalues.ErrHabitNotFound)
	})
	t.Run("unknown identity", func(t *testing.T) {
		_, err := hs.ToggleHabit(ctx, "nobody", habitID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("listed cards", func(t *testing.T) {
		cards, err := hs.ListHabits(ctx, s.Identity)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.True(t, cards[0].FrozenToday)
		assert.False(t, cards[0].CanUseFreeze)
	})
	t.Run("deleted habit keeps points", func(t *testing.T) {
		require.NoError(t, hs.DeleteHabit(ctx, s.Identity, habitID))
		stored, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		assert.Empty(t, stored.Habits)
		assert.Equal(t, 50, stored.TotalPoints)
		assert.Len(t, stored.UnlockedAchievements, 2)
	})
}

func TestHabitsServiceRefillOnLoad(t *testing.T) {
	repo, s := seededRepo("test_user")
	ctx := context.Background()
	s.StreakFreezeCredits = 1
	s.LastFreezeRefillAt = now.Add(-8 * 24 * time.Hour)
	require.NoError(t, repo.Save(ctx, s))
	hs := service.NewHabitsService(repo, service.WithClock(clock))

	_, err := hs.ListHabits(ctx, s.Identity)
	require.NoError(t, err)
	stored, err := repo.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.StreakFreezeCredits)
	assert.Equal(t, now, stored.LastFreezeRefillAt)

	_, err = hs.ListHabits(ctx, s.Identity)
	require.NoError(t, err)
	stored, err = repo.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.StreakFreezeCredits)
}

func TestHabitsServiceFreezeWithoutCredits(t *testing.T) {
	repo, s := seededRepo("test_user")
	ctx := context.Background()
	s.StreakFreezeCredits = 0
	require.NoError(t, repo.Save(ctx, s))
	hs := service.NewHabitsService(repo, service.WithClock(clock))
	res, err := hs.CreateHabit(ctx, s.Identity, &service.CreateHabitRequest{Name: "Run", Icon: "🏃"})
	require.NoError(t, err)
	_, err = hs.FreezeHabit(ctx, s.Identity, res.Habit.ID)
	assert.ErrorIs(t, err, errorvalues.ErrNoCredits)
	stored, err := repo.Load(ctx, s.Identity)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FreezeCreditsConsumed)
	assert.Empty(t, stored.Habits[0].FreezeDates)
}

func TestHabitsServiceRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	testCases := []struct {
		Desc         string
		RepoErr      error
		ExpectedErr  error
		Unrecognized bool
	}{
		{Desc: "storage error", RepoErr: errors.Join(errorvalues.ErrStorage, errors.New("quota exceeded")), ExpectedErr: errorvalues.ErrStorage},
		{Desc: "user not found", RepoErr: errorvalues.ErrUserNotFound, ExpectedErr: errorvalues.ErrUserNotFound},
		{Desc: "unexpected error", RepoErr: errors.New("boom"), Unrecognized: true},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			repo := mocks.NewMockSnapshotsRepositoryI(ctrl)
			publisher := &recordingPublisher{}
			hs := service.NewHabitsService(repo, options(publisher)...)
			repo.EXPECT().Update(gomock.Any(), "test_user", gomock.Any()).Return(nil, tc.RepoErr)
			_, err := hs.CreateHabit(ctx, "test_user", &service.CreateHabitRequest{Name: "Read"})
			assert.Error(t, err)
			if tc.Unrecognized {
				assert.ErrorContains(t, err, "snapshots repository error")
			} else {
				assert.ErrorIs(t, err, tc.ExpectedErr)
			}
			assert.Empty(t, publisher.events)
		})
	}
}

func TestHabitsServicePublisherFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockSnapshotsRepositoryI(ctrl)
	publisher := &recordingPublisher{err: errBroker}
	hs := service.NewHabitsService(repo, options(publisher)...)
	s := entity.NewUserSnapshot("test_user", "", "pass_hash", now)
	repo.EXPECT().Update(gomock.Any(), "test_user", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn repository.UpdateFunc) (*entity.UserSnapshot, error) {
			if err := fn(s); err != nil {
				return nil, err
			}
			return s, nil
		})
	res, err := hs.CreateHabit(context.Background(), "test_user", &service.CreateHabitRequest{Name: "Read"})
	require.NoError(t, err)
	assert.Len(t, res.Unlocked, 1)
	assert.Equal(t, 10, res.TotalPoints)
}
