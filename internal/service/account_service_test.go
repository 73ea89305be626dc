package service_test

import (
	"context"
	"testing"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/reports"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	repo, s := seededRepo("test_user")
	ctx := context.Background()
	hs := service.NewHabitsService(repo, service.WithClock(clock))
	ts := service.NewTasksService(repo, service.WithClock(clock))
	as := service.NewAccountService(repo, service.WithClock(clock))

	read, err := hs.CreateHabit(ctx, s.Identity, &service.CreateHabitRequest{Name: "Read", Icon: "📚"})
	require.NoError(t, err)
	_, err = hs.CreateHabit(ctx, s.Identity, &service.CreateHabitRequest{Name: "Run"})
	require.NoError(t, err)
	_, err = hs.ToggleHabit(ctx, s.Identity, read.Habit.ID)
	require.NoError(t, err)
	_, err = ts.AddTask(ctx, s.Identity, &service.CreateTaskRequest{Text: "Call mom"})
	require.NoError(t, err)

	t.Run("dashboard", func(t *testing.T) {
		view, err := as.Dashboard(ctx, s.Identity)
		require.NoError(t, err)
		assert.Equal(t, reports.Dashboard{
			TodayProgress: 50,
			ActiveHabits:  2,
			LongestStreak: 1,
			TotalPoints:   10,
		}, view.Stats)
		assert.Len(t, view.Habits, 2)
		assert.Len(t, view.Tasks, 1)
		assert.Equal(t, 3, view.StreakFreezeCredits)
	})
	t.Run("summary", func(t *testing.T) {
		summary, err := as.Summary(ctx, s.Identity)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.UnlockedCount)
		assert.Equal(t, 3, summary.AvailableFreezes)
		assert.Equal(t, 0, summary.DaysActive)
	})
	t.Run("achievements", func(t *testing.T) {
		list, err := as.Achievements(ctx, s.Identity)
		require.NoError(t, err)
		require.Len(t, list, 7)
		assert.Equal(t, "first_habit", list[0].Rule.ID)
		assert.True(t, list[0].Unlocked)
		assert.Equal(t, 100.0, list[0].Percentage)
		assert.False(t, list[3].Unlocked)
		require.NotNil(t, list[3].Progress)
		assert.Equal(t, 2, list[3].Progress.Current)
		assert.InDelta(t, 40.0, list[3].Percentage, 0.001)
	})
	t.Run("weekly report", func(t *testing.T) {
		summary, err := as.Report(ctx, s.Identity, reports.PeriodWeekly)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalCompletions)
		assert.Equal(t, 7, summary.OverallPercentage)
		require.NotNil(t, summary.BestPerformer)
		assert.Equal(t, "Read", *summary.BestPerformer)
	})
	t.Run("unknown period", func(t *testing.T) {
		_, err := as.Report(ctx, s.Identity, reports.Period("yearly"))
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("export and import round trip", func(t *testing.T) {
		before, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		data, err := as.Export(ctx, s.Identity)
		require.NoError(t, err)
		_, err = as.Reset(ctx, s.Identity)
		require.NoError(t, err)
		imported, err := as.Import(ctx, s.Identity, data)
		require.NoError(t, err)
		assert.Equal(t, before, imported)
		after, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
	t.Run("import keeps the session identity", func(t *testing.T) {
		foreign := entity.NewUserSnapshot("someone_else", "", "other_hash", now)
		foreign.StreakFreezeCredits = 1
		data, err := entity.MarshalSnapshot(foreign)
		require.NoError(t, err)
		imported, err := as.Import(ctx, s.Identity, data)
		require.NoError(t, err)
		assert.Equal(t, s.Identity, imported.Identity)
		assert.Equal(t, "pass_hash", imported.CredentialHash)
		assert.Equal(t, 1, imported.StreakFreezeCredits)
	})
	t.Run("invalid import", func(t *testing.T) {
		before, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		_, err = as.Import(ctx, s.Identity, []byte(`{"identity":"x","total_points":5}`))
		assert.ErrorIs(t, err, errorvalues.ErrInvalidSnapshot)
		_, err = as.Import(ctx, s.Identity, []byte(`not json`))
		assert.ErrorIs(t, err, errorvalues.ErrInvalidSnapshot)
		repeated := `{"identity":"x","habits":[{"id":"6a1f4b4e-8c43-4c61-9a51-3a0f3f2e7d11","name":"Read",` +
			`"current_streak":2,"completed_dates":["2026-01-10","2026-01-10"],"freeze_dates":[]}]}`
		_, err = as.Import(ctx, s.Identity, []byte(repeated))
		assert.ErrorIs(t, err, errorvalues.ErrInvalidSnapshot)
		after, err := repo.Load(ctx, s.Identity)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
	t.Run("reset", func(t *testing.T) {
		reset, err := as.Reset(ctx, s.Identity)
		require.NoError(t, err)
		assert.Empty(t, reset.Habits)
		assert.Empty(t, reset.Tasks)
		assert.Empty(t, reset.UnlockedAchievements)
		assert.Equal(t, 0, reset.TotalPoints)
		assert.Equal(t, 3, reset.StreakFreezeCredits)
		assert.Equal(t, "pass_hash", reset.CredentialHash)
		assert.Equal(t, s.CreatedAt, reset.CreatedAt)
	})
}
