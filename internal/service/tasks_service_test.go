package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksService(t *testing.T) {
	repo, s := seededRepo("test_user")
	publisher := &recordingPublisher{}
	ts := service.NewTasksService(repo, options(publisher)...)
	ctx := context.Background()
	var taskID uuid.UUID
	t.Run("added", func(t *testing.T) {
		res, err := ts.AddTask(ctx, s.Identity, &service.CreateTaskRequest{Text: "Buy <b>milk</b>"})
		require.NoError(t, err)
		taskID = res.Task.ID
		assert.Equal(t, "Buy milk", res.Task.Text)
		assert.False(t, res.Task.Completed)
		assert.Equal(t, now, res.Task.CreatedAt)
	})
	t.Run("empty text rejected", func(t *testing.T) {
		_, err := ts.AddTask(ctx, s.Identity, &service.CreateTaskRequest{Text: "<script>x</script>"})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("toggled", func(t *testing.T) {
		res, err := ts.ToggleTask(ctx, s.Identity, taskID)
		require.NoError(t, err)
		assert.True(t, res.Task.Completed)
		res, err = ts.ToggleTask(ctx, s.Identity, taskID)
		require.NoError(t, err)
		assert.False(t, res.Task.Completed)
	})
	t.Run("listed", func(t *testing.T) {
		tasks, err := ts.ListTasks(ctx, s.Identity)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, taskID, tasks[0].ID)
	})
	t.Run("unknown task", func(t *testing.T) {
		_, err := ts.ToggleTask(ctx, s.Identity, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrTaskNotFound)
		assert.ErrorIs(t, ts.DeleteTask(ctx, s.Identity, uuid.New()), errorvalues.ErrTaskNotFound)
	})
	t.Run("deleted", func(t *testing.T) {
		require.NoError(t, ts.DeleteTask(ctx, s.Identity, taskID))
		tasks, err := ts.ListTasks(ctx, s.Identity)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
	t.Run("fiftieth completed task unlocks task master", func(t *testing.T) {
		var last *service.TaskResult
		for i := 0; i < 50; i++ {
			res, err := ts.AddTask(ctx, s.Identity, &service.CreateTaskRequest{Text: "chore"})
			require.NoError(t, err)
			last, err = ts.ToggleTask(ctx, s.Identity, res.Task.ID)
			require.NoError(t, err)
			if i < 49 {
				assert.Empty(t, last.Unlocked)
			}
		}
		require.Len(t, last.Unlocked, 1)
		assert.Equal(t, "task_master", last.Unlocked[0].ID)
		assert.Equal(t, 60, last.TotalPoints)
		assert.Len(t, publisher.events, 1)
	})
}
