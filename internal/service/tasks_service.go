package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/internal/achievements"
	"github.com/limbo/habitflow/internal/ledger"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
)

type TasksService struct {
	*snapshots
}

func NewTasksService(snapshotsRepo repository.SnapshotsRepositoryI, opts ...Option) *TasksService {
	return &TasksService{
		snapshots: newSnapshots(snapshotsRepo, opts...),
	}
}

func (ts *TasksService) AddTask(ctx context.Context, identity string, req *CreateTaskRequest) (*TaskResult, error) {
	if req == nil {
		req = &CreateTaskRequest{}
	}
	var taskID uuid.UUID
	s, unlocked, err := ts.update(ctx, identity, func(s *entity.UserSnapshot, now time.Time) error {
		task, err := ledger.AddTask(s, req.Text, now)
		if err != nil {
			return err
		}
		taskID = task.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taskResult(s, taskID, unlocked), nil
}

func (ts *TasksService) ListTasks(ctx context.Context, identity string) ([]entity.Task, error) {
	s, err := ts.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.Tasks, nil
}

func (ts *TasksService) ToggleTask(ctx context.Context, identity string, taskID uuid.UUID) (*TaskResult, error) {
	s, unlocked, err := ts.update(ctx, identity, func(s *entity.UserSnapshot, _ time.Time) error {
		_, err := ledger.ToggleTask(s, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return taskResult(s, taskID, unlocked), nil
}

func (ts *TasksService) DeleteTask(ctx context.Context, identity string, taskID uuid.UUID) error {
	_, _, err := ts.update(ctx, identity, func(s *entity.UserSnapshot, _ time.Time) error {
		return ledger.DeleteTask(s, taskID)
	})
	return err
}

func taskResult(s *entity.UserSnapshot, taskID uuid.UUID, unlocked []achievements.Rule) *TaskResult {
	result := &TaskResult{
		TotalPoints: s.TotalPoints,
		Unlocked:    unlockedView(unlocked),
	}
	if idx := s.TaskIndex(taskID); idx >= 0 {
		result.Task = s.Tasks[idx]
	}
	return result
}
