package ledger

import (
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

const maxTaskTextLen = 500

func AddTask(s *entity.UserSnapshot, text string, now time.Time) (*entity.Task, error) {
	text, err := cleanText("task text", text, maxTaskTextLen)
	if err != nil {
		return nil, err
	}
	s.Tasks = append(s.Tasks, entity.Task{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: now,
	})
	return &s.Tasks[len(s.Tasks)-1], nil
}

func ToggleTask(s *entity.UserSnapshot, taskID uuid.UUID) (*entity.Task, error) {
	idx := s.TaskIndex(taskID)
	if idx < 0 {
		return nil, errorvalues.ErrTaskNotFound
	}
	s.Tasks[idx].Completed = !s.Tasks[idx].Completed
	return &s.Tasks[idx], nil
}

func DeleteTask(s *entity.UserSnapshot, taskID uuid.UUID) error {
	idx := s.TaskIndex(taskID)
	if idx < 0 {
		return errorvalues.ErrTaskNotFound
	}
	s.Tasks = append(s.Tasks[:idx], s.Tasks[idx+1:]...)
	return nil
}
