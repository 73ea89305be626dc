package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/internal/achievements"
	"github.com/limbo/habitflow/internal/reports"
	"github.com/limbo/habitflow/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . UserServiceI,SessionServiceI,HabitsServiceI,TasksServiceI,AccountServiceI

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Email    string `validate:"omitempty,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CreateTaskRequest struct {
	Text string `json:"text"`
}

// UnlockedAchievement is an achievement unlocked by the mutation that
// returned it, for the client to celebrate.
type UnlockedAchievement struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Points int    `json:"points"`
}

type HabitResult struct {
	Habit               entity.Habit          `json:"habit"`
	StreakFreezeCredits int                   `json:"streak_freeze_credits"`
	TotalPoints         int                   `json:"total_points"`
	Unlocked            []UnlockedAchievement `json:"unlocked"`
}

type TaskResult struct {
	Task        entity.Task           `json:"task"`
	TotalPoints int                   `json:"total_points"`
	Unlocked    []UnlockedAchievement `json:"unlocked"`
}

// DashboardView is everything the main screen renders.
type DashboardView struct {
	Stats               reports.Dashboard   `json:"stats"`
	Habits              []reports.HabitCard `json:"habits"`
	Tasks               []entity.Task       `json:"tasks"`
	StreakFreezeCredits int                 `json:"streak_freeze_credits"`
}

type UserServiceI interface {
	// Validates credentials and stores a fresh snapshot for the new identity
	Register(ctx context.Context, req *RegisterRequest) (*entity.UserSnapshot, error)
	// Compares given credentials. If ok, gives back the user's snapshot
	Login(ctx context.Context, name, password string) (*entity.UserSnapshot, error)
	GetByIdentity(ctx context.Context, identity string) (*entity.UserSnapshot, error)
	DeleteAccount(ctx context.Context, identity, password string) error
}

// SessionServiceI tracks which identity is signed in on each session.
type SessionServiceI interface {
	// Starts a session for identity and returns its id
	Start(ctx context.Context, identity string) (string, error)
	// Returns identity bound to sessionID. ErrNoSession if it was ended
	Resolve(ctx context.Context, sessionID string) (string, error)
	End(ctx context.Context, sessionID string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, identity string, req *CreateHabitRequest) (*HabitResult, error)
	ListHabits(ctx context.Context, identity string) ([]reports.HabitCard, error)
	// Checks the habit in for today or undoes today's check-in
	ToggleHabit(ctx context.Context, identity string, habitID uuid.UUID) (*HabitResult, error)
	FreezeHabit(ctx context.Context, identity string, habitID uuid.UUID) (*HabitResult, error)
	DeleteHabit(ctx context.Context, identity string, habitID uuid.UUID) error
}

type TasksServiceI interface {
	AddTask(ctx context.Context, identity string, req *CreateTaskRequest) (*TaskResult, error)
	ListTasks(ctx context.Context, identity string) ([]entity.Task, error)
	ToggleTask(ctx context.Context, identity string, taskID uuid.UUID) (*TaskResult, error)
	DeleteTask(ctx context.Context, identity string, taskID uuid.UUID) error
}

type AccountServiceI interface {
	Dashboard(ctx context.Context, identity string) (*DashboardView, error)
	Summary(ctx context.Context, identity string) (*reports.AccountSummary, error)
	Achievements(ctx context.Context, identity string) ([]achievements.Status, error)
	Report(ctx context.Context, identity string, period reports.Period) (*reports.Summary, error)
	// Returns the whole snapshot as indented JSON
	Export(ctx context.Context, identity string) ([]byte, error)
	// Replaces the snapshot with an exported one, keeping identity and credentials
	Import(ctx context.Context, identity string, data []byte) (*entity.UserSnapshot, error)
	Reset(ctx context.Context, identity string) (*entity.UserSnapshot, error)
}
