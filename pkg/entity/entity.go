package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxStreakFreezeCredits = 3
	DefaultHabitIcon       = "🎯"
)

// UserSnapshot is the whole persisted state of one identity.
type UserSnapshot struct {
	Identity              string                         `json:"identity"`
	Email                 string                         `json:"email,omitempty"`
	CredentialHash        string                         `json:"credential_hash"`
	Habits                []Habit                        `json:"habits"`
	Tasks                 []Task                         `json:"tasks"`
	UnlockedAchievements  map[string]UnlockedAchievement `json:"unlocked_achievements"`
	TotalPoints           int                            `json:"total_points"`
	StreakFreezeCredits   int                            `json:"streak_freeze_credits"`
	FreezeCreditsConsumed int                            `json:"freeze_credits_consumed"`
	LastFreezeRefillAt    time.Time                      `json:"last_freeze_refill_at"`
	CreatedAt             time.Time                      `json:"created_at"`
}

type Habit struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon"`
	CurrentStreak  int       `json:"current_streak"`
	CompletedDates []Day     `json:"completed_dates"`
	FreezeDates    []Day     `json:"freeze_dates"`
	CreatedAt      time.Time `json:"created_at"`
}

type Task struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type UnlockedAchievement struct {
	UnlockedAt    time.Time `json:"unlocked_at"`
	PointsAwarded int       `json:"points_awarded"`
}

// NewUserSnapshot returns a fresh snapshot with full freeze credits.
func NewUserSnapshot(identity, email, credentialHash string, now time.Time) *UserSnapshot {
	return &UserSnapshot{
		Identity:             identity,
		Email:                email,
		CredentialHash:       credentialHash,
		Habits:               make([]Habit, 0),
		Tasks:                make([]Task, 0),
		UnlockedAchievements: make(map[string]UnlockedAchievement),
		StreakFreezeCredits:  MaxStreakFreezeCredits,
		LastFreezeRefillAt:   now,
		CreatedAt:            now,
	}
}

// Normalize replaces nil collections with empty ones so that snapshots decoded
// from storage compare equal to freshly built ones.
func (s *UserSnapshot) Normalize() {
	if s.Habits == nil {
		s.Habits = make([]Habit, 0)
	}
	if s.Tasks == nil {
		s.Tasks = make([]Task, 0)
	}
	if s.UnlockedAchievements == nil {
		s.UnlockedAchievements = make(map[string]UnlockedAchievement)
	}
	for i := range s.Habits {
		if s.Habits[i].CompletedDates == nil {
			s.Habits[i].CompletedDates = make([]Day, 0)
		}
		if s.Habits[i].FreezeDates == nil {
			s.Habits[i].FreezeDates = make([]Day, 0)
		}
	}
}

// Clone returns a deep copy of the snapshot.
func (s *UserSnapshot) Clone() *UserSnapshot {
	c := *s
	c.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		h.CompletedDates = append(make([]Day, 0, len(h.CompletedDates)), h.CompletedDates...)
		h.FreezeDates = append(make([]Day, 0, len(h.FreezeDates)), h.FreezeDates...)
		c.Habits[i] = h
	}
	c.Tasks = append(make([]Task, 0, len(s.Tasks)), s.Tasks...)
	c.UnlockedAchievements = make(map[string]UnlockedAchievement, len(s.UnlockedAchievements))
	for id, u := range s.UnlockedAchievements {
		c.UnlockedAchievements[id] = u
	}
	return &c
}

// HabitIndex returns the position of the habit with id or -1.
func (s *UserSnapshot) HabitIndex(id uuid.UUID) int {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *UserSnapshot) TaskIndex(id uuid.UUID) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *UserSnapshot) CompletedTasks() int {
	count := 0
	for _, t := range s.Tasks {
		if t.Completed {
			count++
		}
	}
	return count
}

func (s *UserSnapshot) LongestStreak() int {
	longest := 0
	for _, h := range s.Habits {
		if h.CurrentStreak > longest {
			longest = h.CurrentStreak
		}
	}
	return longest
}

func (h *Habit) CompletedOn(d Day) bool {
	return ContainsDay(h.CompletedDates, d)
}

func (h *Habit) FrozenOn(d Day) bool {
	return ContainsDay(h.FreezeDates, d)
}

// CoveredOn reports whether d counts toward continuity (completed or frozen).
func (h *Habit) CoveredOn(d Day) bool {
	return h.CompletedOn(d) || h.FrozenOn(d)
}
