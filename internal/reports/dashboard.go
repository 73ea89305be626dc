package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/pkg/entity"
)

const habitProgressDays = 30

type Dashboard struct {
	TodayProgress int `json:"today_progress"`
	ActiveHabits  int `json:"active_habits"`
	LongestStreak int `json:"longest_streak"`
	TotalPoints   int `json:"total_points"`
}

// BuildDashboard returns the share of habits done today and headline counters.
func BuildDashboard(s *entity.UserSnapshot, now time.Time) Dashboard {
	today := entity.DayOf(now)
	done := 0
	for i := range s.Habits {
		if s.Habits[i].CompletedOn(today) {
			done++
		}
	}
	return Dashboard{
		TodayProgress: roundPercent(done, len(s.Habits)),
		ActiveHabits:  len(s.Habits),
		LongestStreak: s.LongestStreak(),
		TotalPoints:   s.TotalPoints,
	}
}

type HabitCard struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon"`
	CurrentStreak  int       `json:"current_streak"`
	CompletedToday bool      `json:"completed_today"`
	FrozenToday    bool      `json:"frozen_today"`
	CanUseFreeze   bool      `json:"can_use_freeze"`
	Progress       float64   `json:"progress"`
}

// HabitCards renders every habit for the habit list. Progress is the streak
// measured against a 30-day goal and stays zero until the first completion.
func HabitCards(s *entity.UserSnapshot, now time.Time) []HabitCard {
	today := entity.DayOf(now)
	cards := make([]HabitCard, 0, len(s.Habits))
	for i := range s.Habits {
		h := &s.Habits[i]
		card := HabitCard{
			ID:             h.ID,
			Name:           h.Name,
			Icon:           h.Icon,
			CurrentStreak:  h.CurrentStreak,
			CompletedToday: h.CompletedOn(today),
			FrozenToday:    h.FrozenOn(today),
		}
		card.CanUseFreeze = s.StreakFreezeCredits > 0 && !card.CompletedToday && !card.FrozenToday
		if len(h.CompletedDates) > 0 {
			card.Progress = min(100, float64(h.CurrentStreak)/habitProgressDays*100)
		}
		cards = append(cards, card)
	}
	return cards
}

type AccountSummary struct {
	Identity         string    `json:"identity"`
	Email            string    `json:"email,omitempty"`
	Habits           int       `json:"habits"`
	TotalPoints      int       `json:"total_points"`
	DaysActive       int       `json:"days_active"`
	UnlockedCount    int       `json:"unlocked_count"`
	AvailableFreezes int       `json:"available_freezes"`
	CreatedAt        time.Time `json:"created_at"`
}

func BuildAccountSummary(s *entity.UserSnapshot, now time.Time) AccountSummary {
	return AccountSummary{
		Identity:         s.Identity,
		Email:            s.Email,
		Habits:           len(s.Habits),
		TotalPoints:      s.TotalPoints,
		DaysActive:       max(0, entity.DaysBetween(s.CreatedAt, now)),
		UnlockedCount:    len(s.UnlockedAchievements),
		AvailableFreezes: s.StreakFreezeCredits,
		CreatedAt:        s.CreatedAt,
	}
}
