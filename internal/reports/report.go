// Package reports builds read-only summaries of a user snapshot for display.
package reports

import (
	"math"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// WindowDays returns the length of the trailing window.
func (p Period) WindowDays() (int, error) {
	switch p {
	case PeriodWeekly:
		return 7, nil
	case PeriodMonthly:
		return 30, nil
	}
	return 0, errorvalues.ErrValidation
}

type HabitPerformance struct {
	HabitID             uuid.UUID `json:"habit_id"`
	Name                string    `json:"name"`
	Icon                string    `json:"icon"`
	CurrentStreak       int       `json:"current_streak"`
	CompletionsInPeriod int       `json:"completions_in_period"`
	Percentage          int       `json:"percentage"`
}

type Summary struct {
	Period            Period             `json:"period"`
	WindowDays        int                `json:"window_days"`
	TotalCompletions  int                `json:"total_completions"`
	OverallPercentage int                `json:"overall_percentage"`
	BestPerformer     *string            `json:"best_performer"`
	ActiveHabits      int                `json:"active_habits"`
	Habits            []HabitPerformance `json:"habits"`
}

// Generate rolls completions up over the trailing window. A completion counts
// when its whole-day age from now is at most the window length, so a weekly
// window actually spans today and the seven days before it. BestPerformer
// stays nil until some habit scores above zero.
func Generate(s *entity.UserSnapshot, period Period, now time.Time) (*Summary, error) {
	windowDays, err := period.WindowDays()
	if err != nil {
		return nil, err
	}
	summary := &Summary{
		Period:       period,
		WindowDays:   windowDays,
		ActiveHabits: len(s.Habits),
		Habits:       make([]HabitPerformance, 0, len(s.Habits)),
	}
	bestPercentage := 0
	for i := range s.Habits {
		habit := &s.Habits[i]
		completions := 0
		for _, day := range habit.CompletedDates {
			age, err := day.AgeInDays(now)
			if err != nil {
				continue
			}
			if age <= windowDays {
				completions++
			}
		}
		percentage := roundPercent(completions, windowDays)
		summary.TotalCompletions += completions
		summary.Habits = append(summary.Habits, HabitPerformance{
			HabitID:             habit.ID,
			Name:                habit.Name,
			Icon:                habit.Icon,
			CurrentStreak:       habit.CurrentStreak,
			CompletionsInPeriod: completions,
			Percentage:          percentage,
		})
		if percentage > bestPercentage {
			bestPercentage = percentage
			name := habit.Name
			summary.BestPerformer = &name
		}
	}
	summary.OverallPercentage = roundPercent(summary.TotalCompletions, len(s.Habits)*windowDays)
	return summary, nil
}

func roundPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
