package achievements

import (
	"time"

	"github.com/limbo/habitflow/pkg/entity"
)

// Metric extracts a numeric measure from a snapshot.
type Metric func(s *entity.UserSnapshot, now time.Time) int

// Predicate decides a rule that has no numeric progress.
type Predicate func(s *entity.UserSnapshot, now time.Time) bool

// Rule is either a threshold rule (Metric reaches Target) or a predicate rule.
// Exactly one of Metric and Predicate is set.
type Rule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`

	Metric    Metric    `json:"-"`
	Target    int       `json:"-"`
	Predicate Predicate `json:"-"`
}

// Holds reports whether the rule's condition is met.
func (r *Rule) Holds(s *entity.UserSnapshot, now time.Time) bool {
	if r.Metric != nil {
		return r.Metric(s, now) >= r.Target
	}
	if r.Predicate != nil {
		return r.Predicate(s, now)
	}
	return false
}

// Progress is a clamped (current, target) pair for a progress bar.
type Progress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// Percentage is unrounded, 2 of 7 gives 28.57.
func (p Progress) Percentage() float64 {
	if p.Target <= 0 {
		return 0
	}
	return min(100, float64(p.Current)/float64(p.Target)*100)
}

// Progress of a predicate rule is always {0, 1}.
func (r *Rule) Progress(s *entity.UserSnapshot, now time.Time) Progress {
	if r.Metric == nil || r.Target <= 0 {
		return Progress{Current: 0, Target: 1}
	}
	return Progress{
		Current: min(max(r.Metric(s, now), 0), r.Target),
		Target:  r.Target,
	}
}

func habitCount(s *entity.UserSnapshot, _ time.Time) int {
	return len(s.Habits)
}

func longestStreak(s *entity.UserSnapshot, _ time.Time) int {
	return s.LongestStreak()
}

func completedTasks(s *entity.UserSnapshot, _ time.Time) int {
	return s.CompletedTasks()
}

func usedFreeze(s *entity.UserSnapshot, _ time.Time) bool {
	return s.FreezeCreditsConsumed > 0
}

// PerfectWeek holds when every habit is completed or frozen on each of the
// last seven calendar days, today included. No habits means no perfect week.
func PerfectWeek(s *entity.UserSnapshot, now time.Time) bool {
	if len(s.Habits) == 0 {
		return false
	}
	today := entity.DayOf(now)
	for i := 0; i < 7; i++ {
		day := today.AddDays(-i)
		for j := range s.Habits {
			if !s.Habits[j].CoveredOn(day) {
				return false
			}
		}
	}
	return true
}

// DefaultRules returns the built-in rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "first_habit",
			Name:        "Getting Started",
			Description: "Create your first habit",
			Icon:        "🌱",
			Points:      10,
			Metric:      habitCount,
			Target:      1,
		},
		{
			ID:          "week_warrior",
			Name:        "Week Warrior",
			Description: "Complete any habit for 7 days straight",
			Icon:        "🔥",
			Points:      50,
			Metric:      longestStreak,
			Target:      7,
		},
		{
			ID:          "month_master",
			Name:        "Month Master",
			Description: "Complete any habit for 30 days straight",
			Icon:        "👑",
			Points:      200,
			Metric:      longestStreak,
			Target:      30,
		},
		{
			ID:          "multi_tasker",
			Name:        "Multi-Tasker",
			Description: "Have 5 active habits",
			Icon:        "🎯",
			Points:      75,
			Metric:      habitCount,
			Target:      5,
		},
		{
			ID:          "perfect_week",
			Name:        "Perfect Week",
			Description: "Complete all habits for 7 consecutive days",
			Icon:        "⭐",
			Points:      100,
			Predicate:   PerfectWeek,
		},
		{
			ID:          "comeback_kid",
			Name:        "Comeback Kid",
			Description: "Use a streak freeze and continue your habit",
			Icon:        "💪",
			Points:      40,
			Predicate:   usedFreeze,
		},
		{
			ID:          "task_master",
			Name:        "Task Master",
			Description: "Complete 50 tasks",
			Icon:        "✅",
			Points:      60,
			Metric:      completedTasks,
			Target:      50,
		},
	}
}
