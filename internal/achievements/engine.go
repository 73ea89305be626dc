// Package achievements evaluates the achievement rule set against user snapshots.
package achievements

import (
	"errors"
	"time"

	"github.com/limbo/habitflow/pkg/entity"
)

// Engine is an immutable, ordered rule registry. Safe for concurrent use.
type Engine struct {
	rules []Rule
	byID  map[string]int
}

func NewEngine(rules []Rule) (*Engine, error) {
	e := &Engine{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if r.ID == "" {
			return nil, errors.New("rule without id")
		}
		if _, ok := e.byID[r.ID]; ok {
			return nil, errors.New("duplicated rule id: " + r.ID)
		}
		if (r.Metric == nil) == (r.Predicate == nil) {
			return nil, errors.New("rule " + r.ID + " must have either metric or predicate")
		}
		e.byID[r.ID] = len(e.rules)
		e.rules = append(e.rules, r)
	}
	return e, nil
}

// NewDefaultEngine builds the engine over DefaultRules.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultRules())
	if err != nil {
		panic("default achievement rules: " + err.Error())
	}
	return e
}

func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

func (e *Engine) Rule(id string) (Rule, bool) {
	idx, ok := e.byID[id]
	if !ok {
		return Rule{}, false
	}
	return e.rules[idx], true
}

// Evaluate unlocks every rule that is not unlocked yet and whose condition
// holds, in declaration order, and returns the newly unlocked rules. Rules
// already present in the snapshot are never awarded twice.
func (e *Engine) Evaluate(s *entity.UserSnapshot, now time.Time) []Rule {
	if s.UnlockedAchievements == nil {
		s.UnlockedAchievements = make(map[string]entity.UnlockedAchievement)
	}
	unlocked := make([]Rule, 0)
	for i := range e.rules {
		rule := &e.rules[i]
		if _, ok := s.UnlockedAchievements[rule.ID]; ok {
			continue
		}
		if !rule.Holds(s, now) {
			continue
		}
		s.UnlockedAchievements[rule.ID] = entity.UnlockedAchievement{
			UnlockedAt:    now,
			PointsAwarded: rule.Points,
		}
		s.TotalPoints += rule.Points
		unlocked = append(unlocked, *rule)
	}
	return unlocked
}

// Status is one row of the achievements listing.
type Status struct {
	Rule       Rule       `json:"rule"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   *Progress  `json:"progress,omitempty"`
	Percentage float64    `json:"percentage"`
}

// List reports every rule with its unlock state. Progress is only computed
// for locked rules.
func (e *Engine) List(s *entity.UserSnapshot, now time.Time) []Status {
	result := make([]Status, 0, len(e.rules))
	for i := range e.rules {
		rule := &e.rules[i]
		st := Status{Rule: *rule}
		if u, ok := s.UnlockedAchievements[rule.ID]; ok {
			at := u.UnlockedAt
			st.Unlocked = true
			st.UnlockedAt = &at
			st.Percentage = 100
		} else {
			p := rule.Progress(s, now)
			st.Progress = &p
			st.Percentage = p.Percentage()
		}
		result = append(result, st)
	}
	return result
}

// PointsConsistent reports whether TotalPoints equals the sum of awarded points.
func PointsConsistent(s *entity.UserSnapshot) bool {
	sum := 0
	for _, u := range s.UnlockedAchievements {
		sum += u.PointsAwarded
	}
	return sum == s.TotalPoints
}
