package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
)

// MarshalSnapshot encodes the snapshot in its persisted JSON layout. The same
// layout is used for export files.
func MarshalSnapshot(s *UserSnapshot) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil snapshot")
	}
	return sonic.ConfigStd.Marshal(s)
}

// MarshalSnapshotIndent is MarshalSnapshot with two-space indentation.
func MarshalSnapshotIndent(s *UserSnapshot) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil snapshot")
	}
	return sonic.ConfigStd.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot decodes and normalizes a snapshot. Malformed or
// inconsistent data is reported as ErrInvalidSnapshot.
func UnmarshalSnapshot(data []byte) (*UserSnapshot, error) {
	var s UserSnapshot
	if err := sonic.ConfigStd.Unmarshal(data, &s); err != nil {
		return nil, invalid("decoding snapshot error: " + err.Error())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Normalize()
	return &s, nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", errorvalues.ErrInvalidSnapshot, reason)
}

// Validate checks the structural invariants a decoded snapshot must satisfy.
func (s *UserSnapshot) Validate() error {
	if strings.TrimSpace(s.Identity) == "" {
		return invalid("snapshot without identity")
	}
	if s.StreakFreezeCredits < 0 || s.StreakFreezeCredits > MaxStreakFreezeCredits {
		return invalid("streak freeze credits out of range")
	}
	if s.FreezeCreditsConsumed < 0 || s.TotalPoints < 0 {
		return invalid("negative counters")
	}
	sum := 0
	for _, u := range s.UnlockedAchievements {
		sum += u.PointsAwarded
	}
	if sum != s.TotalPoints {
		return invalid("total points don't match unlocked achievements")
	}
	habitIDs := make(map[uuid.UUID]struct{}, len(s.Habits))
	for _, h := range s.Habits {
		if _, ok := habitIDs[h.ID]; ok {
			return invalid("duplicated habit id")
		}
		habitIDs[h.ID] = struct{}{}
		if h.CurrentStreak < 0 {
			return invalid("negative streak")
		}
		if err := validateDaySet(h.CompletedDates); err != nil {
			return err
		}
		if err := validateDaySet(h.FreezeDates); err != nil {
			return err
		}
	}
	taskIDs := make(map[uuid.UUID]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		if _, ok := taskIDs[t.ID]; ok {
			return invalid("duplicated task id")
		}
		taskIDs[t.ID] = struct{}{}
	}
	return nil
}

// validateDaySet rejects malformed and repeated day markers.
func validateDaySet(days []Day) error {
	seen := make(map[Day]struct{}, len(days))
	for _, d := range days {
		if !d.Valid() {
			return invalid("invalid day marker: " + string(d))
		}
		if _, ok := seen[d]; ok {
			return invalid("duplicated day marker: " + string(d))
		}
		seen[d] = struct{}{}
	}
	return nil
}
