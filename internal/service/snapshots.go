package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/limbo/habitflow/internal/achievements"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/ledger"
	"github.com/limbo/habitflow/internal/notify"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
)

// mutation changes a snapshot inside one read-modify-write.
type mutation func(s *entity.UserSnapshot, now time.Time) error

// snapshots runs every user action the same way: refill credits, apply the
// mutation, evaluate achievements, then write the snapshot back atomically.
// Unlock events are published only after the write succeeded.
type snapshots struct {
	repo      repository.SnapshotsRepositoryI
	engine    *achievements.Engine
	publisher notify.PublisherI
	now       func() time.Time
}

// Option customizes services built over the snapshots repository.
type Option func(*snapshots)

// WithEngine replaces the built-in achievement rules.
func WithEngine(engine *achievements.Engine) Option {
	return func(sn *snapshots) {
		if engine != nil {
			sn.engine = engine
		}
	}
}

// WithPublisher sets where unlock events go. Events are dropped by default.
func WithPublisher(publisher notify.PublisherI) Option {
	return func(sn *snapshots) {
		if publisher != nil {
			sn.publisher = publisher
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(sn *snapshots) {
		if now != nil {
			sn.now = now
		}
	}
}

func newSnapshots(repo repository.SnapshotsRepositoryI, opts ...Option) *snapshots {
	if repo == nil {
		log.Fatal("provided nil snapshotsRepo")
	}
	sn := &snapshots{
		repo:      repo,
		engine:    achievements.NewDefaultEngine(),
		publisher: notify.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(sn)
	}
	return sn
}

func (sn *snapshots) update(ctx context.Context, identity string, fn mutation) (*entity.UserSnapshot, []achievements.Rule, error) {
	now := sn.now()
	var unlocked []achievements.Rule
	s, err := sn.repo.Update(ctx, identity, func(s *entity.UserSnapshot) error {
		ledger.RefillCredits(s, now)
		if err := fn(s, now); err != nil {
			return err
		}
		unlocked = sn.engine.Evaluate(s, now)
		return nil
	})
	if err != nil {
		return nil, nil, repositoryError(err)
	}
	sn.publishUnlocked(ctx, s, unlocked)
	return s, unlocked, nil
}

// load returns the snapshot, persisting a due credit refill first.
func (sn *snapshots) load(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	s, err := sn.repo.Load(ctx, identity)
	if err != nil {
		return nil, repositoryError(err)
	}
	if !ledger.RefillDue(s, sn.now()) {
		return s, nil
	}
	s, _, err = sn.update(ctx, identity, func(*entity.UserSnapshot, time.Time) error { return nil })
	return s, err
}

func (sn *snapshots) publishUnlocked(ctx context.Context, s *entity.UserSnapshot, unlocked []achievements.Rule) {
	for _, rule := range unlocked {
		event := notify.AchievementUnlocked{
			Type:          notify.AchievementUnlockedType,
			Identity:      s.Identity,
			AchievementID: rule.ID,
			Name:          rule.Name,
			Points:        rule.Points,
			TotalPoints:   s.TotalPoints,
			UnlockedAt:    s.UnlockedAchievements[rule.ID].UnlockedAt,
		}
		if err := sn.publisher.Publish(ctx, s.Identity, event); err != nil {
			slog.Warn("publishing achievement event failed",
				slog.String("identity", s.Identity),
				slog.String("achievement", rule.ID),
				slog.String("error", err.Error()))
		}
	}
}

func unlockedView(rules []achievements.Rule) []UnlockedAchievement {
	result := make([]UnlockedAchievement, 0, len(rules))
	for _, r := range rules {
		result = append(result, UnlockedAchievement{
			ID:     r.ID,
			Name:   r.Name,
			Icon:   r.Icon,
			Points: r.Points,
		})
	}
	return result
}

var knownErrors = []error{
	errorvalues.ErrUserNotFound,
	errorvalues.ErrUserExists,
	errorvalues.ErrValidation,
	errorvalues.ErrHabitNotFound,
	errorvalues.ErrTaskNotFound,
	errorvalues.ErrNoCredits,
	errorvalues.ErrAlreadyCovered,
	errorvalues.ErrInvalidSnapshot,
	errorvalues.ErrStorage,
}

// repositoryError keeps sentinel errors visible to callers and wraps the rest.
func repositoryError(err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return errors.New("snapshots repository error: " + err.Error())
}
