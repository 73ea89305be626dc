package service

import (
	"context"
	"errors"

	"github.com/limbo/habitflow/internal/achievements"
	"github.com/limbo/habitflow/internal/ledger"
	"github.com/limbo/habitflow/internal/reports"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
)

// AccountService serves read-only views of a snapshot plus whole-snapshot
// operations: export, import and reset.
type AccountService struct {
	*snapshots
}

func NewAccountService(snapshotsRepo repository.SnapshotsRepositoryI, opts ...Option) *AccountService {
	return &AccountService{
		snapshots: newSnapshots(snapshotsRepo, opts...),
	}
}

func (as *AccountService) Dashboard(ctx context.Context, identity string) (*DashboardView, error) {
	s, err := as.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	now := as.now()
	return &DashboardView{
		Stats:               reports.BuildDashboard(s, now),
		Habits:              reports.HabitCards(s, now),
		Tasks:               s.Tasks,
		StreakFreezeCredits: s.StreakFreezeCredits,
	}, nil
}

func (as *AccountService) Summary(ctx context.Context, identity string) (*reports.AccountSummary, error) {
	s, err := as.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	summary := reports.BuildAccountSummary(s, as.now())
	return &summary, nil
}

func (as *AccountService) Achievements(ctx context.Context, identity string) ([]achievements.Status, error) {
	s, err := as.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return as.engine.List(s, as.now()), nil
}

func (as *AccountService) Report(ctx context.Context, identity string, period reports.Period) (*reports.Summary, error) {
	if _, err := period.WindowDays(); err != nil {
		return nil, errors.Join(err, errors.New("unknown report period: "+string(period)))
	}
	s, err := as.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return reports.Generate(s, period, as.now())
}

func (as *AccountService) Export(ctx context.Context, identity string) ([]byte, error) {
	s, err := as.repo.Load(ctx, identity)
	if err != nil {
		return nil, repositoryError(err)
	}
	data, err := entity.MarshalSnapshotIndent(s)
	if err != nil {
		return nil, errors.New("encoding snapshot error: " + err.Error())
	}
	return data, nil
}

// Import stores the exported snapshot as is, without refilling credits or
// evaluating achievements, so an export/import round trip changes nothing.
func (as *AccountService) Import(ctx context.Context, identity string, data []byte) (*entity.UserSnapshot, error) {
	imported, err := entity.UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	s, err := as.repo.Update(ctx, identity, func(s *entity.UserSnapshot) error {
		imported.Identity = s.Identity
		imported.Email = s.Email
		imported.CredentialHash = s.CredentialHash
		*s = *imported
		return nil
	})
	if err != nil {
		return nil, repositoryError(err)
	}
	return s, nil
}

func (as *AccountService) Reset(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	s, err := as.repo.Update(ctx, identity, func(s *entity.UserSnapshot) error {
		ledger.Reset(s, as.now())
		return nil
	})
	if err != nil {
		return nil, repositoryError(err)
	}
	return s, nil
}

