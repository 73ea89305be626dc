package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
)

type SessionService struct {
	repo repository.SessionRepositoryI
}

func NewSessionService(sessionRepo repository.SessionRepositoryI) *SessionService {
	if sessionRepo == nil {
		log.Fatal("provided nil sessionRepo")
	}
	return &SessionService{
		repo: sessionRepo,
	}
}

func (ss *SessionService) Start(ctx context.Context, identity string) (string, error) {
	if identity == "" {
		return "", errorvalues.ErrValidation
	}
	sessionID := uuid.NewString()
	if err := ss.repo.SetCurrentIdentity(ctx, sessionID, identity); err != nil {
		return "", errors.New("sessions repository error: " + err.Error())
	}
	return sessionID, nil
}

func (ss *SessionService) Resolve(ctx context.Context, sessionID string) (string, error) {
	identity, err := ss.repo.LoadCurrentIdentity(ctx, sessionID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoSession) {
			return "", err
		}
		return "", errors.New("sessions repository error: " + err.Error())
	}
	return identity, nil
}

func (ss *SessionService) End(ctx context.Context, sessionID string) error {
	if err := ss.repo.ClearCurrentIdentity(ctx, sessionID); err != nil {
		return errors.New("sessions repository error: " + err.Error())
	}
	return nil
}
