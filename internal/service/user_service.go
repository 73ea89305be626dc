package service

import (
	"context"
	"errors"
	"strings"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	*snapshots
}

func NewUserService(snapshotsRepo repository.SnapshotsRepositoryI, opts ...Option) *UserService {
	InitValidator()
	return &UserService{
		snapshots: newSnapshots(snapshotsRepo, opts...),
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.UserSnapshot, error) {
	if req == nil {
		return nil, errorvalues.ErrValidation
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	s := entity.NewUserSnapshot(req.Name, req.Email, passwordHash, us.now())
	if err = us.repo.Create(ctx, s); err != nil {
		return nil, repositoryError(err)
	}
	return s, nil
}

// Login answers ErrWrongCredentials for unknown names too, so callers cannot
// tell which identities exist.
// Nothing is written before the password matches.
func (us *UserService) Login(ctx context.Context, name, password string) (*entity.UserSnapshot, error) {
	identity := strings.TrimSpace(name)
	s, err := us.repo.Load(ctx, identity)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, repositoryError(err)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(s.CredentialHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return us.load(ctx, identity)
}

func (us *UserService) GetByIdentity(ctx context.Context, identity string) (*entity.UserSnapshot, error) {
	return us.load(ctx, identity)
}

func (us *UserService) DeleteAccount(ctx context.Context, identity, password string) error {
	s, err := us.repo.Load(ctx, identity)
	if err != nil {
		return repositoryError(err)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(s.CredentialHash), []byte(password)); err != nil {
		return errorvalues.ErrWrongCredentials
	}
	if err = us.repo.Delete(ctx, identity); err != nil {
		return repositoryError(err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
