package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/repository/mocks"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService(t *testing.T) {
	repo := repository.NewMemorySnapshotsRepo()
	us := service.NewUserService(repo, service.WithClock(clock))
	ctx := context.Background()
	username := "test_user"
	password := "test_password"
	t.Run("registered user", func(t *testing.T) {
		s, err := us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Email:    "test@mail.com",
			Password: password,
		})
		require.NoError(t, err)
		assert.Equal(t, username, s.Identity)
		assert.Equal(t, 3, s.StreakFreezeCredits)
		assert.Equal(t, now, s.CreatedAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.CredentialHash), []byte(password)))
	})
	t.Run("error registering already existed user", func(t *testing.T) {
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Password: password,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("invalid registrations", func(t *testing.T) {
		testCases := []struct {
			Desc string
			Req  service.RegisterRequest
		}{
			{Desc: "leading underscore", Req: service.RegisterRequest{Name: "_user", Password: password}},
			{Desc: "leading digit", Req: service.RegisterRequest{Name: "1user", Password: password}},
			{Desc: "spaces inside", Req: service.RegisterRequest{Name: "my user", Password: password}},
			{Desc: "short name", Req: service.RegisterRequest{Name: "ab", Password: password}},
			{Desc: "short password", Req: service.RegisterRequest{Name: "other_user", Password: "short"}},
			{Desc: "bad email", Req: service.RegisterRequest{Name: "other_user", Email: "nope", Password: password}},
		}
		for _, tc := range testCases {
			t.Run(tc.Desc, func(t *testing.T) {
				_, err := us.Register(ctx, &tc.Req)
				assert.ErrorIs(t, err, errorvalues.ErrValidation)
			})
		}
	})
	t.Run("login", func(t *testing.T) {
		s, err := us.Login(ctx, username, password)
		assert.NoError(t, err)
		assert.Equal(t, username, s.Identity)
	})
	t.Run("error login with wrong password", func(t *testing.T) {
		_, err := us.Login(ctx, username, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("error login on unexisted user", func(t *testing.T) {
		_, err := us.Login(ctx, "unexisted", password)
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("found by identity", func(t *testing.T) {
		s, err := us.GetByIdentity(ctx, username)
		assert.NoError(t, err)
		assert.Equal(t, "test@mail.com", s.Email)
	})
	t.Run("failed to delete w/ wrong password", func(t *testing.T) {
		err := us.DeleteAccount(ctx, username, "dasdasd")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("deleted", func(t *testing.T) {
		assert.NoError(t, us.DeleteAccount(ctx, username, password))
		_, err := us.GetByIdentity(ctx, username)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestLoginRefillsOnlyAfterPasswordCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSnapshotsRepositoryI(ctrl)
	us := service.NewUserService(repo, service.WithClock(clock))
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("test_password"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := func() *entity.UserSnapshot {
		s := entity.NewUserSnapshot("test_user", "", string(hash), now.Add(-8*24*time.Hour))
		s.StreakFreezeCredits = 1
		return s
	}
	t.Run("wrong password writes nothing", func(t *testing.T) {
		repo.EXPECT().Load(gomock.Any(), "test_user").Return(stored(), nil)
		_, err := us.Login(ctx, "test_user", "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("refill is persisted after login", func(t *testing.T) {
		repo.EXPECT().Load(gomock.Any(), "test_user").Return(stored(), nil).Times(2)
		repo.EXPECT().Update(gomock.Any(), "test_user", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fn repository.UpdateFunc) (*entity.UserSnapshot, error) {
				s := stored()
				if err := fn(s); err != nil {
					return nil, err
				}
				return s, nil
			})
		s, err := us.Login(ctx, "test_user", "test_password")
		require.NoError(t, err)
		assert.Equal(t, 2, s.StreakFreezeCredits)
		assert.Equal(t, now, s.LastFreezeRefillAt)
	})
	t.Run("storage failure", func(t *testing.T) {
		repo.EXPECT().Load(gomock.Any(), "test_user").Return(nil, errorvalues.ErrStorage)
		_, err := us.Login(ctx, "test_user", "test_password")
		assert.ErrorIs(t, err, errorvalues.ErrStorage)
	})
}
