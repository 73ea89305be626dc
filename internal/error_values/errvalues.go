package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrNoSession        = errors.New("no active session")

	ErrValidation      = errors.New("validation error")
	ErrHabitNotFound   = errors.New("habit doesn't exists")
	ErrTaskNotFound    = errors.New("task doesn't exists")
	ErrNoCredits       = errors.New("no streak freezes available")
	ErrAlreadyCovered  = errors.New("day is already completed or frozen")
	ErrStorage         = errors.New("storage error")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
