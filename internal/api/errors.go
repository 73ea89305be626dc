package api

import (
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/httputil"
)

// writeServiceError maps service sentinels to response codes. op prefixes
// the log line, e.g. "toggle habit".
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(op + " error: validation failed")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, errorvalues.ErrInvalidSnapshot):
		logger.Error(op + " error: invalid snapshot")
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "invalid snapshot", err)
	case errors.Is(err, errorvalues.ErrHabitNotFound):
		logger.Error(op + " error: unexist habit")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrTaskNotFound):
		logger.Error(op + " error: unexist task")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(op + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrUserExists):
		logger.Error(op + " error: existed user")
		httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
	case errors.Is(err, errorvalues.ErrNoCredits):
		logger.Error(op + " error: no streak freezes left")
		httputil.WriteErrorResponse(w, http.StatusConflict, "no streak freezes available", nil)
	case errors.Is(err, errorvalues.ErrAlreadyCovered):
		logger.Error(op + " error: day already covered")
		httputil.WriteErrorResponse(w, http.StatusConflict, "habit is already completed or frozen today", nil)
	case errors.Is(err, errorvalues.ErrWrongCredentials):
		logger.Error(op + " error: wrong credentials")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
	case errors.Is(err, errorvalues.ErrStorage):
		logger.Error(op+" error: storage error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "storage is unavailable", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during "+op, nil)
	}
}
