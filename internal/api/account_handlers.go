package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/limbo/habitflow/internal/achievements"
	"github.com/limbo/habitflow/internal/reports"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/limbo/habitflow/pkg/httputil"
)

const maxImportSize = 5 << 20

type AchievementsResponse struct {
	Achievements []achievements.Status `json:"achievements"`
}

// SnapshotResponse sums up a snapshot after import or reset.
type SnapshotResponse struct {
	Identity            string `json:"identity"`
	Habits              int    `json:"habits"`
	Tasks               int    `json:"tasks"`
	Achievements        int    `json:"achievements"`
	TotalPoints         int    `json:"total_points"`
	StreakFreezeCredits int    `json:"streak_freeze_credits"`
}

func snapshotResponse(s *entity.UserSnapshot) SnapshotResponse {
	return SnapshotResponse{
		Identity:            s.Identity,
		Habits:              len(s.Habits),
		Tasks:               len(s.Tasks),
		Achievements:        len(s.UnlockedAchievements),
		TotalPoints:         s.TotalPoints,
		StreakFreezeCredits: s.StreakFreezeCredits,
	}
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("get dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	view, err := s.accountService.Dashboard(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "get dashboard", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
	logger.Info("dashboard provided")
}

func (s *Server) GetAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("get account error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	summary, err := s.accountService.Summary(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "get account", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("account provided")
}

func (s *Server) ListAchievements(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("get achievements error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	list, err := s.accountService.Achievements(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "get achievements", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AchievementsResponse{Achievements: list})
	logger.Info("achievements provided")
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("get report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	period := reports.Period(r.PathValue("period"))
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	summary, err := s.accountService.Report(ctx, identity, period)
	if err != nil {
		writeServiceError(w, logger, "get report", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("report provided", slog.String("period", string(period)))
}

func (s *Server) ExportAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("export error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	data, err := s.accountService.Export(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "export", err)
		return
	}
	httputil.WriteAttachment(w, "habitflow-"+identity+".json", "application/json", data)
	logger.Info("snapshot exported")
}

func (s *Server) ImportAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("import error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Error("import error: body too large")
			httputil.WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "snapshot is too large", nil)
			return
		}
		logger.Error("import error: reading body", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	snapshot, err := s.accountService.Import(ctx, identity, data)
	if err != nil {
		writeServiceError(w, logger, "import", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, snapshotResponse(snapshot))
	logger.Info("snapshot imported")
}

func (s *Server) ResetAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("reset error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	snapshot, err := s.accountService.Reset(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "reset", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, snapshotResponse(snapshot))
	logger.Info("account data reset")
}
