package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/limbo/habitflow/pkg/httputil"
)

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type ListTasksResponse struct {
	Identity string        `json:"identity"`
	Tasks    []entity.Task `json:"tasks"`
}

func (s *Server) AddTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("add task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateTaskRequest
	defer r.Body.Close()
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("add task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	res, err := s.tasksService.AddTask(ctx, identity, &service.CreateTaskRequest{Text: req.Text})
	if err != nil {
		writeServiceError(w, logger, "add task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, res)
	logger.Info("task added")
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("get tasks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	tasks, err := s.tasksService.ListTasks(ctx, identity)
	if err != nil {
		writeServiceError(w, logger, "get tasks", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ListTasksResponse{
		Identity: identity,
		Tasks:    tasks,
	})
	logger.Info("tasks provided")
}

func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("toggle task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("toggle task error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	res, err := s.tasksService.ToggleTask(ctx, identity, id)
	if err != nil {
		writeServiceError(w, logger, "toggle task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("task toggled")
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	identity, err := GetIdentityFromContext(r)
	if err != nil {
		logger.Error("task deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("task deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	if err = s.tasksService.DeleteTask(ctx, identity, id); err != nil {
		writeServiceError(w, logger, "task deletion", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("task deleted")
}
