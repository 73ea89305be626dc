package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/limbo/habitflow/internal/service"
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	sessionService service.SessionServiceI
	habitsService  service.HabitsServiceI
	tasksService   service.TasksServiceI
	accountService service.AccountServiceI
	jwtService     JWTServiceI
	limiters       *limiterRegistry
}

type ServicesList struct {
	UserService    service.UserServiceI
	SessionService service.SessionServiceI
	HabitsService  service.HabitsServiceI
	TasksService   service.TasksServiceI
	AccountService service.AccountServiceI
	JwtService     JWTServiceI
	// Requests per minute allowed for one client IP, 0 disables the limit
	RateLimitPerMinute int
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		sessionService: servicesOptions.SessionService,
		habitsService:  servicesOptions.HabitsService,
		tasksService:   servicesOptions.TasksService,
		accountService: servicesOptions.AccountService,
		jwtService:     servicesOptions.JwtService,
		limiters:       newLimiterRegistry(servicesOptions.RateLimitPerMinute),
	}
}

func (s *Server) MountEndpoints() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.RateLimitMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Post("/auth/logout", s.Logout)

			r.Get("/habits", s.ListHabits)
			r.Post("/habits", s.CreateHabit)
			r.Delete("/habits/{id}", s.DeleteHabit)
			r.Post("/habits/{id}/toggle", s.ToggleHabit)
			r.Post("/habits/{id}/freeze", s.FreezeHabit)

			r.Get("/tasks", s.ListTasks)
			r.Post("/tasks", s.AddTask)
			r.Delete("/tasks/{id}", s.DeleteTask)
			r.Post("/tasks/{id}/toggle", s.ToggleTask)

			r.Get("/achievements", s.ListAchievements)
			r.Get("/reports/{period}", s.GetReport)
			r.Get("/dashboard", s.GetDashboard)

			r.Get("/account", s.GetAccount)
			r.Delete("/account", s.DeleteAccount)
			r.Get("/account/export", s.ExportAccount)
			r.Post("/account/import", s.ImportAccount)
			r.Post("/account/reset", s.ResetAccount)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Println("Server started on " + addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("server shutdown error: " + err.Error())
	}
	log.Println("Server stopped")
	return nil
}
