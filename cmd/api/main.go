// @title Habit-tracker API
// @description API for habit-tracker app "HabitFlow"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/limbo/habitflow/internal/api"
	"github.com/limbo/habitflow/internal/notify"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/cleanup"
	"github.com/limbo/habitflow/pkg/config"
	jwtservice "github.com/limbo/habitflow/pkg/jwt_service"
	"github.com/pressly/goose"
)

func init() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func main() {
	cfg := config.New()
	defer func() {
		if err := cleanup.CleanUp(); err != nil {
			log.Println("Cleanup error: " + err.Error())
		}
	}()

	snapshotsRepo := setupSnapshotsRepo(cfg)
	sessionRepo := setupSessionRepo(cfg)
	publisher := setupPublisher(cfg)

	opts := []service.Option{service.WithPublisher(publisher)}
	serv := api.New(&api.ServicesList{
		UserService:        service.NewUserService(snapshotsRepo, opts...),
		SessionService:     service.NewSessionService(sessionRepo),
		HabitsService:      service.NewHabitsService(snapshotsRepo, opts...),
		TasksService:       service.NewTasksService(snapshotsRepo, opts...),
		AccountService:     service.NewAccountService(snapshotsRepo, opts...),
		JwtService:         jwtservice.New(cfg.JWTSecret, cfg.JWTTTL),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	serv.MountEndpoints()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serv.Run(ctx, cfg.APIAddress); err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func setupSnapshotsRepo(cfg *config.Config) repository.SnapshotsRepositoryI {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbCfg := repository.PGCfg{
			Address:  cfg.Postgres.Address,
			Username: cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			DB:       cfg.Postgres.DB,
		}
		if cfg.MigrateOnStart {
			migrate(dbCfg.ConnString())
		}
		return repository.NewSnapshotsRepo(&dbCfg)
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			log.Fatal("creating sqlite directory error: " + err.Error())
		}
		repo, err := repository.NewSQLiteSnapshotsRepo(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing sqlite db",
			F:    repo.Close,
		})
		return repo
	default:
		slog.Warn("snapshots are kept in memory and will be lost on exit")
		return repository.NewMemorySnapshotsRepo()
	}
}

func setupSessionRepo(cfg *config.Config) repository.SessionRepositoryI {
	if cfg.Redis.Address == "" {
		return repository.NewMemorySessionRepo()
	}
	return repository.NewRedisSessionRepo(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SessionTTL)
}

func setupPublisher(cfg *config.Config) notify.PublisherI {
	if len(cfg.Kafka.Brokers) == 0 {
		return notify.NopPublisher{}
	}
	publisher := notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	cleanup.Register(&cleanup.Job{
		Name: "closing kafka writer",
		F:    publisher.Close,
	})
	return publisher
}

func migrate(connString string) {
	conn, err := sql.Open("postgres", connString+"?sslmode=disable")
	if err != nil {
		log.Fatal("opening migrations connection error: " + err.Error())
	}
	defer conn.Close()
	if err = goose.Up(conn, "./migrations"); err != nil {
		log.Fatal("applying migrations error: " + err.Error())
	}
}
