package repository

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/cleanup"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "habitflow:session:"

// RedisSessionRepository binds client ids to the signed-in identity in Redis.
type RedisSessionRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSessionRepo(addr, password string, db int, ttl time.Duration) *RedisSessionRepository {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("error while pinging redis for sessionRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return NewRedisSessionRepoWithClient(client, ttl)
}

func NewRedisSessionRepoWithClient(client redis.UniversalClient, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSessionRepository) LoadCurrentIdentity(ctx context.Context, clientID string) (string, error) {
	identity, err := r.client.Get(ctx, sessionKeyPrefix+clientID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errorvalues.ErrNoSession
		}
		return "", storageError("loading session", err)
	}
	return identity, nil
}

// SetCurrentIdentity stores the binding; ttl <= 0 keeps it until cleared.
func (r *RedisSessionRepository) SetCurrentIdentity(ctx context.Context, clientID, identity string) error {
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+clientID, identity, ttl).Err(); err != nil {
		return storageError("saving session", err)
	}
	return nil
}

func (r *RedisSessionRepository) ClearCurrentIdentity(ctx context.Context, clientID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+clientID).Err(); err != nil {
		return storageError("clearing session", err)
	}
	return nil
}
