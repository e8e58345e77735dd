package session

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	goredis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:user:"

// RedisPropagator invalidates the cached session blobs of a user so the next
// request rebuilds them from primary storage.
type RedisPropagator struct {
	log *zap.Logger
	rdb *goredis.Client
}

func NewRedisClient(cfg config.Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func NewRedisPropagator(log *zap.Logger, rdb *goredis.Client) Propagator {
	return &RedisPropagator{
		log: log.Named("session.propagator"),
		rdb: rdb,
	}
}

func (p *RedisPropagator) UpdateAllSessionsOfUser(ctx context.Context, userID snowflake.ID) error {
	pattern := fmt.Sprintf("%s%s:*", sessionKeyPrefix, userID.String())

	var deleted int64
	iter := p.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := p.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete session %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	p.log.Debug("invalidated user sessions",
		zap.String("user_id", userID.String()),
		zap.Int64("sessions", deleted),
	)
	return nil
}
