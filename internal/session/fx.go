package session

import (
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewPropagator picks the backend from config: redis when an address is set,
// otherwise a no-op.
func NewPropagator(cfg config.Config, log *zap.Logger) (Propagator, error) {
	if cfg.RedisAddr == "" {
		log.Warn("no redis configured, session propagation disabled")
		return Noop{}, nil
	}

	rdb, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisPropagator(log, rdb), nil
}

var Module = fx.Module("session",
	fx.Provide(NewPropagator),
)
