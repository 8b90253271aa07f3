package redis

import (
	"context"
	"fmt"

	"github.com/artline-tech/shop-backend/internal/cfg"
	"github.com/artline-tech/shop-backend/pkg/clients"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// SessionRepo регистрирует анонимные корзинные сессии в Redis.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.SessionCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.SessionCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

// EnsureSession регистрирует сессию, если её ещё нет, и продлевает TTL.
func (r *SessionRepo) EnsureSession(ctx context.Context, token string) error {
	key := r.sessionKey(token)

	pipeline := r.client.Client.Pipeline()
	pipeline.SetNX(ctx, key, 1, r.cfg.TTL)
	pipeline.Expire(ctx, key, r.cfg.TTL)

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// sessionKey возвращает Redis-ключ сессии по токену
func (r *SessionRepo) sessionKey(token string) string {
	return fmt.Sprintf("cart_session:%s", token)
}
