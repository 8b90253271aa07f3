package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/artline-tech/shop-backend/internal/cfg"
	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/logger"
	"github.com/google/uuid"
)

type ctxKey int

const identityKey ctxKey = iota

// userIDHeader выставляется вышестоящим шлюзом после проверки аутентификации.
const userIDHeader = "X-User-ID"

// IdentityMiddleware определяет владельца корзины для каждого запроса:
// аутентифицированного пользователя по заголовку шлюза либо анонимную
// сессию по cookie, создавая её при первом обращении.
type IdentityMiddleware struct {
	sessions usecase.SessionStore
	cfg      *cfg.SessionCfg
	logger   logger.Logger
}

func NewIdentityMiddleware(sessions usecase.SessionStore, cfg *cfg.SessionCfg, logger logger.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

func (m *IdentityMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := m.resolveIdentity(w, r)
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *IdentityMiddleware) resolveIdentity(w http.ResponseWriter, r *http.Request) domain.Identity {
	if header := r.Header.Get(userIDHeader); header != "" {
		if userID, err := strconv.ParseInt(header, 10, 64); err == nil && userID > 0 {
			return domain.NewUserIdentity(userID)
		}
		m.logger.Warnf("invalid %s header: %q", userIDHeader, header)
	}

	token := ""
	if cookie, err := r.Cookie(m.cfg.CookieName); err == nil && cookie.Value != "" {
		token = cookie.Value
	}
	if token == "" {
		token = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     m.cfg.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.cfg.TTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	// Сессия регистрируется и продлевается на каждый запрос
	if err := m.sessions.EnsureSession(r.Context(), token); err != nil {
		m.logger.Warnf("failed to ensure session: %v", err)
	}

	return domain.NewGuestIdentity(token)
}

// identityFromCtx возвращает владельца корзины, определённого middleware.
func identityFromCtx(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.NewGuestIdentity(uuid.NewString())
}
