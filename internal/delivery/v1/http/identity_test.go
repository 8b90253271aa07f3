package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artline-tech/shop-backend/internal/cfg"
	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeSessionStore struct {
	tokens []string
	err    error
}

func (f *fakeSessionStore) EnsureSession(ctx context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}

func newIdentityFixture() (*IdentityMiddleware, *fakeSessionStore) {
	sessions := &fakeSessionStore{}
	m := NewIdentityMiddleware(sessions, &cfg.SessionCfg{CookieName: "cart_session", TTL: 24 * time.Hour}, nopLogger{})
	return m, sessions
}

func serveIdentity(t *testing.T, m *IdentityMiddleware, req *http.Request) (domain.Identity, *httptest.ResponseRecorder) {
	t.Helper()

	var got domain.Identity
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identityFromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func TestIdentityFromGatewayHeader(t *testing.T) {
	m, sessions := newIdentityFixture()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-User-ID", "42")

	identity, rec := serveIdentity(t, m, req)

	assert.True(t, identity.IsUser())
	assert.Equal(t, int64(42), identity.UserID)
	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, sessions.tokens)
}

func TestIdentityInvalidHeaderFallsBackToGuest(t *testing.T) {
	m, _ := newIdentityFixture()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-User-ID", "not-a-number")

	identity, rec := serveIdentity(t, m, req)

	assert.True(t, identity.IsGuest())
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestIdentityNewGuestGetsCookie(t *testing.T) {
	m, sessions := newIdentityFixture()

	identity, rec := serveIdentity(t, m, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.True(t, identity.IsGuest())
	assert.NotEmpty(t, identity.CartToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "cart_session", cookie.Name)
	assert.Equal(t, identity.CartToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	require.Len(t, sessions.tokens, 1)
	assert.Equal(t, identity.CartToken, sessions.tokens[0])
}

func TestIdentityExistingCookieReused(t *testing.T) {
	m, sessions := newIdentityFixture()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "existing-token"})

	identity, rec := serveIdentity(t, m, req)

	assert.Equal(t, "existing-token", identity.CartToken)
	// Повторная установка cookie не нужна
	assert.Empty(t, rec.Result().Cookies())
	// Но сессия продлевается
	assert.Equal(t, []string{"existing-token"}, sessions.tokens)
}

func TestIdentitySessionStoreFailureIsNotFatal(t *testing.T) {
	sessions := &fakeSessionStore{err: assert.AnError}
	m := NewIdentityMiddleware(sessions, &cfg.SessionCfg{CookieName: "cart_session", TTL: time.Hour}, nopLogger{})

	identity, _ := serveIdentity(t, m, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.True(t, identity.IsGuest())
	assert.NotEmpty(t, identity.CartToken)
}
