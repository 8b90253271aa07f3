package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "599.99", want: 59999},
		{in: "600", want: 60000},
		{in: "0.01", want: 1},
		{in: "0", want: 0},
		{in: "1000000000", want: 100000000000},
		{in: "-1", wantErr: e.ErrInvalidPrice},
		{in: "abc", wantErr: e.ErrInvalidPrice},
		{in: "200000000000", wantErr: e.ErrInvalidPrice},
		{in: "5.999", wantErr: e.ErrPricePrecision},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parsePriceToCents(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriceToCentsEmpty(t *testing.T) {
	_, err := parsePriceToCents("   ")
	assert.Error(t, err)
}

func TestParsePageParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/store?page=3", nil)
	assert.Equal(t, 3, parsePageParam(req))

	req = httptest.NewRequest(http.MethodGet, "/store?page=0", nil)
	assert.Equal(t, 1, parsePageParam(req))

	req = httptest.NewRequest(http.MethodGet, "/store?page=abc", nil)
	assert.Equal(t, 1, parsePageParam(req))

	req = httptest.NewRequest(http.MethodGet, "/store", nil)
	assert.Equal(t, 1, parsePageParam(req))
}

func TestParsePriceBound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/store?min_price=10.50", nil)
	got, err := parsePriceBound(req, "min_price")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1050), *got)

	req = httptest.NewRequest(http.MethodGet, "/store", nil)
	got, err = parsePriceBound(req, "min_price")
	require.NoError(t, err)
	assert.Nil(t, got)

	req = httptest.NewRequest(http.MethodGet, "/store?min_price=oops", nil)
	_, err = parsePriceBound(req, "min_price")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", clientIP(req))

	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", clientIP(req))
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.ErrMissingFields, http.StatusBadRequest},
		{e.ErrEmptyCart, http.StatusBadRequest},
		{e.ErrAuthRequired, http.StatusUnauthorized},
		{e.ErrProductNotFound, http.StatusNotFound},
		{e.ErrCartItemNotFound, http.StatusNotFound},
		{e.ErrInsufficientStock, http.StatusConflict},
		{e.ErrProductSlugTaken, http.StatusConflict},
		{e.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{e.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, msg := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code)
		assert.NotEmpty(t, msg)
	}

	// Обёрнутые ошибки распознаются по errors.Is
	code, _ := ToHTTPResponse(e.Wrap("op", e.ErrInsufficientStock))
	assert.Equal(t, http.StatusConflict, code)
}
