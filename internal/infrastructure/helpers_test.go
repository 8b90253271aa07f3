package infrastructure

import (
	"testing"

	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpg"},
		{"image/jpg", "jpg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
	}

	for _, tc := range cases {
		got, err := GetExtensionFromMIME(tc.mime)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestGetExtensionFromMIMEUnsupported(t *testing.T) {
	got, err := GetExtensionFromMIME("application/pdf")

	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
	assert.Equal(t, "bin", got)
}
