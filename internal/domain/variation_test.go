package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariationSetNormalize(t *testing.T) {
	assert.Equal(t, VariationSet{}, VariationSet(nil).Normalize())
	assert.Equal(t, VariationSet{1, 2, 3}, VariationSet{3, 1, 2}.Normalize())
	assert.Equal(t, VariationSet{1, 2}, VariationSet{2, 1, 2, 1}.Normalize())
}

func TestVariationSetEqual(t *testing.T) {
	assert.True(t, VariationSet{1, 2}.Equal(VariationSet{2, 1}))
	assert.True(t, VariationSet{}.Equal(nil))
	assert.True(t, VariationSet{1, 1, 2}.Equal(VariationSet{2, 2, 1}))
	assert.False(t, VariationSet{1, 2}.Equal(VariationSet{1, 3}))
	assert.False(t, VariationSet{1}.Equal(VariationSet{1, 2}))
}

func TestParseVariationCategory(t *testing.T) {
	got, ok := ParseVariationCategory("Color")
	assert.True(t, ok)
	assert.Equal(t, VariationColor, got)

	got, ok = ParseVariationCategory("SIZE")
	assert.True(t, ok)
	assert.Equal(t, VariationSize, got)

	_, ok = ParseVariationCategory("material")
	assert.False(t, ok)
}

func TestNewCartItemOwner(t *testing.T) {
	user := NewCartItem(NewUserIdentity(42), 0, 1, VariationSet{2, 1})
	assert.NotNil(t, user.UserID)
	assert.Equal(t, int64(42), *user.UserID)
	assert.Nil(t, user.CartID)
	assert.Equal(t, VariationSet{1, 2}, user.Variations)
	assert.Equal(t, int32(1), user.Quantity)
	assert.True(t, user.IsActive)

	guest := NewCartItem(NewGuestIdentity("token"), 7, 1, nil)
	assert.Nil(t, guest.UserID)
	assert.NotNil(t, guest.CartID)
	assert.Equal(t, int64(7), *guest.CartID)
}
