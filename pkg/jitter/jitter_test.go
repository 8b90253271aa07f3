package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationWithinRange(t *testing.T) {
	base := time.Second

	for i := 0; i < 100; i++ {
		got := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/2)
	}
}

func TestDurationZeroJitter(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestExponentialBackoffGrowsAndCaps(t *testing.T) {
	base := time.Second
	max := 10 * time.Second

	first := ExponentialBackoff(base, max, 0, 0)
	second := ExponentialBackoff(base, max, 1, 0)
	third := ExponentialBackoff(base, max, 2, 0)
	capped := ExponentialBackoff(base, max, 10, 0)

	assert.Equal(t, time.Second, first)
	assert.Equal(t, 2*time.Second, second)
	assert.Equal(t, 4*time.Second, third)
	assert.Equal(t, max, capped)
}
