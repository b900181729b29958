package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestSeed(t *testing.T) {
	explicit := int64(99)
	assert.Equal(t, explicit, Seed(&explicit))
	assert.NotZero(t, Seed(nil))
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(1, 3), Derive(1, 3))
	assert.NotEqual(t, Derive(1, 0), Derive(1, 1))
	assert.NotEqual(t, Derive(1, 1), Derive(2, 1))
}
