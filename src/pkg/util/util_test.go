package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(42, 0, 10))
	assert.Equal(t, 1.5, Clamp(2.0, 0.5, 1.5))
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "--images", normalizeFlagName("images"))
	assert.Equal(t, "--images", normalizeFlagName("-images"))
	assert.Equal(t, "--images", normalizeFlagName("--images"))
	assert.Equal(t, "--images", normalizeFlagName("  images "))
}

func TestPtr(t *testing.T) {
	value := Ptr("eng+nep")
	assert.Equal(t, "eng+nep", *value)
}
