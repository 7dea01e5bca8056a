package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCurrent(t *testing.T) {
	t.Helper()
	previous := Current
	t.Cleanup(func() { Current = previous })
	Current = defaults()
}

func TestInitializeConfigEmptyPathKeepsDefaults(t *testing.T) {
	resetCurrent(t)

	require.Nil(t, InitializeConfig(""))
	assert.Equal(t, "gpt-4o", Current.VisionModel)
	assert.Equal(t, "eng+nep", Current.Languages)
}

func TestInitializeConfigMissingFileKeepsDefaults(t *testing.T) {
	resetCurrent(t)

	require.Nil(t, InitializeConfig(filepath.Join(t.TempDir(), "nope.json")))
	assert.Equal(t, defaults(), Current)
}

func TestInitializeConfigPartialFileOverlaysDefaults(t *testing.T) {
	resetCurrent(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"languages": "eng", "vision_quality": 60}`), 0o644))

	require.Nil(t, InitializeConfig(path))
	assert.Equal(t, "eng", Current.Languages)
	assert.Equal(t, 60, Current.VisionQuality)
	// untouched keys keep their defaults
	assert.Equal(t, "gpt-4o", Current.VisionModel)
	assert.Equal(t, 1600, Current.VisionMaxWidth)
}

func TestInitializeConfigBrokenFileIsFatal(t *testing.T) {
	resetCurrent(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"languages": `), 0o644))

	e := InitializeConfig(path)
	require.NotNil(t, e)
	// a failed load must not half-apply anything
	assert.Equal(t, defaults(), Current)
}
