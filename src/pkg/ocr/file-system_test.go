package ocr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOutputDirectoryCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c")
	require.Nil(t, EnsureOutputDirectory(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateRunDirectory(t *testing.T) {
	root := t.TempDir()

	runDir, e := CreateRunDirectory(root)
	require.Nil(t, e)

	info, err := os.Stat(runDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// filename-safe timestamp name
	name := filepath.Base(runDir)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`), name)
}

func TestSaveOriginalImageKeepsExtensionAndBytes(t *testing.T) {
	runDir := t.TempDir()
	payload := []byte{0x89, 0x50, 0x4e, 0x47}

	require.Nil(t, SaveOriginalImage(runDir, 1, "front.PNG", payload))

	written, err := os.ReadFile(filepath.Join(runDir, "img-1.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestSaveOriginalImageDefaultsToJpg(t *testing.T) {
	runDir := t.TempDir()

	require.Nil(t, SaveOriginalImage(runDir, 2, "no-extension", []byte{0xff}))

	_, err := os.Stat(filepath.Join(runDir, "img-2.jpg"))
	assert.NoError(t, err)
}

func TestSaveOcrTextToFile(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "ocr.txt")

	require.Nil(t, SaveOcrTextToFile(destination, "Cetamol 500 mg"))

	written, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "Cetamol 500 mg", string(written))
}

func TestSaveJSONToFile(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "record.json")

	require.Nil(t, SaveJSONToFile(destination, map[string]int{"slips_count": 10}))

	written, err := os.ReadFile(destination)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(written, &decoded))
	assert.Equal(t, 10, decoded["slips_count"])
}
