package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitfix.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "speedLimitMS: 15\nmaxConsecutiveRejections: 5\n")

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15.0, f.SpeedLimitMS)
	assert.Equal(t, 5, f.MaxConsecutiveRejections)
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, "speedLimitMS: 12.5\n")

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.5, f.SpeedLimitMS)
	assert.Zero(t, f.MaxConsecutiveRejections)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "speedLimitMS: [oops\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNegativeThresholds(t *testing.T) {
	path := writeConfig(t, "speedLimitMS: -1\n")

	_, err := Load(path)
	require.ErrorContains(t, err, "invalid config")
}

func TestLoadDefaultMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	f, err := LoadDefault()
	require.NoError(t, err)
	assert.Nil(t, f)
}
