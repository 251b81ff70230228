package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, Default().Channel.UpdateBufferSize, cfg.Channel.UpdateBufferSize)
	assert.True(t, cfg.Strict)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "channel:\n  update_buffer_size: 10\n")
	t.Setenv("ORDERBOOK_CHANNEL_UPDATE_BUFFER_SIZE", "512")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Channel.UpdateBufferSize)
}

func TestValidateRejectsNegativeBufferSize(t *testing.T) {
	cfg := Default()
	cfg.Channel.UpdateBufferSize = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
