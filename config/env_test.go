package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFilesPrecedence(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"mongo_db":"from_json","app_port":"7000","linkage_async":true}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nMONGO_DB=from_env\nCORS_ORIGINS=\"http://a.test, https://*.vercel.app\"\n"), 0o644))
	t.Setenv("APP_PORT", "9000")

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")) })

	assert.Equal(t, "from_env", get("MONGO_DB", ""))
	assert.Equal(t, "9000", get("APP_PORT", ""))
	assert.True(t, getBool("LINKAGE_ASYNC"))
	assert.Equal(t, []string{"http://a.test", "https://*.vercel.app"}, CORSOrigins())
}

func TestMissingFilesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")))

	assert.Equal(t, defaultMongoDB, get("MONGO_DB", ""))
	assert.Equal(t, 200, getInt("RATE_LIMIT_PER_MINUTE", 1))
	assert.False(t, getBool("LOG_TO_MONGO"))
}
