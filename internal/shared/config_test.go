package shared

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigDefaults(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.Equal(t, ":8086", cfg.Addr)
	assert.Equal(t, "mem", cfg.Store)
	assert.Equal(t, ":memory:", cfg.DBPath)
}

func TestServerConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	want := &ServerConfig{Addr: ":9000", Store: "sqlite", DBPath: "./data/tc.db"}
	require.NoError(t, SaveServerConfig(path, want))

	got, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServerConfigFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, SaveServerConfig(path, &ServerConfig{Addr: ":9000"}))

	got, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", got.Addr)
	assert.Equal(t, "mem", got.Store)
	assert.Equal(t, ":memory:", got.DBPath)
}

func TestServerConfigApplyEnv(t *testing.T) {
	t.Setenv("TC_ADDR", ":7070")
	t.Setenv("TC_STORE", "sqlite")
	t.Setenv("TC_DB_PATH", "/tmp/tc.db")

	cfg := DefaultServerConfig()
	cfg.ApplyEnv()
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "/tmp/tc.db", cfg.DBPath)
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
