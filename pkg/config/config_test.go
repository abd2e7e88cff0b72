package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetViper() {
	viper.Reset()
}

func TestLoadAppliesDefaultsWithoutConfigFile(t *testing.T) {
	resetViper()
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":25565", s.ListenAddress)
	require.Equal(t, 32, s.MaxViewDistance)
	require.Equal(t, "info", s.LogLevel)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	resetViper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_address: \":1234\"\nmax_view_distance: 10\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":1234", s.ListenAddress)
	require.Equal(t, 10, s.MaxViewDistance)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	resetViper()
	t.Setenv("VITAMINE_LISTEN_ADDRESS", ":9999")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_address: \":1234\"\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", s.ListenAddress)
}

func TestParsedLogLevel(t *testing.T) {
	s := ServerSettings{LogLevel: "debug"}
	lvl, err := s.ParsedLogLevel()
	require.NoError(t, err)
	require.Equal(t, "debug", lvl.String())
}
