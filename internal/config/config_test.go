package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/designboard/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DESIGNBOARD_CONFIG_PATH", "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, time.Second, cfg.Workflow.ApprovalDelay)
	require.Equal(t, "PM Zhang", cfg.Workflow.Proposal().Approver.Name)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
transport:
  mode: stdio
seed:
  path: /srv/board.yaml
workflow:
  approval_delay: 3s
  approver:
    name: Lead Designer
`), 0o600))

	t.Setenv("DESIGNBOARD_SERVER_PORT", "9191")
	t.Setenv("DESIGNBOARD_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/srv/board.yaml", cfg.Seed.Path)
	require.Equal(t, 3*time.Second, cfg.Workflow.ApprovalDelay)
	require.Equal(t, "Lead Designer", cfg.Workflow.Approver.Name)
	require.Equal(t, "Me (Current User)", cfg.Workflow.Actor.Name)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("DESIGNBOARD_CONFIG_PATH", path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DESIGNBOARD_CONFIG_PATH", "")

	t.Run("port", func(t *testing.T) {
		t.Setenv("DESIGNBOARD_SERVER_PORT", "eighty")
		_, err := config.Load("")
		require.Error(t, err)
	})
	t.Run("delay", func(t *testing.T) {
		t.Setenv("DESIGNBOARD_APPROVAL_DELAY", "soon")
		_, err := config.Load("")
		require.Error(t, err)
	})
	t.Run("mode", func(t *testing.T) {
		t.Setenv("DESIGNBOARD_TRANSPORT_MODE", "carrier-pigeon")
		_, err := config.Load("")
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
