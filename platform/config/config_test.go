package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":4101", c.HTTPAddr)
	assert.Equal(t, ":8000", c.SocketAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.Equal(t, 6*time.Hour, c.SnapshotTTL)
	assert.Equal(t, game.DefaultRules(), c.Rules)
	assert.Empty(t, c.BoardFile)
	assert.Equal(t, 3, c.TargetLaps)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PASS_GO_BONUS", "150")
	t.Setenv("LOTTERY_MIN", "5")
	t.Setenv("LOTTERY_MAX", "10")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SNAPSHOT_TTL", "30m")

	c, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 150, c.Rules.PassGoBonus)
	assert.Equal(t, 5, c.Rules.LotteryMin)
	assert.Equal(t, 10, c.Rules.LotteryMax)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, c.SnapshotTTL)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BOARD_FILE=/tmp/board.json\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOARD_FILE") })

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/board.json", c.BoardFile)
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	t.Setenv("LOTTERY_MIN", "500")
	t.Setenv("LOTTERY_MAX", "10")

	_, err := Load(noEnvFile(t))
	assert.Error(t, err)
}
