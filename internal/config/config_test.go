package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1024, cfg.Eval.FixpointCap)
	assert.False(t, cfg.Eval.EnableCache)
	assert.Equal(t, []string{"."}, cfg.Scan.Roots)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Eval.FixpointCap)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
eval:
  fixpoint_cap: 50
  deadline: 2s
  enable_cache: true
scan:
  roots: [a, b]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Eval.FixpointCap)
	assert.True(t, cfg.Eval.EnableCache)
	assert.Equal(t, []string{"a", "b"}, cfg.Scan.Roots)
	assert.Equal(t, 2*time.Second, cfg.GetDeadline())
}

func TestGetDeadlineEmptyIsZero(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Duration(0), cfg.GetDeadline())
}
