package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/forcegraph/errs"
)

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network:
  bindAddress: "127.0.0.1"
  port: 9000
streaming:
  binaryUpdateRateHz: 30
  compressionEnabled: true
  compressionThreshold: 100
  clientTimeoutSeconds: 20
physics:
  iterationsPerTick: 1
  springStrength: 0.5
  repulsion: 50
  damping: 0.9
  maxRepulsionDistance: 50
  viewportBounds: 100
  massScale: 1
  boundaryDamping: 0.5
  enableBounds: true
  timeStep: 0.0166
  enabled: true
ingestion:
  markdownDir: "./md"
  metadataPath: "./metadata.json"
  refreshIntervalSeconds: 300
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9000, s.Network.Port)
	require.Equal(t, float32(50), s.Physics.Repulsion)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network:
  port: 0
streaming:
  binaryUpdateRateHz: 30
ingestion:
  metadataPath: "./metadata.json"
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errs.IsConfigError(err))
}

func TestLoadRejectsInvalidPhysics(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network:
  port: 9000
streaming:
  binaryUpdateRateHz: 30
physics:
  viewportBounds: 100
  timeStep: 0
ingestion:
  metadataPath: "./metadata.json"
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errs.IsConfigError(err))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load("/nonexistent/path.yaml")
	require.Error(t, err)
	require.True(t, errs.IsConfigError(err))
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}
