package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	return tmp
}

func TestDefaultConfigNeedsNoRepairs(t *testing.T) {
	config := DefaultConfig()
	config.Database.Path = "/tmp/stagedock.sqlite"

	assert.Empty(t, RepairConfig(config))
}

func TestRepairConfigResetsBadValues(t *testing.T) {
	config := DefaultConfig()
	config.Gesture.FlickThreshold = -10
	config.Gesture.DragThreshold = 3
	config.Layout.MinPaneShare = 0.9
	config.Layout.TabStripMode = "sometimes"
	config.Logging.Level = "loud"

	repairs := RepairConfig(config)

	assert.Len(t, repairs, 5)
	assert.Equal(t, defaultFlickThreshold, config.Gesture.FlickThreshold)
	assert.Equal(t, defaultDragThreshold, config.Gesture.DragThreshold)
	assert.Equal(t, defaultMinPaneShare, config.Layout.MinPaneShare)
	assert.Equal(t, TabStripAutomatic, config.Layout.TabStripMode)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestRepairConfigNormalizesCase(t *testing.T) {
	config := DefaultConfig()
	config.Database.Path = "/tmp/stagedock.sqlite"
	config.Logging.Level = "DEBUG"
	config.Layout.TabStripMode = "Always"

	repairs := RepairConfig(config)

	assert.Empty(t, repairs)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, TabStripAlways, config.Layout.TabStripMode)
}

func TestManagerLoadCreatesDefaultConfigFile(t *testing.T) {
	tmp := isolateXDG(t)

	manager, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	configFile := filepath.Join(tmp, "config", "stagedock", "config.json")
	_, err = os.Stat(configFile)
	assert.NoError(t, err)

	got := manager.Get()
	assert.Equal(t, DefaultConfig().Gesture, got.Gesture)
	assert.True(t, strings.HasSuffix(got.Database.Path, "stagedock.sqlite"))
}

func TestManagerEnvOverridesFile(t *testing.T) {
	isolateXDG(t)
	t.Setenv("STAGEDOCK_LOGGING_LEVEL", "debug")
	t.Setenv("STAGEDOCK_GESTURE_SLOW_MOTION", "true")

	manager, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	got := manager.Get()
	assert.Equal(t, "debug", got.Logging.Level)
	assert.True(t, got.Gesture.SlowMotion)
}

func TestManagerGetReturnsCopy(t *testing.T) {
	isolateXDG(t)

	manager, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	first := manager.Get()
	first.Gesture.FlickThreshold = 1

	assert.Equal(t, defaultFlickThreshold, manager.Get().Gesture.FlickThreshold)
}

func TestSchemaJSONDescribesGestureKnobs(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "flick_threshold")
	assert.Contains(t, schema, "rubber_band_coefficient")
	assert.Contains(t, schema, "min_pane_share")
}
