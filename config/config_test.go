package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	o, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.NoError(t, err)
	assert.Equal(t, Defaults, o)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pslrtether.yml")
	err := os.WriteFile(path, []byte("auto_reconnect: false\nstatus_max_age_seconds: 2.5\n"), 0o644)
	assert.NoError(t, err)

	o, err := Load(path)
	assert.NoError(t, err)
	assert.False(t, o.AutoReconnect)
	assert.Equal(t, 2.5, o.StatusMaxAgeSeconds)
	assert.Equal(t, Defaults.ReconnectTimeoutSeconds, o.ReconnectTimeoutSeconds)
}

func TestWriteDefaults_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pslrtether.yml")
	assert.NoError(t, WriteDefaults(path))

	o, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, Defaults, o)
}

func TestWatch_FiresOnChangeAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pslrtether.yml")
	assert.NoError(t, WriteDefaults(path))

	changes := make(chan Options, 1)
	stop, err := Watch(path, func(o Options) { changes <- o })
	assert.NoError(t, err)
	defer stop()

	err = os.WriteFile(path, []byte("auto_reconnect: false\nstatus_max_age_seconds: 3\n"), 0o644)
	assert.NoError(t, err)

	select {
	case o := <-changes:
		assert.False(t, o.AutoReconnect)
		assert.Equal(t, 3.0, o.StatusMaxAgeSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch callback")
	}
}
