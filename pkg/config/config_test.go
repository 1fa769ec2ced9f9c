package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadMissing(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "jcgate.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcgate.yaml")
	err := os.WriteFile(path, []byte(`
adapter: hci1
settings: [xdg-open, "settings://location"]
topic: lab/jcgate
timeout: 10s
`), 0644)
	assert.NoError(t, err)

	cfg, err := Read(path)
	assert.NoError(t, err)
	assert.Equal(t, &Config{
		Adapter:  "hci1",
		Settings: []string{"xdg-open", "settings://location"},
		Broker:   "tcp://localhost:1883",
		Topic:    "lab/jcgate",
		Pattern:  "Joy-Con*",
		Timeout:  10 * time.Second,
	}, cfg)
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcgate.yaml")
	err := os.WriteFile(path, []byte("timeout: [1, 2"), 0644)
	assert.NoError(t, err)

	_, err = Read(path)
	assert.Error(t, err)
}
