package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mumumusuc/libjoycon/pkg/gate"
)

func TestEncode(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	payload, err := Encode("pi", now, gate.Status{
		Permission: true,
		Location:   true,
		Bluetooth:  false,
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"host": "pi",
		"time": "2026-10-17T12:00:00Z",
		"ready": false,
		"status": {
			"permission": true,
			"location": true,
			"bluetooth": false
		}
	}`, string(payload))

	var snapshot Snapshot
	err = json.Unmarshal(payload, &snapshot)
	assert.NoError(t, err)
	assert.Equal(t, "pi", snapshot.Host)
}

func TestPublishUnreachable(t *testing.T) {
	err := Publish("tcp://localhost:1", "jcgate/status", gate.Status{}, 100*time.Millisecond)
	assert.Error(t, err)
}
