// Package report publishes capability snapshots to an MQTT broker.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/256dpi/gomqtt/client"
	"github.com/256dpi/gomqtt/packet"

	"github.com/mumumusuc/libjoycon/pkg/gate"
)

// Snapshot is the published message.
type Snapshot struct {
	Host   string      `json:"host"`
	Time   time.Time   `json:"time"`
	Ready  bool        `json:"ready"`
	Status gate.Status `json:"status"`
}

// Encode creates the payload for the provided status.
func Encode(host string, now time.Time, status gate.Status) ([]byte, error) {
	return json.Marshal(Snapshot{
		Host:   host,
		Time:   now.UTC(),
		Ready:  status.Ready(),
		Status: status,
	})
}

// Publish connects to the broker, publishes a single retained snapshot of
// the status and disconnects.
func Publish(url, topic string, status gate.Status, timeout time.Duration) error {
	// get host
	host, err := os.Hostname()
	if err != nil {
		return err
	}

	// encode snapshot
	payload, err := Encode(host, time.Now(), status)
	if err != nil {
		return err
	}

	// create client
	c := client.New()

	// connect to the broker
	cf, err := c.Connect(client.NewConfigWithClientID(url, "jcgate-"+host))
	if err != nil {
		return err
	}
	err = cf.Wait(timeout)
	if err != nil {
		return err
	}

	// ensure disconnect
	defer func() {
		_ = c.Disconnect()
	}()

	// publish snapshot
	pf, err := c.Publish(topic, payload, packet.QOS(1), true)
	if err != nil {
		return err
	}
	err = pf.Wait(timeout)
	if err != nil {
		return err
	}

	return nil
}
