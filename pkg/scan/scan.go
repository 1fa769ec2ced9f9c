// Package scan discovers Joy-Con controllers once the capability gate
// allows Bluetooth LE scanning.
package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ryanuber/go-glob"
	"tinygo.org/x/bluetooth"

	"github.com/mumumusuc/libjoycon/pkg/gate"
)

// DefaultPattern matches left and right Joy-Con controllers.
const DefaultPattern = "Joy-Con*"

// ErrNotReady is returned if scanning is attempted while capabilities are
// missing.
var ErrNotReady = errors.New("capabilities missing")

var adapter = bluetooth.DefaultAdapter

// Device is a discovered controller.
type Device struct {
	Address string
	Name    string
	RSSI    int16
}

func (d Device) String() string {
	return fmt.Sprintf("%s (%s, %d dBm)", d.Name, d.Address, d.RSSI)
}

// Match returns whether the advertised name matches the pattern. An empty
// pattern falls back to DefaultPattern.
func Match(pattern, name string) bool {
	// set default pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	// unnamed devices never match
	if name == "" {
		return false
	}

	return glob.Glob(pattern, name)
}

// Discover scans for devices whose name matches the pattern and calls the
// provided callback once per device. It blocks until the context is
// cancelled.
func Discover(ctx context.Context, g *gate.Gate, pattern string, cb func(Device)) error {
	// check gate
	status := g.Status()
	if !status.Ready() {
		return fmt.Errorf("%w: %s", ErrNotReady, status)
	}

	// check context
	if err := ctx.Err(); err != nil {
		return err
	}

	// enable BLE adapter
	err := adapter.Enable()
	if err != nil && !strings.Contains(err.Error(), "already calling Enable function") {
		return err
	}

	// prepare map
	devices := map[string]bool{}

	// handle cancel until the scan returned
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			_ = adapter.StopScan()
		case <-stopped:
		}
	}()

	// start scanning
	err = adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		// stop if cancelled before the scan started
		if ctx.Err() != nil {
			_ = adapter.StopScan()
			return
		}

		// check name
		name := result.LocalName()
		if !Match(pattern, name) {
			return
		}

		// check map
		addr := result.Address.String()
		if devices[addr] {
			return
		}

		// mark device
		devices[addr] = true

		// yield device
		go cb(Device{
			Address: addr,
			Name:    name,
			RSSI:    result.RSSI,
		})
	})
	if err != nil {
		return err
	}

	return nil
}
