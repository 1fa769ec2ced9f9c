package scan

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mumumusuc/libjoycon/pkg/gate"
)

type staticPlatform struct {
	location  bool
	bluetooth bool
}

func (p *staticPlatform) Level() int { return 0 }
func (p *staticPlatform) Granted(string) bool { return true }
func (p *staticPlatform) RequestPermissions([]string, func()) error { return nil }
func (p *staticPlatform) LocationEnabled() bool { return p.location }
func (p *staticPlatform) OpenLocationSettings(func()) error { return nil }
func (p *staticPlatform) AdapterPresent() bool { return true }
func (p *staticPlatform) AdapterEnabled() bool { return p.bluetooth }
func (p *staticPlatform) RequestAdapterEnable(func()) error { return nil }

func TestMatch(t *testing.T) {
	assert.True(t, Match("", "Joy-Con (L)"))
	assert.True(t, Match("", "Joy-Con (R)"))
	assert.False(t, Match("", "Pro Controller"))
	assert.False(t, Match("", ""))
	assert.True(t, Match("*Controller", "Pro Controller"))
	assert.True(t, Match("*", "anything"))
	assert.False(t, Match("*", ""))
}

func TestDiscoverNotReady(t *testing.T) {
	g := gate.New(&staticPlatform{location: false, bluetooth: true}, nil)

	err := Discover(context.Background(), g, "", func(Device) {
		t.Fatal("unexpected device")
	})
	assert.True(t, errors.Is(err, ErrNotReady))
	assert.Contains(t, err.Error(), "location=missing")

	g = gate.New(&staticPlatform{location: true, bluetooth: false}, nil)
	err = Discover(context.Background(), g, "", func(Device) {})
	assert.True(t, errors.Is(err, ErrNotReady))
}

func TestDiscoverCancelled(t *testing.T) {
	g := gate.New(&staticPlatform{location: true, bluetooth: true}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Discover(ctx, g, "", func(Device) {
		t.Fatal("unexpected device")
	})
	assert.Equal(t, context.Canceled, err)
}

func TestDiscover(t *testing.T) {
	// requires a real adapter
	if testing.Short() || os.Getenv("BLE_TEST") == "" {
		return
	}

	g := gate.New(&staticPlatform{location: true, bluetooth: true}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := Discover(ctx, g, "*", func(d Device) {
		t.Log(d)
	})
	assert.NoError(t, err)
}

func TestDeviceString(t *testing.T) {
	d := Device{Address: "98:B6:E9:00:11:22", Name: "Joy-Con (L)", RSSI: -60}
	assert.Equal(t, "Joy-Con (L) (98:B6:E9:00:11:22, -60 dBm)", d.String())
}
