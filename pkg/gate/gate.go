// Package gate checks and requests the device capabilities that are needed
// before Bluetooth Low Energy scanning may start.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/mumumusuc/libjoycon/pkg/utils"
)

// RuntimePermissionLevel is the first platform level that grants dangerous
// permissions at runtime instead of at install time.
const RuntimePermissionLevel = 23

// FineLocation is the permission that gates precise location and with it
// Bluetooth LE scanning.
const FineLocation = "android.permission.ACCESS_FINE_LOCATION"

// ErrUnsupported is returned when Bluetooth is requested on a device that
// has no adapter.
var ErrUnsupported = errors.New("bluetooth is not available on this device")

// ErrDenied is returned by Ensure when a capability is still missing after
// the platform handed back control.
var ErrDenied = errors.New("capability denied")

// Permissions provides access to the platform permission subsystem.
type Permissions interface {
	// Level returns the platform API level.
	Level() int

	// Granted returns whether the permission is currently granted.
	Granted(permission string) bool

	// RequestPermissions shows the permission dialog. The done function
	// must be called once the user answered.
	RequestPermissions(permissions []string, done func()) error
}

// Location provides access to the platform location service.
type Location interface {
	LocationEnabled() bool
	OpenLocationSettings(done func()) error
}

// Bluetooth provides access to the platform Bluetooth adapter.
type Bluetooth interface {
	// AdapterPresent returns whether the device has a Bluetooth adapter.
	AdapterPresent() bool

	// AdapterEnabled returns whether the adapter is powered.
	AdapterEnabled() bool

	// RequestAdapterEnable asks the user to enable the adapter. Implementations
	// must not enable the adapter without consent. The done function must
	// be called once the user decided.
	RequestAdapterEnable(done func()) error
}

// Platform bundles all capability providers.
type Platform interface {
	Permissions
	Location
	Bluetooth
}

// Status is a snapshot of all capabilities.
type Status struct {
	Permission bool `json:"permission"`
	Location   bool `json:"location"`
	Bluetooth  bool `json:"bluetooth"`
}

// Ready returns whether scanning may start.
func (s Status) Ready() bool {
	return s.Permission && s.Location && s.Bluetooth
}

func (s Status) String() string {
	mark := func(ok bool) string {
		return lo.Ternary(ok, "ok", "missing")
	}

	return fmt.Sprintf("permission=%s location=%s bluetooth=%s",
		mark(s.Permission), mark(s.Location), mark(s.Bluetooth))
}

// Gate checks and requests capabilities through a Platform. It does not
// cache any state, every check queries the platform.
type Gate struct {
	platform Platform
	out      io.Writer
}

// New creates a new Gate. Progress is logged to out if available.
func New(platform Platform, out io.Writer) *Gate {
	return &Gate{
		platform: platform,
		out:      out,
	}
}

// CheckPermission returns whether fine location permission is granted. It
// always returns true on platforms without runtime permissions.
func (g *Gate) CheckPermission() bool {
	// check level
	if g.platform.Level() < RuntimePermissionLevel {
		return true
	}

	return g.platform.Granted(FineLocation)
}

// RequestPermission requests fine location permission.
func (g *Gate) RequestPermission() (*Request, error) {
	// check permission
	if g.CheckPermission() {
		return completed(KindPermission), nil
	}

	// log info
	utils.Log(g.out, "Requesting location permission...")

	// request permission
	req := newRequest(KindPermission, g.CheckPermission)
	err := g.platform.RequestPermissions([]string{FineLocation}, req.complete)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// CheckLocation returns whether the location service is enabled.
func (g *Gate) CheckLocation() bool {
	return g.platform.LocationEnabled()
}

// RequestLocation opens the location settings.
func (g *Gate) RequestLocation() (*Request, error) {
	// check location
	if g.CheckLocation() {
		return completed(KindLocation), nil
	}

	// log info
	utils.Log(g.out, "Opening location settings...")

	// open settings
	req := newRequest(KindLocation, g.CheckLocation)
	err := g.platform.OpenLocationSettings(req.complete)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// CheckBluetooth returns whether a Bluetooth adapter is present and enabled.
func (g *Gate) CheckBluetooth() bool {
	// check adapter
	if !g.platform.AdapterPresent() {
		return false
	}

	return g.platform.AdapterEnabled()
}

// RequestBluetooth asks the user to enable the Bluetooth adapter. It returns
// ErrUnsupported if the device has no adapter.
func (g *Gate) RequestBluetooth() (*Request, error) {
	// check adapter
	if !g.platform.AdapterPresent() {
		return nil, ErrUnsupported
	}

	// check state
	if g.CheckBluetooth() {
		return completed(KindBluetooth), nil
	}

	// log info
	utils.Log(g.out, "Requesting bluetooth...")

	// request enable
	req := newRequest(KindBluetooth, g.CheckBluetooth)
	err := g.platform.RequestAdapterEnable(req.complete)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// Check returns whether permission and location service are available. The
// Bluetooth adapter is checked separately using CheckBluetooth.
func (g *Gate) Check() bool {
	return g.CheckPermission() && g.CheckLocation()
}

// Status returns a snapshot of all capabilities.
func (g *Gate) Status() Status {
	return Status{
		Permission: g.CheckPermission(),
		Location:   g.CheckLocation(),
		Bluetooth:  g.CheckBluetooth(),
	}
}

// Ensure requests all missing capabilities in order and waits for each
// request to complete.
func (g *Gate) Ensure(ctx context.Context) error {
	steps := []func() (*Request, error){
		g.RequestPermission,
		g.RequestLocation,
		g.RequestBluetooth,
	}

	for _, step := range steps {
		// issue request
		req, err := step()
		if err != nil {
			return err
		}

		// await completion
		ok, err := req.Wait(ctx)
		if err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%s: %w", req.Kind(), ErrDenied)
		}
	}

	// log success
	utils.Log(g.out, "All capabilities available.")

	return nil
}
