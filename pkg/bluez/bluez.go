// Package bluez implements the capability providers for Linux using BlueZ
// and GeoClue over the D-Bus system bus.
package bluez

import (
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/mumumusuc/libjoycon/pkg/utils"
)

const (
	bluezService   = "org.bluez"
	bluezAdapter   = "org.bluez.Adapter1"
	bluezPrefix    = "/org/bluez/"
	geoclueService = "org.freedesktop.GeoClue2"
	geoclueManager = "/org/freedesktop/GeoClue2/Manager"
	geoclueLevel   = "org.freedesktop.GeoClue2.Manager.AvailableAccuracyLevel"
	objectManager  = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
)

// DefaultSettings is the command used to open the location settings.
var DefaultSettings = []string{"gnome-control-center", "location"}

// Config configures a Platform.
type Config struct {
	// The adapter name e.g. "hci0". The first adapter is used if empty.
	Adapter string

	// The command that opens the location settings.
	Settings []string

	// Consent is asked before the adapter is powered. The adapter is left
	// untouched if missing or if it returns false.
	Consent func(adapter string) bool

	// Out receives log messages if set.
	Out io.Writer
}

// Platform provides the capabilities of a Linux host.
type Platform struct {
	conn   *dbus.Conn
	config Config
}

// Open connects to the system bus.
func Open(config Config) (*Platform, error) {
	// set default settings
	if len(config.Settings) == 0 {
		config.Settings = DefaultSettings
	}

	// connect to bus
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "connect system bus")
	}

	return &Platform{
		conn:   conn,
		config: config,
	}, nil
}

// Close closes the bus connection.
func (p *Platform) Close() error {
	return p.conn.Close()
}

// Level returns zero as Linux has no runtime permission model.
func (p *Platform) Level() int {
	return 0
}

// Granted always returns true.
func (p *Platform) Granted(string) bool {
	return true
}

// RequestPermissions completes immediately.
func (p *Platform) RequestPermissions(_ []string, done func()) error {
	go done()
	return nil
}

// LocationEnabled returns whether GeoClue currently offers any accuracy
// level. GeoClue reports level zero while location services are switched
// off in the system settings.
func (p *Platform) LocationEnabled() bool {
	// get property
	value, err := p.conn.Object(geoclueService, geoclueManager).GetProperty(geoclueLevel)
	if err != nil {
		return false
	}

	return accuracyAvailable(value)
}

func accuracyAvailable(value dbus.Variant) bool {
	// check value
	level, ok := value.Value().(uint32)

	return ok && level > 0
}

// OpenLocationSettings runs the settings command and calls done once the
// command exited.
func (p *Platform) OpenLocationSettings(done func()) error {
	// start command
	cmd := exec.Command(p.config.Settings[0], p.config.Settings[1:]...)
	err := cmd.Start()
	if err != nil {
		return errors.Wrapf(err, "open settings %q", strings.Join(p.config.Settings, " "))
	}

	// await exit
	go func() {
		_ = cmd.Wait()
		done()
	}()

	return nil
}

// AdapterPresent returns whether a BlueZ adapter exists.
func (p *Platform) AdapterPresent() bool {
	_, err := p.adapter()
	return err == nil
}

// AdapterEnabled returns whether the adapter is powered.
func (p *Platform) AdapterEnabled() bool {
	// get adapter
	path, err := p.adapter()
	if err != nil {
		return false
	}

	// get property
	value, err := p.conn.Object(bluezService, path).GetProperty(bluezAdapter + ".Powered")
	if err != nil {
		return false
	}

	// check value
	powered, ok := value.Value().(bool)

	return ok && powered
}

// RequestAdapterEnable asks for consent and powers the adapter. The done
// function is called in any case.
func (p *Platform) RequestAdapterEnable(done func()) error {
	// get adapter
	path, err := p.adapter()
	if err != nil {
		return err
	}

	go p.power(path, p.setPowered, done)

	return nil
}

func (p *Platform) power(path dbus.ObjectPath, set func(dbus.ObjectPath) error, done func()) {
	defer done()

	// ask for consent
	name := strings.TrimPrefix(string(path), bluezPrefix)
	if p.config.Consent == nil || !p.config.Consent(name) {
		utils.Logf(p.config.Out, "Not powering %s without consent.", name)
		return
	}

	// power adapter
	err := set(path)
	if err != nil {
		utils.Logf(p.config.Out, "Error: %s", errors.Wrapf(err, "power %s", name))
	}
}

func (p *Platform) setPowered(path dbus.ObjectPath) error {
	return p.conn.Object(bluezService, path).SetProperty(bluezAdapter+".Powered", dbus.MakeVariant(true))
}

func (p *Platform) adapter() (dbus.ObjectPath, error) {
	// get objects
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	err := p.conn.Object(bluezService, "/").Call(objectManager, 0).Store(&objects)
	if err != nil {
		return "", errors.Wrap(err, "get managed objects")
	}

	// select adapter
	path, ok := selectAdapter(objects, p.config.Adapter)
	if !ok {
		return "", errors.New("no bluez adapter found")
	}

	return path, nil
}

func selectAdapter(objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant, name string) (dbus.ObjectPath, bool) {
	// collect adapters
	adapters := lo.Filter(lo.Keys(objects), func(path dbus.ObjectPath, _ int) bool {
		_, ok := objects[path][bluezAdapter]
		return ok
	})
	if len(adapters) == 0 {
		return "", false
	}

	// use first adapter if not named
	if name == "" {
		sort.Slice(adapters, func(i, j int) bool {
			return adapters[i] < adapters[j]
		})
		return adapters[0], true
	}

	return lo.Find(adapters, func(path dbus.ObjectPath) bool {
		return path == dbus.ObjectPath(bluezPrefix+name)
	})
}
