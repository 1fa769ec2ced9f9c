package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/samber/lo"

	"github.com/mumumusuc/libjoycon/pkg/bluez"
	"github.com/mumumusuc/libjoycon/pkg/config"
	"github.com/mumumusuc/libjoycon/pkg/gate"
	"github.com/mumumusuc/libjoycon/pkg/report"
	"github.com/mumumusuc/libjoycon/pkg/scan"
	"github.com/mumumusuc/libjoycon/pkg/utils"
)

func main() {
	// parse command
	cmd := parseCommand()

	// run desired command
	if cmd.cStatus {
		status(cmd, getConfig(cmd))
	} else if cmd.cRequest {
		request(cmd, getConfig(cmd))
	} else if cmd.cEnsure {
		ensure(cmd, getConfig(cmd))
	} else if cmd.cScan {
		discover(cmd, getConfig(cmd))
	} else if cmd.cReport {
		publish(cmd, getConfig(cmd))
	} else if cmd.cHelp {
		fmt.Print(usage)
	}
}

func status(_ *command, cfg *config.Config) {
	// open gate
	g, closer := openGate(cfg)
	defer closer()

	// print status
	printStatus(g.Status())
}

func request(cmd *command, cfg *config.Config) {
	// open gate
	g, closer := openGate(cfg)
	defer closer()

	// issue request
	var req *gate.Request
	var err error
	if cmd.aPermission {
		req, err = g.RequestPermission()
	} else if cmd.aLocation {
		req, err = g.RequestLocation()
	} else if cmd.aBluetooth {
		req, err = g.RequestBluetooth()
	}
	exitIfSet(err)

	// await completion
	ctx, cancel := timeoutContext(cmd, cfg)
	defer cancel()
	ok, err := req.Wait(ctx)
	exitIfSet(err)

	// log result
	utils.Logf(os.Stdout, "%s: %s", req.Kind(), lo.Ternary(ok, "available", "missing"))
}

func ensure(cmd *command, cfg *config.Config) {
	// open gate
	g, closer := openGate(cfg)
	defer closer()

	// ensure capabilities
	ctx, cancel := timeoutContext(cmd, cfg)
	defer cancel()
	exitIfSet(g.Ensure(ctx))

	// print status
	printStatus(g.Status())
}

func discover(cmd *command, cfg *config.Config) {
	// open gate
	g, closer := openGate(cfg)
	defer closer()

	// set pattern
	pattern := cfg.Pattern
	if cmd.oPattern != "" {
		pattern = cmd.oPattern
	}

	// prepare context
	ctx, cancel := timeoutContext(cmd, cfg)
	defer cancel()

	// log info
	utils.Logf(os.Stdout, "Scanning for %q... (press Ctrl+C to stop)", pattern)

	// scan devices
	err := scan.Discover(ctx, g, pattern, func(d scan.Device) {
		utils.Logf(os.Stdout, "Found: %s", d)
	})
	exitIfSet(err)
}

func publish(cmd *command, cfg *config.Config) {
	// open gate
	g, closer := openGate(cfg)
	defer closer()

	// set broker and topic
	broker := lo.Ternary(cmd.oBroker != "", cmd.oBroker, cfg.Broker)
	topic := lo.Ternary(cmd.oTopic != "", cmd.oTopic, cfg.Topic)

	// publish status
	status := g.Status()
	exitIfSet(report.Publish(broker, topic, status, cfg.Timeout))

	// log success
	utils.Logf(os.Stdout, "Published %s to %s.", status, topic)
}

func openGate(cfg *config.Config) (*gate.Gate, func()) {
	// open platform
	platform, err := bluez.Open(bluez.Config{
		Adapter:  cfg.Adapter,
		Settings: cfg.Settings,
		Consent:  consent,
		Out:      os.Stdout,
	})
	exitIfSet(err)

	return gate.New(platform, os.Stdout), func() {
		_ = platform.Close()
	}
}

func consent(adapter string) bool {
	// ask user
	fmt.Printf("Power on bluetooth adapter %s? [y/N] ", adapter)

	// read answer
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func timeoutContext(cmd *command, cfg *config.Config) (context.Context, context.CancelFunc) {
	// get timeout
	timeout := lo.Ternary(cmd.oTimeout > 0, cmd.oTimeout, cfg.Timeout)

	// cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx, cancel := context.WithTimeout(ctx, timeout)

	return ctx, func() {
		cancel()
		stop()
	}
}

func printStatus(status gate.Status) {
	// prepare table
	tbl := newTable("CAPABILITY", "STATE")

	// add rows
	tbl.add("location permission", state(status.Permission))
	tbl.add("location service", state(status.Location))
	tbl.add("bluetooth adapter", state(status.Bluetooth))
	tbl.add("ready", lo.Ternary(status.Ready(), "yes", "no"))

	// show table
	tbl.print()
}

func state(ok bool) string {
	return lo.Ternary(ok, "available", "missing")
}
