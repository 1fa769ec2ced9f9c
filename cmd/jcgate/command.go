package main

import (
	"time"

	"github.com/docopt/docopt-go"
)

var usage = `jcgate - check and request the capabilities needed to scan for Joy-Cons

Usage:
  jcgate status [--config=<file>]
  jcgate request (permission|location|bluetooth) [--timeout=<duration> --config=<file>]
  jcgate ensure [--timeout=<duration> --config=<file>]
  jcgate scan [--pattern=<pattern> --timeout=<duration> --config=<file>]
  jcgate report [--broker=<url> --topic=<topic> --config=<file>]
  jcgate help

Options:
  -c --config=<file>        The configuration file [default: jcgate.yaml].
  -t --timeout=<duration>   Overrides the configured timeout.
  -p --pattern=<pattern>    Overrides the configured device name pattern.
  -b --broker=<url>         Overrides the configured broker URL.
  -T --topic=<topic>        Overrides the configured topic.
  -h --help                 Show this screen.
`

type command struct {
	// commands
	cStatus, cRequest, cEnsure, cScan, cReport, cHelp bool

	// arguments
	aPermission, aLocation, aBluetooth bool

	// options
	oConfig  string
	oTimeout time.Duration
	oPattern string
	oBroker  string
	oTopic   string
}

func parseCommand() *command {
	a, err := docopt.Parse(usage, nil, true, "", false)
	exitIfSet(err)

	// parse timeout
	var timeout time.Duration
	if str := getString(a["--timeout"]); str != "" {
		timeout, err = time.ParseDuration(str)
		exitIfSet(err)
	}

	return &command{
		// commands
		cStatus:  getBool(a["status"]),
		cRequest: getBool(a["request"]),
		cEnsure:  getBool(a["ensure"]),
		cScan:    getBool(a["scan"]),
		cReport:  getBool(a["report"]),
		cHelp:    getBool(a["help"]),

		// arguments
		aPermission: getBool(a["permission"]),
		aLocation:   getBool(a["location"]),
		aBluetooth:  getBool(a["bluetooth"]),

		// options
		oConfig:  getString(a["--config"]),
		oTimeout: timeout,
		oPattern: getString(a["--pattern"]),
		oBroker:  getString(a["--broker"]),
		oTopic:   getString(a["--topic"]),
	}
}

func getBool(field interface{}) bool {
	if val, ok := field.(bool); ok {
		return val
	}

	return false
}

func getString(field interface{}) string {
	if str, ok := field.(string); ok {
		return str
	}

	return ""
}
