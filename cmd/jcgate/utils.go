package main

import (
	"fmt"
	"os"

	"github.com/mumumusuc/libjoycon/pkg/config"
)

func exitIfSet(errs ...error) {
	for _, err := range errs {
		if err != nil {
			exitWithError(err.Error())
		}
	}
}

func exitWithError(str string) {
	_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", str)
	os.Exit(1)
}

func getConfig(cmd *command) *config.Config {
	cfg, err := config.Read(cmd.oConfig)
	exitIfSet(err)

	return cfg
}
