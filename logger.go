package main

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "minipack",
	Level:  log.InfoLevel,
})

func configureLogger(verbose bool, quiet bool) {
	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}
