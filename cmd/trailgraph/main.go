package main

import (
	"errors"
	"os"

	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/ritzau/trailgraph/pkg/output"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.PrintError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for lookups that failed on the user's input and 1 otherwise
func exitCode(err error) int {
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrNoPath) {
		return 2
	}
	return 1
}
