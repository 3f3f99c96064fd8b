package main

import (
	"fmt"

	"github.com/ritzau/trailgraph/pkg/config"
	"github.com/ritzau/trailgraph/pkg/gpxio"
	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trailgraph",
		Short:         "Turn GPX routes into a trail graph and find shortest paths",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.Bool("include-tracks", false, "Also read track segments as routes")
	pf.String("distance", "haversine", "Distance method (haversine|approx)")
	pf.String("verbosity", "", "Log level (trace|debug|info|warn|error)")
	pf.CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	pf.String("log-format", "compact", "Log format (compact|json)")

	root.AddCommand(
		newGraphCmd(),
		newPathCmd(),
		newJunctionsCmd(),
		newServeCmd(),
	)
	return root
}

// setup loads the configuration for cmd, applies logging settings and
// resolves the GPX file argument
func setup(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.File = args[0]
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("no GPX file given")
	}

	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return nil, err
	}
	if cfg.LogFormat == "json" {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}

	logging.Debug("configuration loaded", "file", cfg.File, "distance", cfg.Distance, "includeTracks", cfg.IncludeTracks)
	return cfg, nil
}

func loadRoutes(cfg *config.Config) (*model.RouteSet, error) {
	rs, err := gpxio.ParseFile(cfg.File, gpxio.Options{IncludeTracks: cfg.IncludeTracks})
	if err != nil {
		return nil, err
	}
	logging.Info("routes loaded", "file", cfg.File, "routes", rs.Len())
	return rs, nil
}
