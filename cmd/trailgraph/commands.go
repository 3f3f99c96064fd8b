package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ritzau/trailgraph/pkg/analysis"
	"github.com/ritzau/trailgraph/pkg/config"
	"github.com/ritzau/trailgraph/pkg/gpxio"
	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/graphfile"
	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/ritzau/trailgraph/pkg/output"
	"github.com/ritzau/trailgraph/pkg/query"
	"github.com/ritzau/trailgraph/pkg/watcher"
	"github.com/ritzau/trailgraph/pkg/web"
	"github.com/spf13/cobra"
)

const (
	quietPeriod = 200 * time.Millisecond
	maxWait     = 2 * time.Second
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Build the trail graph and print its adjacency list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}
			rs, err := loadRoutes(cfg)
			if err != nil {
				return err
			}

			g, _ := graph.NewBuilder(cfg.DistanceFunc()).Build(rs)

			out := cmd.OutOrStdout()
			output.PrintAdjacency(out, g)
			output.PrintGraphSummary(out, g, analysis.Components(g))

			if cfg.Out != "" {
				if err := writeFile(cfg.Out, func(f *os.File) error { return graphfile.WriteYAML(f, g) }); err != nil {
					return err
				}
				logging.Info("graph written", "path", cfg.Out)
			}
			if cfg.Dot != "" {
				if err := writeFile(cfg.Dot, func(f *os.File) error { return graphfile.WriteDOT(f, g, "trails") }); err != nil {
					return err
				}
				logging.Info("dot written", "path", cfg.Dot)
			}
			return nil
		},
	}
	cmd.Flags().String("out", "", "Write the graph as YAML to this file")
	cmd.Flags().String("dot", "", "Write the graph as Graphviz DOT to this file")
	return cmd
}

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path FILE --from NAME --to NAME",
		Short: "Find the shortest path between two named points",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}
			if cfg.From == "" || cfg.To == "" {
				return fmt.Errorf("both --from and --to are required")
			}
			rs, err := loadRoutes(cfg)
			if err != nil {
				return err
			}

			runner := query.NewRunner(graph.NewBuilder(cfg.DistanceFunc()))
			res, err := runner.ShortestPath(rs, cfg.From, cfg.To)
			if err != nil {
				if errors.Is(err, model.ErrNoPath) {
					reportComponents(cfg, rs)
				}
				return err
			}

			output.PrintPath(cmd.OutOrStdout(), res.Path)

			if cfg.Export != "" {
				if err := gpxio.WriteFile(res.Routes, cfg.Export); err != nil {
					return err
				}
				logging.Info("split routes exported", "path", cfg.Export, "routes", res.Routes.Len())
			}
			return nil
		},
	}
	cmd.Flags().String("from", "", "Name of the start point")
	cmd.Flags().String("to", "", "Name of the destination point")
	cmd.Flags().String("export", "", "Write the split routes as GPX to this file")
	return cmd
}

// reportComponents shows which networks exist when two points are not connected
func reportComponents(cfg *config.Config, rs *model.RouteSet) {
	g, _ := graph.NewBuilder(cfg.DistanceFunc()).Build(rs)
	output.PrintGraphSummary(os.Stderr, g, analysis.Components(g))
}

func newJunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "junctions FILE",
		Short: "List where routes meet and how long they are",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}
			rs, err := loadRoutes(cfg)
			if err != nil {
				return err
			}
			output.PrintJunctionReport(cmd.OutOrStdout(), analysis.Junctions(rs), analysis.RouteLengths(rs, cfg.DistanceFunc()))
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve the trail graph over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, args)
			if err != nil {
				return err
			}
			rs, err := loadRoutes(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := web.NewServer(cfg.DistanceFunc())
			server.SetRoutes(rs)

			if cfg.Watch {
				if err := watchRoutes(ctx, cfg, server); err != nil {
					return err
				}
			}

			return server.Start(ctx, cfg.Port)
		},
	}
	cmd.Flags().Int("port", 8080, "Port for the web server")
	cmd.Flags().Bool("watch", false, "Reload routes when the GPX file changes")
	return cmd
}

// watchRoutes reparses the GPX file after each burst of changes. A file that
// fails to parse leaves the previous routes in place.
func watchRoutes(ctx context.Context, cfg *config.Config, server *web.Server) error {
	fw, err := watcher.NewFileWatcher(cfg.File)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), quietPeriod, maxWait)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			if event.Type == watcher.ChangeTypeRemoved {
				logging.Warn("gpx file removed, keeping current routes", "path", event.Path)
				continue
			}
			rs, err := loadRoutes(cfg)
			if err != nil {
				logging.Error("reload failed", "path", event.Path, "error", err)
				server.ReportReloadFailure(err)
				continue
			}
			server.SetRoutes(rs)
			logging.Info("routes reloaded", "events", event.Count)
		}
	}()
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
