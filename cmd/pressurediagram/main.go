// Package main provides the CLI entrypoint for pressurediagram.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brianbland/pressurediagram/pkg/batch"
	"github.com/brianbland/pressurediagram/pkg/config"
	"github.com/brianbland/pressurediagram/pkg/dataset"
	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/brianbland/pressurediagram/pkg/scenarios"
	"github.com/brianbland/pressurediagram/pkg/visualization"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all commands
type app struct {
	parser *config.Parser
	cfg    *config.Config
	log    *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "pressurediagram",
		Short:         "Render reference vs. degradation pressure diagrams",
		Long:          config.DetailedHelp(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: a.runRender,
	}

	a.parser = config.NewParser(rootCmd.PersistentFlags())
	a.parser.RegisterFlags()

	rootCmd.AddCommand(a.newSampleCmd())
	rootCmd.AddCommand(a.newBatchCmd())

	return rootCmd
}

// setup resolves configuration and configures logging
func (a *app) setup() error {
	cfg, err := a.parser.Resolve()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(os.Stderr)
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func (a *app) composer() (*diagram.Composer, error) {
	opts, err := a.cfg.DiagramOptions(a.log)
	if err != nil {
		return nil, err
	}
	return diagram.NewComposer(opts)
}

// loadDataSet reads --input or generates --scenario
func (a *app) loadDataSet() (*dataset.DataSet, error) {
	if a.cfg.Scenario != "" {
		generator := scenarios.NewGenerator(a.cfg.ScenarioOptions(diagram.DefaultLayout().ReferenceHeight))
		scenario, ok := generator.GetByName(a.cfg.Scenario)
		if !ok {
			return nil, fmt.Errorf("unknown scenario: %s", a.cfg.Scenario)
		}
		a.log.WithField("scenario", scenario.Name).Debug(scenario.Description)
		return &scenario.DataSet, nil
	}

	if a.cfg.Input == "" {
		return nil, fmt.Errorf("either --input or --scenario is required")
	}
	ds, err := dataset.LoadFromFile(a.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", a.cfg.Input, err)
	}
	return ds, nil
}

func (a *app) runRender(cmd *cobra.Command, _ []string) error {
	ds, err := a.loadDataSet()
	if err != nil {
		return err
	}

	composer, err := a.composer()
	if err != nil {
		return err
	}

	spec := diagram.ChartSpec{
		OutputPath:  a.cfg.Output,
		Width:       a.cfg.Width,
		Height:      a.cfg.Height,
		Reference:   ds.Reference,
		Degradation: ds.Degradation,
	}
	a.log.WithFields(logrus.Fields{
		"dataset":     ds.Name,
		"reference":   len(ds.Reference),
		"degradation": len(ds.Degradation),
		"backend":     a.cfg.Backend,
	}).Info("Rendering diagram")

	if err := composer.Render(spec); err != nil {
		return err
	}

	if a.cfg.Overview != "" {
		generator := visualization.NewGenerator(visualization.DefaultChartOptions())
		if err := generator.GenerateOverviewChart(ds, a.cfg.Overview); err != nil {
			a.log.WithError(err).Warn("Failed to generate overview chart")
		} else {
			a.log.WithField("path", a.cfg.Overview).Info("Overview chart saved")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Diagram saved to %s\n", a.cfg.Output)
	return nil
}

func (a *app) newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [name] [file]",
		Short: "List built-in samples, or write one as a JSON dataset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := scenarios.NewGenerator(a.cfg.ScenarioOptions(diagram.DefaultLayout().ReferenceHeight))

			if len(args) == 0 {
				all := generator.GenerateAll()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "Name\tPoints\tDescription")
				for _, name := range generator.Names() {
					s := all[name]
					fmt.Fprintf(w, "%s\t%d/%d\t%s\n", name,
						len(s.DataSet.Reference), len(s.DataSet.Degradation), s.Description)
				}
				return w.Flush()
			}

			scenario, ok := generator.GetByName(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q, must be one of: %v", args[0], generator.Names())
			}
			filename := scenario.Name + ".json"
			if len(args) == 2 {
				filename = args[1]
			}
			if err := dataset.SaveToFile(&scenario.DataSet, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample %q saved to %s\n", scenario.Name, filename)
			return nil
		},
	}
}

func (a *app) newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Render every dataset file in a directory into --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := batch.Discover(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no dataset files (%s) in %s", strings.Join(dataset.Extensions, ", "), args[0])
			}

			outDir := a.cfg.Output
			if !cmd.Flags().Changed("output") {
				outDir = "."
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			specs, err := batch.PlanSpecs(files, outDir, a.cfg.Width, a.cfg.Height, a.cfg.ImageExt())
			if err != nil {
				return err
			}

			composer, err := a.composer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			runner := batch.NewRunner(composer, batch.Options{
				Workers:         a.cfg.Workers,
				ContinueOnError: a.cfg.ContinueOnError,
			}, a.log)
			results, runErr := runner.Run(ctx, specs, func(p batch.Progress) {
				a.log.Debugf("Progress: %d/%d (%d failed)", p.Completed, p.Total, p.Failed)
			})

			printResults(cmd, results)
			return runErr
		},
	}
}

// printResults prints one line per job
func printResults(cmd *cobra.Command, results []batch.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Output\tStatus\tTime")
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = "failed: " + res.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Base(res.Spec.OutputPath), status, res.Duration.Round(time.Millisecond))
	}
	w.Flush()
}
