package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghg-emissions-engine/internal/config"
	"github.com/rshade/ghg-emissions-engine/internal/inventory"
	"github.com/rshade/ghg-emissions-engine/internal/metrics"
	"github.com/rshade/ghg-emissions-engine/internal/report"
)

// errRecordsFailed reports a batch that finished with failed records.
var errRecordsFailed = errors.New("some inventory records failed")

func newBatchCmd(a *app) *cobra.Command {
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Calculate every record of an inventory file",
		Long: `Calculates every record of a YAML or JSON inventory file and prints each outcome
with a Scope 1 / Scope 2 summary. A failing record does not stop the run; the command
exits with status 2 when any record failed.`,
		Example: `  ghgcalc batch inventory.yaml
  ghgcalc batch inventory.json --concurrency 4 -o json
  ghgcalc batch inventory.yaml --metrics-file /var/lib/node_exporter/ghg.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, args[0], metricsFile)
		},
	}

	cmd.Flags().Int(config.KeyConcurrency, 0, "records calculated at once (default is the CPU count)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics for the run to this file")
	addOutputFlag(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, path, metricsFile string) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	concurrency := a.cfg.Concurrency
	if cmd.Flags().Changed(config.KeyConcurrency) {
		if concurrency, err = cmd.Flags().GetInt(config.KeyConcurrency); err != nil {
			return err
		}
		if concurrency < 0 {
			return fmt.Errorf("invalid %s %d: must be >= 0", config.KeyConcurrency, concurrency)
		}
	}

	records, err := inventory.LoadFile(path)
	if err != nil {
		return err
	}
	calc, err := a.calculator()
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if metricsFile != "" {
		collector = metrics.New()
	}

	rep, runErr := inventory.Run(cmd.Context(), calc, records, inventory.Options{
		Concurrency: concurrency,
		Logger:      a.logger,
		Metrics:     collector,
	})
	if rep != nil {
		if err := report.Render(cmd.OutOrStdout(), format, rep); err != nil {
			return err
		}
		if collector != nil {
			if err := collector.WriteTextfile(metricsFile); err != nil {
				return err
			}
		}
	}
	if runErr != nil {
		return fmt.Errorf("inventory run interrupted: %w", runErr)
	}

	if rep.Summary.Failed > 0 {
		return &ExitCodeError{
			Code: ExitPartial,
			Err:  fmt.Errorf("%w: %d of %d", errRecordsFailed, rep.Summary.Failed, rep.Summary.Records),
		}
	}
	return nil
}
