// Package cli implements the ghgcalc command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rshade/ghg-emissions-engine/internal/config"
	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/report"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitPartial = 2 // batch finished but some records failed
)

// ExitCodeError carries the process exit code for an error already reported to the user.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }

func (e *ExitCodeError) Unwrap() error { return e.Err }

// app is the state shared by the commands of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	debug    bool
	cfg      config.Config
	logger   zerolog.Logger
	registry *fuel.Registry
}

// NewRootCmd creates the root ghgcalc command.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:     "ghgcalc",
		Short:   "Greenhouse-gas emissions calculator",
		Long:    "ghgcalc: Calculate CO2, CH4, N2O and CO2-equivalent emissions from fuel and energy use",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.ghgcalc.yaml or $HOME/.ghgcalc.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.String(config.KeyLogLevel, config.Default().LogLevel, "log level (trace, debug, info, warn, error)")
	flags.String(config.KeyLogFormat, config.Default().LogFormat, "log format (console or json)")
	flags.String(config.KeyFuelTable, "", "fuel table YAML file (default is the built-in table)")
	for _, key := range []string{config.KeyLogLevel, config.KeyLogFormat, config.KeyFuelTable} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	cmd.AddCommand(newCalcCmd(a), newFuelsCmd(a), newBatchCmd(a))
	return cmd
}

const rootCmdExample = `  # Emissions from 10 kL of diesel
  ghgcalc calc --fuel DIESEL --quantity 10

  # Stationary combustion needs a purpose category
  ghgcalc calc --fuel BUNKER_C --quantity 1,000 --unit L --purpose manufacturing

  # List liquid stationary fuels
  ghgcalc fuels --activity STATIONARY_COMBUSTION --subcategory LIQUID

  # Calculate an inventory file and summarise by scope
  ghgcalc batch inventory.yaml --output json`

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	used, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.cfg, err = config.FromViper(a.v); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger = a.cfg.Logger(cmd.ErrOrStderr(), a.debug)
	fuel.SetLogger(a.logger)
	if used != "" {
		a.logger.Debug().Str("config_file", used).Msg("using config file")
	}
	return nil
}

// fuelRegistry returns the configured registry, loading it on first use.
func (a *app) fuelRegistry() (*fuel.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}
	if a.cfg.FuelTable == "" {
		a.registry = fuel.Default()
		return a.registry, nil
	}
	reg, err := fuel.LoadFile(a.cfg.FuelTable)
	if err != nil {
		return nil, err
	}
	a.registry = reg
	return reg, nil
}

func (a *app) calculator() (*emissions.Calculator, error) {
	reg, err := a.fuelRegistry()
	if err != nil {
		return nil, err
	}
	return emissions.NewCalculator(reg, a.logger), nil
}

// outputFormat returns the --output flag when set, else the configured format.
func (a *app) outputFormat(cmd *cobra.Command) (report.Format, error) {
	value := a.cfg.Output
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		value = f.Value.String()
	}
	return report.ParseFormat(value)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output format (table, json, yaml)")
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, ver string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(ver)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}
