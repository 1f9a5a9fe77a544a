package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/report"
)

func newFuelsCmd(a *app) *cobra.Command {
	var activity, subcategory string

	cmd := &cobra.Command{
		Use:   "fuels",
		Short: "List the fuels in the registry",
		Example: `  # Every fuel
  ghgcalc fuels

  # Gaseous stationary fuels
  ghgcalc fuels --activity STATIONARY_COMBUSTION --subcategory GAS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFuelsList(cmd, a, activity, subcategory)
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "",
		"activity type: STATIONARY_COMBUSTION, MOBILE_COMBUSTION, ELECTRICITY, STEAM")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "combustion subcategory: LIQUID, SOLID, GAS")
	addOutputFlag(cmd)

	cmd.AddCommand(newFuelsShowCmd(a), newFuelsValidateCmd(a))
	return cmd
}

func runFuelsList(cmd *cobra.Command, a *app, activity, subcategory string) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	reg, err := a.fuelRegistry()
	if err != nil {
		return err
	}

	sub, err := fuel.ParseSubcategory(subcategory)
	if err != nil {
		return err
	}

	var defs []fuel.Definition
	if activity != "" {
		at, err := fuel.ParseActivityType(activity)
		if err != nil {
			return err
		}
		defs = reg.ListByActivityType(at, sub)
	} else {
		for _, def := range reg.All() {
			if sub == "" || def.Subcategory == sub {
				defs = append(defs, def)
			}
		}
	}
	if defs == nil {
		defs = []fuel.Definition{}
	}

	return report.Render(cmd.OutOrStdout(), format, defs)
}

func newFuelsShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show FUEL_ID",
		Short:   "Show one fuel definition",
		Example: `  ghgcalc fuels show LNG -o yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(cmd)
			if err != nil {
				return err
			}
			reg, err := a.fuelRegistry()
			if err != nil {
				return err
			}
			def, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), format, []fuel.Definition{def})
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newFuelsValidateCmd(a *app) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a fuel table for inconsistent definitions",
		Long: `Loads a fuel table and checks every entry against the activity-type rules:
combustion fuels need calorific values and gas factors, stationary fuels need factors
for every purpose category, and electricity and steam need their own factor shapes.`,
		Example: `  # Check the configured or built-in table
  ghgcalc fuels validate

  # Check a candidate table
  ghgcalc fuels validate --table fuels-2025.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFuelsValidate(cmd, a, table)
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "fuel table to check (default is --fuel-table or the built-in table)")
	return cmd
}

func runFuelsValidate(cmd *cobra.Command, a *app, table string) error {
	if table == "" {
		table = a.cfg.FuelTable
	}

	var (
		reg    *fuel.Registry
		err    error
		source = table
	)
	if table == "" {
		source = "built-in table"
		reg, err = fuel.NewRegistry(fuel.DefaultTable())
	} else {
		reg, err = fuel.LoadFile(table)
	}
	if err != nil {
		return fmt.Errorf("fuel table validation failed: %w", err)
	}

	cmd.Printf("Fuel table is valid: %s (%d fuels)\n", source, reg.Len())
	return nil
}
