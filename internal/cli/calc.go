package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghg-emissions-engine/internal/apierr"
	"github.com/rshade/ghg-emissions-engine/internal/inventory"
	"github.com/rshade/ghg-emissions-engine/internal/report"
)

func newCalcCmd(a *app) *cobra.Command {
	var rec inventory.Record
	var quantity string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate emissions for one fuel quantity",
		Long: `Calculates CO2, CH4 and N2O masses and the CO2-equivalent total for one fuel or
energy carrier. Stationary combustion fuels need --purpose; every other activity type
ignores it. --unit converts the quantity to the fuel's declared unit first.`,
		Example: `  # 10 kL of diesel
  ghgcalc calc --fuel DIESEL --quantity 10

  # Same amount stated in litres
  ghgcalc calc --fuel DIESEL --quantity 10000 --unit L

  # 1,000 kWh of grid electricity as JSON
  ghgcalc calc --fuel ELECTRICITY --quantity 1000 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec.Quantity = inventory.Quantity(quantity)
			return runCalc(cmd, a, rec)
		},
	}

	cmd.Flags().StringVar(&rec.FuelID, "fuel", "", "fuel id, e.g. DIESEL (required)")
	cmd.Flags().StringVar(&quantity, "quantity", "", "quantity used, in the fuel's unit or --unit (required)")
	cmd.Flags().StringVar(&rec.Unit, "unit", "", "unit of --quantity (default is the fuel's declared unit)")
	cmd.Flags().StringVar(&rec.Purpose, "purpose", "", "purpose category: energy, manufacturing, commercial, domestic")
	cmd.Flags().StringVar(&rec.ActivityType, "activity", "", "expected activity type of the fuel")
	cmd.Flags().StringVar(&rec.Subcategory, "subcategory", "", "expected subcategory of the fuel")
	addOutputFlag(cmd)
	_ = cmd.MarkFlagRequired("fuel")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func runCalc(cmd *cobra.Command, a *app, rec inventory.Record) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	calc, err := a.calculator()
	if err != nil {
		return err
	}

	req, err := rec.Request()
	if err == nil {
		result, calcErr := calc.Calculate(req)
		if calcErr == nil {
			return report.Render(cmd.OutOrStdout(), format, result)
		}
		err = calcErr
	}

	a.logger.Debug().Str("fuel_id", rec.FuelID).Err(err).Msg("calculation failed")
	if format != report.FormatJSON {
		return err
	}

	// JSON callers get the machine-readable status instead of a plain message.
	body, jsonErr := apierr.JSON(err)
	if jsonErr != nil {
		return fmt.Errorf("%w (failed to encode status: %v)", err, jsonErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return &ExitCodeError{Code: ExitError, Err: err}
}
