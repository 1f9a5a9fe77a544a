package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const tabPadding = 2

// printer groups thousands with the English separator.
var printer = message.NewPrinter(language.English)

// FormatNumber formats f with precision decimals and thousands separators.
// Example: FormatNumber(26157.3, 3) returns "26,157.300".
func FormatNumber(f float64, precision int) string {
	rounded := Round(f, precision)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return fmt.Sprint(rounded)
	}

	if rounded == 0 {
		rounded = 0 // drop the sign of negative zero
	}
	return printer.Sprintf("%.*f", precision, rounded)
}

type tableWriter struct {
	out    io.Writer
	styled bool
}

func (t *tableWriter) heading(title string) {
	if t.styled {
		fmt.Fprintln(t.out, headingStyle.Render(title))
		return
	}
	fmt.Fprintln(t.out, title)
	fmt.Fprintln(t.out, strings.Repeat("=", len([]rune(title))))
}

func (t *tableWriter) render(view any) error {
	switch v := view.(type) {
	case ResultView:
		t.heading("Emissions")
		return t.result(v)
	case []ResultView:
		t.heading("Emissions")
		return t.results(v)
	case []FuelView:
		t.heading("Fuels")
		return t.fuels(v)
	case BatchView:
		t.heading("Inventory")
		return t.batch(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedData, view)
	}
}

func (t *tableWriter) result(r ResultView) error {
	w := tabwriter.NewWriter(t.out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(w, "Fuel\t%s (%s)\n", r.FuelID, r.FuelName)
	fmt.Fprintf(w, "Activity\t%s\n", r.ActivityType)
	if r.Purpose != "" {
		fmt.Fprintf(w, "Purpose\t%s\n", r.Purpose)
	}
	fmt.Fprintf(w, "Quantity\t%s %s\n", FormatNumber(r.Quantity, CO2Decimals), r.Unit)
	if r.EnergyTJ != 0 {
		fmt.Fprintf(w, "Energy\t%s TJ\n", FormatNumber(r.EnergyTJ, EnergyDecimals))
	}
	fmt.Fprintf(w, "CO2\t%s kg\n", FormatNumber(r.CO2Mass, CO2Decimals))
	fmt.Fprintf(w, "CH4\t%s kg\n", FormatNumber(r.CH4Mass, TraceDecimals))
	fmt.Fprintf(w, "N2O\t%s kg\n", FormatNumber(r.N2OMass, TraceDecimals))
	fmt.Fprintf(w, "Total CO2e\t%s t\n", FormatNumber(r.TotalCO2eTons, CO2eDecimals))
	fmt.Fprintf(w, "Formula\t%s\n", r.Formula)
	if !r.FactorsKnown {
		fmt.Fprintln(w, "Note\tfactors not provided for this fuel; zero is missing data")
	}
	return w.Flush()
}

func (t *tableWriter) results(rs []ResultView) error {
	w := tabwriter.NewWriter(t.out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Fuel\tActivity\tQuantity\tCO2 (kg)\tCH4 (kg)\tN2O (kg)\tCO2e (t)")
	fmt.Fprintln(w, "----\t--------\t--------\t--------\t--------\t--------\t--------")
	for _, r := range rs {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			r.FuelID, r.ActivityType,
			FormatNumber(r.Quantity, CO2Decimals), r.Unit,
			FormatNumber(r.CO2Mass, CO2Decimals),
			FormatNumber(r.CH4Mass, TraceDecimals),
			FormatNumber(r.N2OMass, TraceDecimals),
			FormatNumber(r.TotalCO2eTons, CO2eDecimals))
	}
	return w.Flush()
}

func (t *tableWriter) fuels(fs []FuelView) error {
	w := tabwriter.NewWriter(t.out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "ID\tName\tLocal\tActivity\tSubcategory\tUnit\tNCV (GJ/unit)\tFactors")
	fmt.Fprintln(w, "--\t----\t-----\t--------\t-----------\t----\t-------------\t-------")
	for _, f := range fs {
		ncv := "-"
		if f.NetCalorificValue != 0 {
			ncv = FormatNumber(f.NetCalorificValue, 1)
		}
		sub := f.Subcategory
		if sub == "" {
			sub = "-"
		}
		known := "known"
		if !f.FactorsKnown {
			known = "not provided"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.Name, f.LocalName, f.ActivityType, sub, f.Unit, ncv, known)
	}
	return w.Flush()
}

func (t *tableWriter) batch(b BatchView) error {
	w := tabwriter.NewWriter(t.out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Record\tFuel\tSite\tPeriod\tCO2e (t)\tStatus")
	fmt.Fprintln(w, "------\t----\t----\t------\t--------\t------")
	for _, o := range b.Outcomes {
		total, status := "-", "ok"
		if o.Result != nil {
			total = FormatNumber(o.Result.TotalCO2eTons, CO2eDecimals)
			if !o.Result.FactorsKnown {
				status = "factors not provided"
			}
		} else {
			status = "error: " + o.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.FuelID, o.Site, o.Period, total, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := b.Summary
	fmt.Fprintln(t.out)
	w = tabwriter.NewWriter(t.out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(w, "Run\t%s\n", s.RunID)
	fmt.Fprintf(w, "Records\t%d (%d ok, %d failed)\n", s.Records, s.Succeeded, s.Failed)
	fmt.Fprintf(w, "Scope 1\t%s t\n", FormatNumber(s.Scope1Tons, CO2eDecimals))
	fmt.Fprintf(w, "Scope 2\t%s t\n", FormatNumber(s.Scope2Tons, CO2eDecimals))
	fmt.Fprintf(w, "Total CO2e\t%s t\n", FormatNumber(s.TotalCO2eTons, CO2eDecimals))
	for _, id := range sortedKeys(s.ByFuel) {
		fmt.Fprintf(w, "  %s\t%s t\n", id, FormatNumber(s.ByFuel[id], CO2eDecimals))
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
