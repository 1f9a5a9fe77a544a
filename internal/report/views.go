package report

import (
	"math"

	"github.com/google/uuid"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/inventory"
)

// Display precision per quantity.
const (
	CO2Decimals    = 3
	TraceDecimals  = 6 // CH4 and N2O masses
	CO2eDecimals   = 3
	EnergyDecimals = 6
)

// Round rounds f half away from zero to decimals places.
func Round(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}

// ResultView is a calculation result rounded for audit display.
type ResultView struct {
	FuelID        string  `json:"fuelId" yaml:"fuelId"`
	FuelName      string  `json:"fuelName" yaml:"fuelName"`
	ActivityType  string  `json:"activityType" yaml:"activityType"`
	Purpose       string  `json:"purposeCategory,omitempty" yaml:"purposeCategory,omitempty"`
	Quantity      float64 `json:"quantity" yaml:"quantity"`
	Unit          string  `json:"unit" yaml:"unit"`
	EnergyTJ      float64 `json:"energyTJ,omitempty" yaml:"energyTJ,omitempty"`
	CO2Mass       float64 `json:"co2Mass" yaml:"co2Mass"`
	CH4Mass       float64 `json:"ch4Mass" yaml:"ch4Mass"`
	N2OMass       float64 `json:"n2oMass" yaml:"n2oMass"`
	TotalCO2eTons float64 `json:"totalCo2Equivalent" yaml:"totalCo2Equivalent"`
	Formula       string  `json:"formula" yaml:"formula"`
	FactorsKnown  bool    `json:"factorsKnown" yaml:"factorsKnown"`
}

// NewResultView rounds r for display.
func NewResultView(r emissions.Result) ResultView {
	return ResultView{
		FuelID:        r.FuelID,
		FuelName:      r.FuelName,
		ActivityType:  string(r.ActivityType),
		Purpose:       string(r.Purpose),
		Quantity:      r.Quantity,
		Unit:          string(r.Unit),
		EnergyTJ:      Round(r.EnergyTJ, EnergyDecimals),
		CO2Mass:       Round(r.CO2MassKg, CO2Decimals),
		CH4Mass:       Round(r.CH4MassKg, TraceDecimals),
		N2OMass:       Round(r.N2OMassKg, TraceDecimals),
		TotalCO2eTons: Round(r.TotalCO2eTons, CO2eDecimals),
		Formula:       r.Formula,
		FactorsKnown:  r.FactorsKnown,
	}
}

// FuelView is one registry entry as listed to users.
type FuelView struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	LocalName           string  `json:"localName,omitempty" yaml:"localName,omitempty"`
	Category            string  `json:"category" yaml:"category"`
	ActivityType        string  `json:"activityType" yaml:"activityType"`
	Subcategory         string  `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Unit                string  `json:"unit" yaml:"unit"`
	NetCalorificValue   float64 `json:"netCalorificValue,omitempty" yaml:"netCalorificValue,omitempty"`
	GrossCalorificValue float64 `json:"grossCalorificValue,omitempty" yaml:"grossCalorificValue,omitempty"`
	FactorsKnown        bool    `json:"factorsKnown" yaml:"factorsKnown"`
	Note                string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewFuelView converts a definition for listing.
func NewFuelView(d fuel.Definition) FuelView {
	return FuelView{
		ID:                  d.ID,
		Name:                d.Name,
		LocalName:           d.LocalName,
		Category:            string(d.Category),
		ActivityType:        string(d.ActivityType),
		Subcategory:         string(d.Subcategory),
		Unit:                string(d.Unit),
		NetCalorificValue:   d.NetCalorificValue,
		GrossCalorificValue: d.GrossCalorificValue,
		FactorsKnown:        d.FactorsKnown,
		Note:                d.Note,
	}
}

// OutcomeView is one batch record outcome.
type OutcomeView struct {
	ID     string      `json:"id" yaml:"id"`
	FuelID string      `json:"fuelId" yaml:"fuelId"`
	Site   string      `json:"site,omitempty" yaml:"site,omitempty"`
	Period string      `json:"period,omitempty" yaml:"period,omitempty"`
	Result *ResultView `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummaryView is a batch summary rounded for display.
type SummaryView struct {
	RunID          uuid.UUID          `json:"runId" yaml:"runId"`
	Records        int                `json:"records" yaml:"records"`
	Succeeded      int                `json:"succeeded" yaml:"succeeded"`
	Failed         int                `json:"failed" yaml:"failed"`
	UnknownFactors int                `json:"unknownFactors" yaml:"unknownFactors"`
	TotalCO2eTons  float64            `json:"totalCo2Equivalent" yaml:"totalCo2Equivalent"`
	Scope1Tons     float64            `json:"scope1" yaml:"scope1"`
	Scope2Tons     float64            `json:"scope2" yaml:"scope2"`
	ByActivity     map[string]float64 `json:"byActivity" yaml:"byActivity"`
	ByFuel         map[string]float64 `json:"byFuel" yaml:"byFuel"`
	BySite         map[string]float64 `json:"bySite,omitempty" yaml:"bySite,omitempty"`
}

// BatchView is a full batch report for display.
type BatchView struct {
	Summary  SummaryView   `json:"summary" yaml:"summary"`
	Outcomes []OutcomeView `json:"outcomes" yaml:"outcomes"`
}

// NewBatchView rounds a batch report for display.
func NewBatchView(r *inventory.Report) BatchView {
	s := r.Summary
	view := BatchView{
		Summary: SummaryView{
			RunID:          s.RunID,
			Records:        s.Records,
			Succeeded:      s.Succeeded,
			Failed:         s.Failed,
			UnknownFactors: s.UnknownFactors,
			TotalCO2eTons:  Round(s.TotalCO2eTons, CO2eDecimals),
			Scope1Tons:     Round(s.Scope1Tons, CO2eDecimals),
			Scope2Tons:     Round(s.Scope2Tons, CO2eDecimals),
			ByActivity:     make(map[string]float64, len(s.ByActivity)),
			ByFuel:         make(map[string]float64, len(s.ByFuel)),
		},
		Outcomes: make([]OutcomeView, 0, len(r.Outcomes)),
	}
	for at, v := range s.ByActivity {
		view.Summary.ByActivity[string(at)] = Round(v, CO2eDecimals)
	}
	for id, v := range s.ByFuel {
		view.Summary.ByFuel[id] = Round(v, CO2eDecimals)
	}
	if len(s.BySite) > 0 {
		view.Summary.BySite = make(map[string]float64, len(s.BySite))
		for site, v := range s.BySite {
			view.Summary.BySite[site] = Round(v, CO2eDecimals)
		}
	}

	for _, o := range r.Outcomes {
		ov := OutcomeView{
			ID:     o.Record.ID,
			FuelID: o.Record.FuelID,
			Site:   o.Record.Site,
			Period: o.Record.Period,
			Error:  o.Error,
		}
		if o.Result != nil {
			rv := NewResultView(*o.Result)
			ov.Result = &rv
		}
		view.Outcomes = append(view.Outcomes, ov)
	}
	return view
}
