package inventory

import (
	"github.com/google/uuid"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// Scope is the GHG Protocol scope an activity type is reported under.
type Scope string

// Scopes. Scope 3 is out of scope for this engine.
const (
	Scope1 Scope = "SCOPE_1"
	Scope2 Scope = "SCOPE_2"
)

// ScopeOf classifies an activity type: direct combustion is Scope 1, purchased
// electricity and steam are Scope 2.
func ScopeOf(activity fuel.ActivityType) Scope {
	if activity.IsCombustion() {
		return Scope1
	}
	return Scope2
}

// Summary aggregates the successful outcomes of a run. Totals are in tons CO2e.
type Summary struct {
	RunID     uuid.UUID `json:"runId" yaml:"runId"`
	Records   int       `json:"records" yaml:"records"`
	Succeeded int       `json:"succeeded" yaml:"succeeded"`
	Failed    int       `json:"failed" yaml:"failed"`

	// UnknownFactors counts successful records whose fuel has no published factors,
	// so their zero contribution means missing data.
	UnknownFactors int `json:"unknownFactors" yaml:"unknownFactors"`

	TotalCO2eTons float64                       `json:"totalCo2Equivalent" yaml:"totalCo2Equivalent"`
	Scope1Tons    float64                       `json:"scope1" yaml:"scope1"`
	Scope2Tons    float64                       `json:"scope2" yaml:"scope2"`
	ByActivity    map[fuel.ActivityType]float64 `json:"byActivity" yaml:"byActivity"`
	ByFuel        map[string]float64            `json:"byFuel" yaml:"byFuel"`
	BySite        map[string]float64            `json:"bySite,omitempty" yaml:"bySite,omitempty"`
}

// Summarize totals outcomes in input order.
func Summarize(runID uuid.UUID, outcomes []Outcome) Summary {
	s := Summary{
		RunID:      runID,
		Records:    len(outcomes),
		ByActivity: make(map[fuel.ActivityType]float64),
		ByFuel:     make(map[string]float64),
		BySite:     make(map[string]float64),
	}

	for _, o := range outcomes {
		if o.Result == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		res := o.Result
		if !res.FactorsKnown {
			s.UnknownFactors++
		}

		total := res.TotalCO2eTons
		s.TotalCO2eTons += total
		switch ScopeOf(res.ActivityType) {
		case Scope1:
			s.Scope1Tons += total
		case Scope2:
			s.Scope2Tons += total
		}
		s.ByActivity[res.ActivityType] += total
		s.ByFuel[res.FuelID] += total
		if o.Record.Site != "" {
			s.BySite[o.Record.Site] += total
		}
	}

	return s
}
