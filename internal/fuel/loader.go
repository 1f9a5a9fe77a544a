package fuel

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/fuels.yaml
var defaultTableYAML []byte

//go:embed schema.json
var schemaJSON []byte

// Compiled at init time - failure here means a corrupted embedded schema.
var tableSchema *jsonschema.Schema

func init() {
	schemaDoc := must(jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON)))
	compiler := jsonschema.NewCompiler()
	must(struct{}{}, compiler.AddResource("schema.json", schemaDoc))
	tableSchema = must(compiler.Compile("schema.json"))
}

func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// tableFile is the on-disk layout of a fuel table.
type tableFile struct {
	Fuels []rawFuel `yaml:"fuels"`
}

// rawFuel mirrors one table entry before the activity-type invariant is checked.
type rawFuel struct {
	ID                    string      `yaml:"id"`
	Name                  string      `yaml:"name"`
	LocalName             string      `yaml:"local_name"`
	Category              string      `yaml:"category"`
	Unit                  string      `yaml:"unit"`
	ActivityType          string      `yaml:"activity_type"`
	Subcategory           string      `yaml:"subcategory"`
	GrossCalorificValue   float64     `yaml:"gross_calorific_value"`
	NetCalorificValue     float64     `yaml:"net_calorific_value"`
	CO2Factor             float64     `yaml:"co2_factor"`
	CH4Factor             factorValue `yaml:"ch4_factor"`
	N2OFactor             factorValue `yaml:"n2o_factor"`
	MobileEmissionFactors *GasFactors `yaml:"mobile_emission_factors"`
	FactorsKnown          *bool       `yaml:"factors_known"`
	Note                  string      `yaml:"note"`
}

// factorValue is either a single number or a map keyed by purpose category.
type factorValue struct {
	Scalar    *float64
	ByPurpose map[string]float64
}

// UnmarshalYAML accepts a scalar factor or a purpose-keyed mapping.
func (f *factorValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		f.Scalar = &v
		return nil
	case yaml.MappingNode:
		var m map[string]float64
		if err := value.Decode(&m); err != nil {
			return err
		}
		f.ByPurpose = m
		return nil
	default:
		return fmt.Errorf("factor must be a number or a mapping keyed by purpose category")
	}
}

func (f factorValue) isScalar() bool { return f.Scalar != nil && f.ByPurpose == nil }

func (f factorValue) isPurposeKeyed() bool { return f.ByPurpose != nil && f.Scalar == nil }

// purposeFactors converts a purpose-keyed mapping, requiring every purpose and nothing else.
func (f factorValue) purposeFactors() (PurposeFactors, error) {
	var pf PurposeFactors
	for key := range f.ByPurpose {
		p, err := ParsePurpose(key)
		if err != nil || p == PurposeNone {
			return pf, fmt.Errorf("unknown purpose key %q", key)
		}
	}
	for _, p := range Purposes {
		v, ok := f.ByPurpose[string(p)]
		if !ok {
			return pf, fmt.Errorf("missing factor for purpose %q", p)
		}
		switch p {
		case PurposeEnergy:
			pf.Energy = v
		case PurposeManufacturing:
			pf.Manufacturing = v
		case PurposeCommercial:
			pf.Commercial = v
		case PurposeDomestic:
			pf.Domestic = v
		}
	}
	return pf, nil
}

// parseTable validates data against the table schema and decodes it.
func parseTable(data []byte) (tableFile, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return tableFile{}, fmt.Errorf("failed to parse fuel table: %w", err)
	}
	if err := tableSchema.Validate(raw); err != nil {
		return tableFile{}, fmt.Errorf("%w: schema: %v", ErrInconsistentFuelDefinition, err)
	}

	var table tableFile
	if err := yaml.Unmarshal(data, &table); err != nil {
		return tableFile{}, fmt.Errorf("failed to decode fuel table: %w", err)
	}
	return table, nil
}

func inconsistent(id, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistentFuelDefinition, id, fmt.Sprintf(format, args...))
}

// toDefinition checks the activity-type/factor-shape invariant and builds the Definition.
func (r rawFuel) toDefinition() (Definition, error) {
	activity, err := ParseActivityType(r.ActivityType)
	if err != nil {
		return Definition{}, inconsistent(r.ID, "%v", err)
	}
	sub, err := ParseSubcategory(r.Subcategory)
	if err != nil {
		return Definition{}, inconsistent(r.ID, "%v", err)
	}

	def := Definition{
		ID:                  r.ID,
		Name:                r.Name,
		LocalName:           r.LocalName,
		Category:            Category(r.Category),
		Unit:                Unit(r.Unit),
		ActivityType:        activity,
		Subcategory:         sub,
		GrossCalorificValue: r.GrossCalorificValue,
		NetCalorificValue:   r.NetCalorificValue,
		FactorsKnown:        r.FactorsKnown == nil || *r.FactorsKnown,
		Note:                r.Note,
	}

	if activity.IsCombustion() {
		if r.NetCalorificValue <= 0 {
			return Definition{}, inconsistent(r.ID, "combustion fuel requires a positive net calorific value")
		}
		if sub == "" {
			return Definition{}, inconsistent(r.ID, "combustion fuel requires a subcategory")
		}
		if r.GrossCalorificValue != 0 && r.GrossCalorificValue < r.NetCalorificValue {
			return Definition{}, inconsistent(r.ID, "gross calorific value %v is below net %v",
				r.GrossCalorificValue, r.NetCalorificValue)
		}
	} else if sub != "" {
		return Definition{}, inconsistent(r.ID, "%s entries take no subcategory", activity)
	}

	switch activity {
	case StationaryCombustion:
		def.Factors, err = r.stationaryFactors()
	case MobileCombustion:
		def.Factors, err = r.mobileFactors()
	case Electricity:
		def.Factors, err = r.electricityFactors()
	case Steam:
		def.Factors, err = r.steamFactors()
	}
	if err != nil {
		return Definition{}, err
	}

	if !def.FactorsKnown && !def.Factors.AllZero() {
		return Definition{}, inconsistent(r.ID, "factors_known is false but factors are non-zero")
	}
	return def, nil
}

func (r rawFuel) stationaryFactors() (Factors, error) {
	if r.MobileEmissionFactors != nil {
		return nil, inconsistent(r.ID, "stationary fuel must not carry mobile_emission_factors")
	}
	if !r.CH4Factor.isPurposeKeyed() || !r.N2OFactor.isPurposeKeyed() {
		return nil, inconsistent(r.ID, "stationary fuel requires purpose-keyed ch4_factor and n2o_factor")
	}
	ch4, err := r.CH4Factor.purposeFactors()
	if err != nil {
		return nil, inconsistent(r.ID, "ch4_factor: %v", err)
	}
	n2o, err := r.N2OFactor.purposeFactors()
	if err != nil {
		return nil, inconsistent(r.ID, "n2o_factor: %v", err)
	}
	return StationaryFactors{CO2: r.CO2Factor, CH4: ch4, N2O: n2o}, nil
}

func (r rawFuel) mobileFactors() (Factors, error) {
	if !r.CH4Factor.isScalar() || !r.N2OFactor.isScalar() {
		return nil, inconsistent(r.ID, "mobile fuel requires scalar ch4_factor and n2o_factor")
	}
	if r.MobileEmissionFactors == nil {
		return nil, inconsistent(r.ID, "mobile fuel requires mobile_emission_factors")
	}
	return MobileFactors{
		CO2:    r.CO2Factor,
		CH4:    *r.CH4Factor.Scalar,
		N2O:    *r.N2OFactor.Scalar,
		Mobile: *r.MobileEmissionFactors,
	}, nil
}

func (r rawFuel) electricityFactors() (Factors, error) {
	if Unit(r.Unit) != UnitKilowattHour {
		return nil, inconsistent(r.ID, "electricity must be declared in %s, got %q", UnitKilowattHour, r.Unit)
	}
	if r.MobileEmissionFactors != nil {
		return nil, inconsistent(r.ID, "electricity must not carry mobile_emission_factors")
	}
	if !r.CH4Factor.isScalar() || !r.N2OFactor.isScalar() {
		return nil, inconsistent(r.ID, "electricity requires scalar ch4_factor and n2o_factor")
	}
	return ElectricityFactors{CO2: r.CO2Factor, CH4: *r.CH4Factor.Scalar, N2O: *r.N2OFactor.Scalar}, nil
}

func (r rawFuel) steamFactors() (Factors, error) {
	if Unit(r.Unit) != UnitGigajoule {
		return nil, inconsistent(r.ID, "steam must be declared in %s, got %q", UnitGigajoule, r.Unit)
	}
	if r.MobileEmissionFactors != nil {
		return nil, inconsistent(r.ID, "steam must not carry mobile_emission_factors")
	}
	if !r.CH4Factor.isScalar() || !r.N2OFactor.isScalar() {
		return nil, inconsistent(r.ID, "steam requires scalar ch4_factor and n2o_factor")
	}
	if *r.CH4Factor.Scalar != 0 || *r.N2OFactor.Scalar != 0 {
		return nil, inconsistent(r.ID, "steam ch4_factor and n2o_factor must be zero")
	}
	return SteamFactors{CO2: r.CO2Factor}, nil
}
