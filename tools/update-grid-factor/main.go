// Package main provides a tool to update the purchased-electricity emission factors in
// the embedded fuel table when the national grid factor is republished.
//
// The tool rewrites the co2/ch4/n2o factors of one ELECTRICITY-type entry in
// internal/fuel/data/fuels.yaml and checks that the resulting table still loads.
//
// Usage:
//
//	go run ./tools/update-grid-factor --co2 0.4594 --ch4 0.0000050 --n2o 0.0000025
//	go run ./tools/update-grid-factor --source grid-2024.json [--dry-run]
//
// Flags:
//
//	--fuel      Fuel id to update (default: ELECTRICITY)
//	--source    JSON file with {"co2": ..., "ch4": ..., "n2o": ...} in kg/kWh
//	--co2, --ch4, --n2o  Factors in kg/kWh; override --source
//	--dry-run   Print the updated table without writing it
//	--table     Path to fuels.yaml (default: ./internal/fuel/data/fuels.yaml)
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

const (
	// Valid range for grid factors in kg per kWh.
	minValidFactor = 0.0 // Hydro- and nuclear-dominated grids are near zero
	maxValidFactor = 2.0 // No grid exceeds 2 kg CO2 per kWh

	notSet = -1.0
)

// gridFactors are the per-gas factors of one electricity entry, in kg/kWh.
type gridFactors struct {
	CO2 float64 `json:"co2"`
	CH4 float64 `json:"ch4"`
	N2O float64 `json:"n2o"`
}

func main() {
	fuelID := flag.String("fuel", "ELECTRICITY", "Fuel id to update")
	source := flag.String("source", "", "JSON file with co2, ch4 and n2o factors in kg/kWh")
	co2 := flag.Float64("co2", notSet, "CO2 factor in kg/kWh")
	ch4 := flag.Float64("ch4", notSet, "CH4 factor in kg/kWh")
	n2o := flag.Float64("n2o", notSet, "N2O factor in kg/kWh")
	dryRun := flag.Bool("dry-run", false, "Print the updated table without writing it")
	table := flag.String("table", "./internal/fuel/data/fuels.yaml", "Path to fuels.yaml")
	flag.Parse()

	factors := gridFactors{CO2: notSet, CH4: notSet, N2O: notSet}
	if *source != "" {
		loaded, err := loadSource(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
			os.Exit(1)
		}
		factors = loaded
	}
	if *co2 != notSet {
		factors.CO2 = *co2
	}
	if *ch4 != notSet {
		factors.CH4 = *ch4
	}
	if *n2o != notSet {
		factors.N2O = *n2o
	}

	if err := validateFactors(factors); err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading table: %v\n", err)
		os.Exit(1)
	}

	updated, err := updateTable(data, *fuelID, factors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating table: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("--- Dry run output ---")
		fmt.Print(string(updated))
		return
	}

	if err := os.WriteFile(*table, updated, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated %s in %s: co2=%g ch4=%g n2o=%g kg/kWh\n",
		*fuelID, *table, factors.CO2, factors.CH4, factors.N2O)
	fmt.Println("Run 'go test ./internal/fuel/... ./internal/emissions/...' to verify the changes")
}

func loadSource(path string) (gridFactors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gridFactors{}, err
	}
	f := gridFactors{CO2: notSet, CH4: notSet, N2O: notSet}
	if err := json.Unmarshal(data, &f); err != nil {
		return gridFactors{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return f, nil
}

// validateFactors checks that every factor is set and within the expected range.
func validateFactors(f gridFactors) error {
	var errs []string
	for _, gas := range []struct {
		name  string
		value float64
	}{{"co2", f.CO2}, {"ch4", f.CH4}, {"n2o", f.N2O}} {
		switch {
		case gas.value == notSet:
			errs = append(errs, gas.name+": not set")
		case gas.value < minValidFactor || gas.value > maxValidFactor:
			errs = append(errs, fmt.Sprintf("%s: factor %g is outside valid range [%g, %g]",
				gas.name, gas.value, minValidFactor, maxValidFactor))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

// updateTable sets the factors of fuel id in a YAML fuel table, keeping the rest of the
// document and its comments. The result must load as a consistent registry.
func updateTable(data []byte, id string, f gridFactors) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	entry, err := findFuel(&doc, id)
	if err != nil {
		return nil, err
	}
	if at := mappingValue(entry, "activity_type"); at == nil || at.Value != string(fuel.Electricity) {
		return nil, fmt.Errorf("%s is not an %s entry", id, fuel.Electricity)
	}

	for key, value := range map[string]float64{"co2_factor": f.CO2, "ch4_factor": f.CH4, "n2o_factor": f.N2O} {
		node := mappingValue(entry, key)
		if node == nil {
			return nil, fmt.Errorf("%s has no %s", id, key)
		}
		node.Kind = yaml.ScalarNode
		node.Tag = ""
		node.Style = 0
		node.Content = nil
		node.Value = strconv.FormatFloat(value, 'f', -1, 64)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode table: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	if _, err := fuel.NewRegistry(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("updated table is invalid: %w", err)
	}
	return buf.Bytes(), nil
}

func findFuel(doc *yaml.Node, id string) (*yaml.Node, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty table")
	}
	fuels := mappingValue(doc.Content[0], "fuels")
	if fuels == nil || fuels.Kind != yaml.SequenceNode {
		return nil, errors.New("table has no fuels list")
	}
	for _, entry := range fuels.Content {
		if v := mappingValue(entry, "id"); v != nil && strings.EqualFold(v.Value, id) {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("fuel %q not found in table", id)
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
