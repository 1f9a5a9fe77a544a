// Package inventory runs batches of consumption records through the calculator and
// aggregates the results into a Scope 1 / Scope 2 emissions summary.
package inventory

import (
	"bytes"
	"errors"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
)

// Quantity is a usage amount as entered in a form. It decodes from either a JSON/YAML
// number or a string such as "1,234.5".
type Quantity string

// UnmarshalJSON accepts a number or a string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	if string(data) == "null" {
		*q = ""
		return nil
	}
	*q = Quantity(data)
	return nil
}

// UnmarshalYAML accepts any scalar.
func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.New("quantity must be a scalar")
	}
	*q = Quantity(value.Value)
	return nil
}

// Record is one consumption line of an emissions inventory.
type Record struct {
	ID           string   `json:"id" yaml:"id"`
	FuelID       string   `json:"fuelId" yaml:"fuelId"`
	ActivityType string   `json:"activityType,omitempty" yaml:"activityType,omitempty"`
	Subcategory  string   `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Purpose      string   `json:"purposeCategory,omitempty" yaml:"purposeCategory,omitempty"`
	Quantity     Quantity `json:"quantity" yaml:"quantity"`
	Unit         string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Period       string   `json:"period,omitempty" yaml:"period,omitempty"`
	Site         string   `json:"site,omitempty" yaml:"site,omitempty"`
}

// Request parses the record's form fields into a calculation request.
// Every parse failure is reported, joined.
func (r Record) Request() (emissions.Request, error) {
	var errs []error

	quantity, err := emissions.ParseQuantity(string(r.Quantity))
	if err != nil {
		errs = append(errs, err)
	}
	purpose, err := fuel.ParsePurpose(r.Purpose)
	if err != nil {
		errs = append(errs, err)
	}

	var activity fuel.ActivityType
	if r.ActivityType != "" {
		if activity, err = fuel.ParseActivityType(r.ActivityType); err != nil {
			errs = append(errs, err)
		}
	}
	sub, err := fuel.ParseSubcategory(r.Subcategory)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return emissions.Request{}, errors.Join(errs...)
	}
	return emissions.Request{
		FuelID:       r.FuelID,
		ActivityType: activity,
		Subcategory:  sub,
		Purpose:      purpose,
		Quantity:     quantity,
		Unit:         r.Unit,
	}, nil
}
