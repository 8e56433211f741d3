// Package convert converts values between units of length, weight,
// temperature, time and volume.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownUnit     = errors.New("unknown unit")

	// ErrBelowAbsoluteZero is returned for temperatures colder than -273.15 °C.
	ErrBelowAbsoluteZero = errors.New("temperature below absolute zero")
)

const (
	absoluteZeroCelsius = -273.15
	// rounding slack so -459.67 °F still counts as absolute zero
	absoluteZeroSlack   = 1e-9
)

type Category string

const (
	Length      Category = "Length"
	Weight      Category = "Weight"
	Temperature Category = "Temperature"
	Time        Category = "Time"
	Volume      Category = "Volume"
)

// Categories in display order.
var Categories = []Category{Length, Weight, Temperature, Time, Volume}

// factors map a unit to its size in the category's base unit
// (metre, gram, second, cubic metre).
var factors = map[Category]map[string]float64{
	Length: {
		"Kilometre":     1000,
		"Metre":         1,
		"Centimetre":    0.01,
		"Millimetre":    0.001,
		"Micrometre":    0.000001,
		"Nanometre":     0.000000001,
		"Mile":          1609.344,
		"Yard":          0.9144,
		"Foot":          0.3048,
		"Inch":          0.0254,
		"Nautical mile": 1852,
	},
	Weight: {
		"Gram":           1,
		"Kilogram":       1000,
		"Milligram":      0.001,
		"Metric Ton":     1000000,
		"Ounce":          28.3495,
		"Pound":          453.592,
		"Short Ton (US)": 907184.74,
		"Long Ton (UK)":  1016046.9088,
	},
	Time: {
		"Second": 1,
		"Minute": 60,
		"Hour":   3600,
		"Day":    86400,
		"Week":   604800,
		"Month":  2592000,  // 30 days
		"Year":   31536000, // 365 days
	},
	Volume: {
		"Cubic Meter":      1,
		"Liter":            0.001,
		"Milliliter":       0.000001,
		"Cubic Centimeter": 0.000001,
		"Cubic Inch":       0.000016387064,
		"Cubic Foot":       0.0283168,
		"Gallon (US)":      0.00378541,
		"Quart (US)":       0.000946353,
		"Pint (US)":        0.000473176,
		"Ounce (US)":       0.0000295735,
	},
}

var temperatureUnits = []string{"Celsius", "Fahrenheit", "Kelvin"}

// ParseCategory matches name against the known categories, ignoring case.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(name), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Units returns the unit names of c in alphabetical order.
func Units(c Category) ([]string, error) {
	if c == Temperature {
		return append([]string(nil), temperatureUnits...), nil
	}

	table, ok := factors[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	units := make([]string, 0, len(table))
	for u := range table {
		units = append(units, u)
	}
	sort.Strings(units)
	return units, nil
}

// Convert expresses value, given in unit from, in unit to. Unit names are
// matched ignoring case.
func Convert(c Category, from, to string, value float64) (float64, error) {
	if c == Temperature {
		return convertTemperature(from, to, value)
	}

	table, ok := factors[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	fromFactor, err := lookup(table, from)
	if err != nil {
		return 0, err
	}
	toFactor, err := lookup(table, to)
	if err != nil {
		return 0, err
	}

	return value * fromFactor / toFactor, nil
}

func lookup(table map[string]float64, unit string) (float64, error) {
	for name, f := range table {
		if strings.EqualFold(name, strings.TrimSpace(unit)) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
}

func convertTemperature(from, to string, value float64) (float64, error) {
	var celsius float64

	switch strings.ToLower(strings.TrimSpace(from)) {
	case "celsius":
		celsius = value
	case "fahrenheit":
		celsius = (value - 32) * 5 / 9
	case "kelvin":
		celsius = value - 273.15
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}

	if celsius < absoluteZeroCelsius-absoluteZeroSlack {
		return 0, fmt.Errorf("%w: %g %s", ErrBelowAbsoluteZero, value, from)
	}

	switch strings.ToLower(strings.TrimSpace(to)) {
	case "celsius":
		return celsius, nil
	case "fahrenheit":
		return celsius*9/5 + 32, nil
	case "kelvin":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
}
