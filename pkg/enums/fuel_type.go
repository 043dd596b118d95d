package enums

import (
	"fmt"
	"strings"
)

// FuelType identifies the fuel grade dispensed by a pump.
type FuelType string

const (
	FuelTypePMS  FuelType = "PMS"
	FuelTypeAGO  FuelType = "AGO"
	FuelTypeLPG  FuelType = "LPG"
	FuelTypeKero FuelType = "KERO"
)

var validFuelTypes = []FuelType{
	FuelTypePMS,
	FuelTypeAGO,
	FuelTypeLPG,
	FuelTypeKero,
}

// String implements fmt.Stringer.
func (f FuelType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FuelType.
func (f FuelType) IsValid() bool {
	for _, candidate := range validFuelTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFuelType converts raw input into a FuelType. Grade codes are matched
// case-insensitively since they arrive as query parameters.
func ParseFuelType(value string) (FuelType, error) {
	for _, candidate := range validFuelTypes {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fuel type %q", value)
}
