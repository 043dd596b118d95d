package enums

import "fmt"

// MovementType labels an entry in the tank movement ledger.
type MovementType string

const (
	MovementTypeReserved MovementType = "reserved"
	MovementTypeSale     MovementType = "sale"
	MovementTypeReleased MovementType = "released"
	MovementTypeRefund   MovementType = "refund"
)

var validMovementTypes = []MovementType{
	MovementTypeReserved,
	MovementTypeSale,
	MovementTypeReleased,
	MovementTypeRefund,
}

// String implements fmt.Stringer.
func (m MovementType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MovementType.
func (m MovementType) IsValid() bool {
	for _, candidate := range validMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovementType converts raw input into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	for _, candidate := range validMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement type %q", value)
}
