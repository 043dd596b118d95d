package enums

import "fmt"

// EquipmentStatus covers the operating state shared by tanks and pumps.
type EquipmentStatus string

const (
	EquipmentStatusActive      EquipmentStatus = "active"
	EquipmentStatusInactive    EquipmentStatus = "inactive"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusFaulty      EquipmentStatus = "faulty"
)

var validEquipmentStatuses = []EquipmentStatus{
	EquipmentStatusActive,
	EquipmentStatusInactive,
	EquipmentStatusMaintenance,
	EquipmentStatusFaulty,
}

// String implements fmt.Stringer.
func (e EquipmentStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EquipmentStatus.
func (e EquipmentStatus) IsValid() bool {
	for _, candidate := range validEquipmentStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEquipmentStatus converts raw input into an EquipmentStatus.
func ParseEquipmentStatus(value string) (EquipmentStatus, error) {
	for _, candidate := range validEquipmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid equipment status %q", value)
}
