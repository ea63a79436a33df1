package valueobjects

// UnitStatus is the occupancy status of a housing unit.
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) String() string {
	return string(s)
}

// IsAvailable reports whether a unit in this status can receive a new
// subscription or a delivery.
func (s UnitStatus) IsAvailable() bool {
	return s == UnitStatusAvailable
}

// Unit status transitions are deliberately unrestricted: an administrator
// may move a unit between any two statuses (e.g. straight to maintenance).
// Subscription-driven flips go through dedicated repository operations.
var ValidUnitStatuses = map[UnitStatus]bool{
	UnitStatusAvailable:   true,
	UnitStatusOccupied:    true,
	UnitStatusMaintenance: true,
}

// ParseUnitStatus validates a raw status string at the API boundary.
func ParseUnitStatus(raw string) (UnitStatus, bool) {
	s := UnitStatus(raw)
	return s, ValidUnitStatuses[s]
}
