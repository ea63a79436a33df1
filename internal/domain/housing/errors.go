package housing

import "errors"

var (
	ErrUnitNotFound      = errors.New("housing unit not found")
	ErrUnitUnavailable   = errors.New("housing unit is not available")
	ErrDuplicateLocation = errors.New("a housing unit already exists at this address and city")
	ErrInvalidUnitStatus = errors.New("invalid housing unit status")
	ErrInvalidField      = errors.New("invalid housing unit field")
)
