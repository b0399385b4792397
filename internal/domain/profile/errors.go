package profile

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrLicenseNumberTaken   = errors.New("license number already exists")
	ErrInvalidAvailability  = errors.New("available_from must be before available_to")
)
