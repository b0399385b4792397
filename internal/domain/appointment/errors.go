package appointment

import "errors"

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidDoctor        = errors.New("invalid doctor")
	ErrInvalidPatient       = errors.New("invalid patient")
	ErrTimeSlotNotAvailable = errors.New("time slot not available")
	ErrInvalidDate          = errors.New("appointment date must be in the future")
	ErrInvalidDuration      = errors.New("duration must be between 15 and 180 minutes")
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrForbidden            = errors.New("access denied")
	ErrAlreadyFinished      = errors.New("appointment already finished")
)
