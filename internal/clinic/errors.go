package clinic

import "errors"

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrVisitNotFound   = errors.New("visit not found")

	// ErrSlotNotAvailable means the slot's stored status changed, or its end
	// time passed, between the caller's read and the booking attempt. The
	// caller should refresh the availability view and pick another slot.
	ErrSlotNotAvailable = errors.New("slot no longer available")

	// ErrSlotNotBooked guards completion: only a booked slot can be marked
	// completed.
	ErrSlotNotBooked = errors.New("slot is not booked")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no active doctor session")
	ErrStaleSession       = errors.New("doctor session references an unknown doctor")
	ErrUsernameTaken      = errors.New("username is already taken")

	// ErrInvalidArgument wraps field-level validation failures. No partial
	// state is written when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")
)
