package profile

import "errors"

var (
	// ErrLengthMismatch is returned when an upsampled series cannot have exactly the target length.
	ErrLengthMismatch = errors.New("upsampled length cannot match target")
	// ErrUnknownBaseProfile is returned when a load references a base profile that was not supplied.
	ErrUnknownBaseProfile = errors.New("unknown base profile")
)
