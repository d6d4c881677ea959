package hotspot

import "errors"

var (
	// ErrContainer is returned when the detection file cannot be opened as a
	// netCDF/HDF5 container or lacks the expected fields.
	ErrContainer = errors.New("hotspot: bad detection container")

	// ErrLengthMismatch is returned when a hotspot set and its country
	// assignments differ in length.
	ErrLengthMismatch = errors.New("hotspot: country assignments do not match hotspot count")
)
