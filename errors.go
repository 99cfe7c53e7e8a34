package slickqueue

import "fmt"

var (
	// ErrInvalidCapacity reports a capacity that is zero or not a power of two.
	ErrInvalidCapacity = fmt.Errorf("capacity must be a power of two")

	// ErrInvalidReservation reports a reservation of zero slots or of more
	// slots than the queue holds.
	ErrInvalidReservation = fmt.Errorf("invalid reservation size")

	// ErrShmMapFailure reports that the named segment could not be created,
	// opened or mapped.
	ErrShmMapFailure = fmt.Errorf("shared memory mapping failed")

	// ErrShmInitTimeout reports that an opener gave up waiting for the
	// segment creator to finish initialization.
	ErrShmInitTimeout = fmt.Errorf("shared memory initialization timed out")

	// ErrElementSizeMismatch reports that the segment holds elements of a
	// different size than the requested element type.
	ErrElementSizeMismatch = fmt.Errorf("element size mismatch")

	// ErrCapacityMismatch reports that an existing segment was created with
	// a different capacity than requested.
	ErrCapacityMismatch = fmt.Errorf("capacity mismatch")
)
