package store

import (
	"fmt"
	"time"
)

// DuplicateReadingError is returned when an added reading collides with an
// existing one: same meter, same calendar date, value within the tolerance.
type DuplicateReadingError struct {
	MeterID string
	Date    time.Time
	Reading float64
}

func (e *DuplicateReadingError) Error() string {
	return fmt.Sprintf("a reading for %s already exists on %s (%.2f kWh)",
		e.MeterID, e.Date.Format("2006-01-02"), e.Reading)
}

// NotFoundError is returned when an operation targets an id that is not in
// the repository
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no reading with id %s", e.ID)
}

// NotEstimatedError is returned when estimated-only removal is attempted
// against a manual or imported reading
type NotEstimatedError struct {
	ID string
}

func (e *NotEstimatedError) Error() string {
	return fmt.Sprintf("reading %s is not estimated; refusing to remove real data", e.ID)
}
