package store

import (
	"math"
	"sort"
	"time"

	"github.com/jgoulah/meterlog/pkg/models"
)

// duplicateTolerance is how close two same-day readings can be before the
// second is considered a re-entry of the first.
const duplicateTolerance = 0.01

// Store holds the canonical, date-sorted set of readings for a session. It
// is the single mutable resource: every change flows through its methods so
// duplicate detection and the at-most-one-first-reading invariant are
// enforced in one place. It is not safe for concurrent use; callers
// serialize access.
type Store struct {
	readings []models.MeterReading
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// NewFromReadings creates a store seeded with already-loaded readings,
// typically from the persistence layer at session start.
func NewFromReadings(readings []models.MeterReading) *Store {
	s := &Store{readings: append([]models.MeterReading(nil), readings...)}
	s.sort()
	return s
}

// All returns the readings in date-ascending order. The returned slice is a
// copy; callers must treat the order as canonical.
func (s *Store) All() []models.MeterReading {
	out := make([]models.MeterReading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Len returns the number of readings held
func (s *Store) Len() int {
	return len(s.readings)
}

// Get returns the reading with the given id
func (s *Store) Get(id string) (models.MeterReading, error) {
	for _, r := range s.readings {
		if r.ID == id {
			return r, nil
		}
	}
	return models.MeterReading{}, &NotFoundError{ID: id}
}

// Add inserts a reading, rejecting near-duplicates: an existing reading for
// the same meter on the same calendar date with a value within 0.01 kWh.
// On success the store is re-sorted by date.
func (s *Store) Add(r models.MeterReading) (models.MeterReading, error) {
	if err := s.checkDuplicate(r, ""); err != nil {
		return models.MeterReading{}, err
	}

	s.readings = append(s.readings, r)
	s.sort()
	return r, nil
}

// checkDuplicate reports a DuplicateReadingError when another reading for
// the same meter shares r's calendar date within the tolerance. skipID
// exempts the reading being edited from matching itself.
func (s *Store) checkDuplicate(r models.MeterReading, skipID string) error {
	for _, existing := range s.readings {
		if existing.ID == skipID || existing.MeterID != r.MeterID {
			continue
		}
		if existing.DateKey() != r.DateKey() {
			continue
		}
		if math.Abs(existing.Reading-r.Reading) <= duplicateTolerance {
			return &DuplicateReadingError{
				MeterID: r.MeterID,
				Date:    r.Date,
				Reading: existing.Reading,
			}
		}
	}
	return nil
}

// ReadingPatch carries the fields an update may change; nil fields are left
// untouched
type ReadingPatch struct {
	Reading *float64
	Date    *time.Time
	Notes   *string
	Type    *models.ReadingType
}

// Update applies a patch to the reading with the given id and bumps its
// UpdatedAt timestamp. A patch that would land the reading on another
// reading's date within the duplicate tolerance is rejected, same as Add.
func (s *Store) Update(id string, patch ReadingPatch) (models.MeterReading, error) {
	for i := range s.readings {
		if s.readings[i].ID != id {
			continue
		}

		patched := s.readings[i]
		if patch.Reading != nil {
			patched.Reading = *patch.Reading
		}
		if patch.Date != nil {
			patched.Date = *patch.Date
		}
		if patch.Notes != nil {
			patched.Notes = *patch.Notes
		}
		if patch.Type != nil {
			patched.Type = *patch.Type
		}

		if err := s.checkDuplicate(patched, id); err != nil {
			return models.MeterReading{}, err
		}

		patched.UpdatedAt = time.Now().UTC()
		s.readings[i] = patched
		s.sort()
		return patched, nil
	}
	return models.MeterReading{}, &NotFoundError{ID: id}
}

// Delete removes the reading with the given id
func (s *Store) Delete(id string) error {
	for i := range s.readings {
		if s.readings[i].ID == id {
			s.readings = append(s.readings[:i], s.readings[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// SetFirstReading marks the target as the move-in baseline and unsets the
// flag on every other reading. Both sides happen together: if the target is
// missing, nothing changes.
func (s *Store) SetFirstReading(id string) (models.MeterReading, error) {
	target := -1
	for i := range s.readings {
		if s.readings[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return models.MeterReading{}, &NotFoundError{ID: id}
	}

	now := time.Now().UTC()
	for i := range s.readings {
		was := s.readings[i].IsFirstReading
		s.readings[i].IsFirstReading = i == target
		if was != s.readings[i].IsFirstReading {
			s.readings[i].UpdatedAt = now
		}
	}
	return s.readings[target], nil
}

// RemoveEstimatedByDate removes every estimated reading on the given
// calendar date and returns them. Used when a real reading supersedes an
// estimate; returning the removed readings lets the caller restore them if
// the superseding mutation fails.
func (s *Store) RemoveEstimatedByDate(meterID string, date time.Time) []models.MeterReading {
	key := date.Format("2006-01-02")
	kept := s.readings[:0]
	var removed []models.MeterReading
	for _, r := range s.readings {
		if r.MeterID == meterID && r.Type == models.ReadingEstimated && r.DateKey() == key {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	s.readings = kept
	return removed
}

// RemoveEstimatedByID removes a single estimated reading. A manual or
// imported reading is refused with NotEstimatedError so real data cannot be
// deleted through the cleanup path.
func (s *Store) RemoveEstimatedByID(id string) error {
	for i := range s.readings {
		if s.readings[i].ID != id {
			continue
		}
		if s.readings[i].Type != models.ReadingEstimated {
			return &NotEstimatedError{ID: id}
		}
		s.readings = append(s.readings[:i], s.readings[i+1:]...)
		return nil
	}
	return &NotFoundError{ID: id}
}

// sort orders readings by date ascending, oldest insertion first on ties
func (s *Store) sort() {
	sort.SliceStable(s.readings, func(i, j int) bool {
		return s.readings[i].Date.Before(s.readings[j].Date)
	})
}
