package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jgoulah/meterlog/internal/analytics"
	"github.com/jgoulah/meterlog/internal/estimator"
	"github.com/jgoulah/meterlog/internal/store"
	"github.com/jgoulah/meterlog/pkg/models"
)

// Snapshot is the fully-recomputed derived state: the raw consumption
// series plus its aggregations. Readers always see the snapshot produced by
// the last completed mutation, never a partial rebuild.
type Snapshot struct {
	Series  []models.ChartDataPoint
	Daily   []models.TimeSeriesData
	Weekly  []models.TimeSeriesData
	Monthly []models.TimeSeriesData
}

// Engine owns one meter's reading repository for the lifetime of a session
// and keeps the derived series in step with it. Every mutation runs to
// completion, including full recomputation, before it returns; there is no
// incremental patching of derived data.
type Engine struct {
	store    *store.Store
	meterID  string
	unitRate float64
	snap     Snapshot
}

// New creates an engine over an already-seeded store and computes the
// initial snapshot.
func New(st *store.Store, meterID string, unitRate float64) *Engine {
	e := &Engine{store: st, meterID: meterID, unitRate: unitRate}
	e.recompute()
	return e
}

// Snapshot returns the derived state as of the last completed mutation
func (e *Engine) Snapshot() Snapshot {
	return e.snap
}

// Readings returns the repository contents in canonical date order
func (e *Engine) Readings() []models.MeterReading {
	return e.store.All()
}

// Reading returns a single reading by id
func (e *Engine) Reading(id string) (models.MeterReading, error) {
	return e.store.Get(id)
}

// AddReading validates and inserts a new reading. A manual or imported
// reading supersedes any estimated readings already on its date. When first
// is set, the new reading becomes the move-in baseline and the flag is
// cleared everywhere else.
func (e *Engine) AddReading(value float64, date time.Time, typ models.ReadingType, notes string, first bool) (models.MeterReading, error) {
	if err := validate(value, date); err != nil {
		return models.MeterReading{}, err
	}

	now := time.Now().UTC()
	r := models.MeterReading{
		ID:        uuid.New().String(),
		MeterID:   e.meterID,
		Reading:   value,
		Date:      date,
		Type:      typ,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return e.insert(r, first)
}

// Fold inserts a fully-formed reading created elsewhere, such as one
// arriving over the live-update feed. It takes the same path as a local
// mutation: validation, estimate supersession, duplicate detection and
// recomputation all apply; only the id and timestamps come from the caller.
func (e *Engine) Fold(r models.MeterReading) (models.MeterReading, error) {
	if err := validate(r.Reading, r.Date); err != nil {
		return models.MeterReading{}, err
	}
	return e.insert(r, false)
}

// insert supersedes any same-date estimates, adds the reading, and
// optionally promotes it to the move-in baseline. A rejected add must leave
// the repository unchanged, so estimates pulled out up front go back in on
// failure.
func (e *Engine) insert(r models.MeterReading, first bool) (models.MeterReading, error) {
	var superseded []models.MeterReading
	if r.Type != models.ReadingEstimated {
		superseded = e.store.RemoveEstimatedByDate(r.MeterID, r.Date)
	}

	added, err := e.store.Add(r)
	if err != nil {
		for _, est := range superseded {
			if _, restoreErr := e.store.Add(est); restoreErr != nil {
				err = errors.Join(err, fmt.Errorf("restoring superseded estimate %s: %w", est.ID, restoreErr))
			}
		}
		return models.MeterReading{}, err
	}
	if first {
		added, err = e.store.SetFirstReading(added.ID)
		if err != nil {
			return models.MeterReading{}, err
		}
	}

	e.recompute()
	return added, nil
}

func validate(value float64, date time.Time) error {
	if value < 0 {
		return &ValidationError{Field: "reading", Message: "must not be negative"}
	}
	if models.Midnight(date).After(models.Midnight(time.Now().UTC())) {
		return &ValidationError{Field: "date", Message: "must not be in the future"}
	}
	return nil
}

// UpdateReading patches an existing reading
func (e *Engine) UpdateReading(id string, patch store.ReadingPatch) (models.MeterReading, error) {
	updated, err := e.store.Update(id, patch)
	if err != nil {
		return models.MeterReading{}, err
	}
	e.recompute()
	return updated, nil
}

// DeleteReading removes a reading by id
func (e *Engine) DeleteReading(id string) error {
	if err := e.store.Delete(id); err != nil {
		return err
	}
	e.recompute()
	return nil
}

// SetFirstReading designates the move-in baseline
func (e *Engine) SetFirstReading(id string) (models.MeterReading, error) {
	r, err := e.store.SetFirstReading(id)
	if err != nil {
		return models.MeterReading{}, err
	}
	e.recompute()
	return r, nil
}

// RemoveEstimatedByDate removes all estimated readings on a calendar date
func (e *Engine) RemoveEstimatedByDate(date time.Time) int {
	removed := e.store.RemoveEstimatedByDate(e.meterID, date)
	if len(removed) > 0 {
		e.recompute()
	}
	return len(removed)
}

// RemoveEstimatedByID removes a single estimated reading
func (e *Engine) RemoveEstimatedByID(id string) error {
	if err := e.store.RemoveEstimatedByID(id); err != nil {
		return err
	}
	e.recompute()
	return nil
}

// FillGaps synthesizes estimated readings between the last manual reading
// and today, appends them in one batch and recomputes. Returns the readings
// that were created; an empty result means there was nothing to estimate.
func (e *Engine) FillGaps(today time.Time) ([]models.MeterReading, error) {
	synthesized := estimator.FillGaps(e.store.All(), e.meterID, today)
	if len(synthesized) == 0 {
		return nil, nil
	}

	added := make([]models.MeterReading, 0, len(synthesized))
	for _, r := range synthesized {
		a, err := e.store.Add(r)
		if err != nil {
			e.recompute()
			return added, err
		}
		added = append(added, a)
	}

	e.recompute()
	return added, nil
}

// recompute rebuilds the whole derived snapshot from the repository.
func (e *Engine) recompute() {
	var mine []models.MeterReading
	for _, r := range e.store.All() {
		if r.MeterID == e.meterID {
			mine = append(mine, r)
		}
	}

	series := analytics.BuildSeries(mine, e.unitRate)
	e.snap = Snapshot{
		Series:  series,
		Daily:   analytics.Aggregate(series, analytics.Daily),
		Weekly:  analytics.Aggregate(series, analytics.Weekly),
		Monthly: analytics.Aggregate(series, analytics.Monthly),
	}
}
