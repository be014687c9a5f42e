package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/meterlog/pkg/models"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meter_readings (
		id TEXT PRIMARY KEY,
		meter_id TEXT NOT NULL,
		reading REAL NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		notes TEXT,
		is_first_reading INTEGER DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		published INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_readings_meter ON meter_readings(meter_id);
	CREATE INDEX IF NOT EXISTS idx_readings_date ON meter_readings(date);
	CREATE INDEX IF NOT EXISTS idx_readings_type ON meter_readings(type);
	CREATE INDEX IF NOT EXISTS idx_readings_published ON meter_readings(published);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// LoadAll retrieves every reading for a meter in date-ascending order, for
// seeding the in-memory repository at session start
func (db *DB) LoadAll(meterID string) ([]models.MeterReading, error) {
	query := `
	SELECT id, meter_id, reading, date, type, notes, is_first_reading, created_at, updated_at
	FROM meter_readings
	WHERE meter_id = ?
	ORDER BY date ASC
	`

	rows, err := db.conn.Query(query, meterID)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var results []models.MeterReading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// Insert stores a new reading
func (db *DB) Insert(r models.MeterReading) error {
	query := `
	INSERT INTO meter_readings (id, meter_id, reading, date, type, notes, is_first_reading, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query,
		r.ID, r.MeterID, r.Reading, r.DateKey(), string(r.Type), r.Notes,
		boolToInt(r.IsFirstReading),
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}

	return nil
}

// Update rewrites a stored reading
func (db *DB) Update(r models.MeterReading) error {
	query := `
	UPDATE meter_readings
	SET reading = ?, date = ?, type = ?, notes = ?, is_first_reading = ?, updated_at = ?
	WHERE id = ?
	`

	_, err := db.conn.Exec(query,
		r.Reading, r.DateKey(), string(r.Type), r.Notes,
		boolToInt(r.IsFirstReading),
		r.UpdatedAt.UTC().Format(time.RFC3339),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reading: %w", err)
	}

	return nil
}

// SaveAll replaces a meter's stored readings with the repository contents.
// Run after mutations that touch multiple rows at once, such as toggling
// the first-reading flag or a gap-fill batch.
func (db *DB) SaveAll(meterID string, readings []models.MeterReading) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The published flag lives only in this table, so it has to survive
	// the delete-and-reinsert
	published := make(map[string]bool)
	rows, err := tx.Query(`SELECT id FROM meter_readings WHERE meter_id = ? AND published = 1`, meterID)
	if err != nil {
		return fmt.Errorf("reading published flags: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning published id: %w", err)
		}
		published[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("reading published flags: %w", err)
	}
	rows.Close()

	if _, err := tx.Exec(`DELETE FROM meter_readings WHERE meter_id = ?`, meterID); err != nil {
		return fmt.Errorf("clearing readings: %w", err)
	}

	insert := `
	INSERT INTO meter_readings (id, meter_id, reading, date, type, notes, is_first_reading, created_at, updated_at, published)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, r := range readings {
		if r.MeterID != meterID {
			continue
		}
		if _, err := tx.Exec(insert,
			r.ID, r.MeterID, r.Reading, r.DateKey(), string(r.Type), r.Notes,
			boolToInt(r.IsFirstReading),
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.UpdatedAt.UTC().Format(time.RFC3339),
			boolToInt(published[r.ID]),
		); err != nil {
			return fmt.Errorf("inserting reading: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a stored reading
func (db *DB) Delete(id string) error {
	_, err := db.conn.Exec(`DELETE FROM meter_readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reading: %w", err)
	}
	return nil
}

// ListUnpublished retrieves readings not yet published to the live feed,
// ordered by date
func (db *DB) ListUnpublished(meterID string) ([]models.MeterReading, error) {
	query := `
	SELECT id, meter_id, reading, date, type, notes, is_first_reading, created_at, updated_at
	FROM meter_readings
	WHERE meter_id = ? AND published = 0
	ORDER BY date ASC
	`

	rows, err := db.conn.Query(query, meterID)
	if err != nil {
		return nil, fmt.Errorf("querying unpublished readings: %w", err)
	}
	defer rows.Close()

	var results []models.MeterReading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// MarkPublished marks a reading as published
func (db *DB) MarkPublished(id string) error {
	_, err := db.conn.Exec(`UPDATE meter_readings SET published = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking reading as published: %w", err)
	}
	return nil
}

func scanReading(rows *sql.Rows) (models.MeterReading, error) {
	var r models.MeterReading
	var dateStr, typeStr, createdStr, updatedStr string
	var notes sql.NullString
	var isFirst int

	if err := rows.Scan(&r.ID, &r.MeterID, &r.Reading, &dateStr, &typeStr, &notes, &isFirst, &createdStr, &updatedStr); err != nil {
		return models.MeterReading{}, fmt.Errorf("scanning row: %w", err)
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return models.MeterReading{}, fmt.Errorf("parsing date: %w", err)
	}
	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return models.MeterReading{}, fmt.Errorf("parsing created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return models.MeterReading{}, fmt.Errorf("parsing updated_at: %w", err)
	}

	r.Date = date
	r.Type = models.ReadingType(typeStr)
	r.IsFirstReading = isFirst != 0
	r.CreatedAt = created
	r.UpdatedAt = updated
	if notes.Valid {
		r.Notes = notes.String
	}

	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
