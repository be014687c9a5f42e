package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jgoulah/meterlog/pkg/models"
)

// ParseStatement reads a CSV statement export of cumulative readings and
// returns them as IMPORTED readings. Expected columns: date (YYYY-MM-DD),
// reading (kWh), and an optional notes column. A header row is detected and
// skipped. Rows are returned in file order; the repository re-sorts and
// applies duplicate detection when they are added.
func ParseStatement(r io.Reader, meterID string) ([]models.MeterReading, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	now := time.Now().UTC()
	var readings []models.MeterReading
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected at least date and reading columns", line)
		}

		dateStr := strings.TrimSpace(record[0])
		valueStr := strings.TrimSpace(record[1])

		// Skip a header row on the first line
		if line == 1 {
			if _, err := strconv.ParseFloat(valueStr, 64); err != nil {
				continue
			}
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing date %q: %w", line, dateStr, err)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing reading %q: %w", line, valueStr, err)
		}
		if value < 0 {
			return nil, fmt.Errorf("line %d: reading must not be negative", line)
		}

		notes := ""
		if len(record) > 2 {
			notes = strings.TrimSpace(record[2])
		}

		readings = append(readings, models.MeterReading{
			ID:        uuid.New().String(),
			MeterID:   meterID,
			Reading:   value,
			Date:      date,
			Type:      models.ReadingImported,
			Notes:     notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return readings, nil
}
