package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayout is the layout used when ReadCSV is given an empty one.
const DefaultDateLayout = "2006-01-02"

// Column names accepted in the CSV header (case-insensitive).
var csvColumns = []string{"exhibition_id", "artist", "nationality", "gender", "date"}

// ReadCSV reads already-cleaned participation records. The first row must be
// a header naming the columns exhibition_id, artist, nationality, gender and
// date in any order. Dates use layout, or a bare four-digit year.
func ReadCSV(r io.Reader, layout string) ([]ParticipationRecord, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("read csv header: missing column %q", col)
		}
	}

	recs := make([]ParticipationRecord, 0)
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		date, err := parseDate(row[pos["date"]], layout)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		recs = append(recs, ParticipationRecord{
			ExhibitionID: strings.TrimSpace(row[pos["exhibition_id"]]),
			ArtistID:     strings.TrimSpace(row[pos["artist"]]),
			Nationality:  strings.TrimSpace(row[pos["nationality"]]),
			Gender:       strings.TrimSpace(row[pos["gender"]]),
			EventDate:    date,
		})
	}

	return recs, nil
}

// parseDate returns the zero time for an empty cell so the store reports the
// record as missing its date.
func parseDate(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
