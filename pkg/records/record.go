// Package records holds cleaned exhibition-participation records and the pure
// decade derivation used to slice them.
package records

import (
	"time"
)

// ParticipationRecord is one artist's participation in one exhibition.
// ExhibitionID, ArtistID and EventDate are required; Gender and Nationality
// may be empty and fall back on the graph side.
type ParticipationRecord struct {
	ExhibitionID string    `json:"exhibition_id" validate:"required"`
	ArtistID     string    `json:"artist_id" validate:"required"`
	Nationality  string    `json:"nationality,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	EventDate    time.Time `json:"event_date" validate:"required"`
}

// Participant is an artist entry within one exhibition, the input shape
// handed over by the ingestion side.
type Participant struct {
	ArtistID    string
	Nationality string
	Gender      string
	EventDate   time.Time
}

// Decade returns the decade the record's event date falls in.
func (r ParticipationRecord) Decade() int {
	return DecadeOf(r.EventDate)
}

// DecadeOf returns floor(year/10)*10 for t. Years before 0 floor downwards,
// so -5 maps to -10.
func DecadeOf(t time.Time) int {
	year := t.Year()
	d := year / 10
	if year%10 != 0 && year < 0 {
		d--
	}
	return d * 10
}
