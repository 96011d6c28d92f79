package records

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// Store is a read-only set of participation records. It is safe for
// concurrent readers once constructed.
type Store struct {
	records     []ParticipationRecord
	decades     []int
	exhibitions int
	artists     int
}

// NewStore validates and copies records. The first record missing a required
// field fails construction with a *MissingDataError.
func NewStore(recs []ParticipationRecord) (*Store, error) {
	for i := range recs {
		if err := Validate(i, recs[i]); err != nil {
			return nil, err
		}
	}

	s := &Store{records: make([]ParticipationRecord, len(recs))}
	copy(s.records, recs)

	decades := make(map[int]struct{})
	exhibitions := make(map[string]struct{})
	artists := make(map[string]struct{})
	for _, r := range s.records {
		decades[r.Decade()] = struct{}{}
		exhibitions[r.ExhibitionID] = struct{}{}
		artists[r.ArtistID] = struct{}{}
	}
	s.decades = make([]int, 0, len(decades))
	for d := range decades {
		s.decades = append(s.decades, d)
	}
	sort.Ints(s.decades)
	s.exhibitions = len(exhibitions)
	s.artists = len(artists)

	return s, nil
}

// FromExhibitions builds a store from a mapping of exhibition ID to its
// participants. Exhibitions are visited in sorted ID order so the resulting
// record order is stable.
func FromExhibitions(exhibitions map[string][]Participant) (*Store, error) {
	ids := make([]string, 0, len(exhibitions))
	for id := range exhibitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	recs := make([]ParticipationRecord, 0, len(exhibitions))
	for _, id := range ids {
		for _, p := range exhibitions[id] {
			recs = append(recs, ParticipationRecord{
				ExhibitionID: id,
				ArtistID:     p.ArtistID,
				Nationality:  p.Nationality,
				Gender:       p.Gender,
				EventDate:    p.EventDate,
			})
		}
	}
	return NewStore(recs)
}

// Validate checks a single record and returns a *MissingDataError naming the
// first missing required field.
func Validate(index int, r ParticipationRecord) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return &MissingDataError{
			Index:  index,
			Field:  validationErrors[0].Field(),
			Record: r,
		}
	}
	return fmt.Errorf("validate record %d: %w", index, err)
}

// Records returns a copy of all records in input order
func (s *Store) Records() []ParticipationRecord {
	out := make([]ParticipationRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// Decades returns the distinct decades present, ascending
func (s *Store) Decades() []int {
	out := make([]int, len(s.decades))
	copy(out, s.decades)
	return out
}

// ForDecade returns the records whose event date falls in decade, in input order.
func (s *Store) ForDecade(decade int) []ParticipationRecord {
	out := make([]ParticipationRecord, 0)
	for _, r := range s.records {
		if r.Decade() == decade {
			out = append(out, r)
		}
	}
	return out
}

// ExhibitionCount returns the number of distinct exhibitions
func (s *Store) ExhibitionCount() int {
	return s.exhibitions
}

// ArtistCount returns the number of distinct artists
func (s *Store) ArtistCount() int {
	return s.artists
}

