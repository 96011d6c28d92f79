package records

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func year(y int) time.Time {
	return time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestDecadeOf(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{1935, 1930},
		{1930, 1930},
		{1939, 1930},
		{2000, 2000},
		{9, 0},
		{-5, -10},
		{-10, -10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DecadeOf(year(tt.year)), "year %d", tt.year)
	}
}

func TestNewStore_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		rec   ParticipationRecord
		field string
	}{
		{"missing exhibition", ParticipationRecord{ArtistID: "A", EventDate: year(1935)}, "ExhibitionID"},
		{"missing artist", ParticipationRecord{ExhibitionID: "E1", EventDate: year(1935)}, "ArtistID"},
		{"missing date", ParticipationRecord{ExhibitionID: "E1", ArtistID: "A"}, "EventDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := []ParticipationRecord{
				{ExhibitionID: "E0", ArtistID: "Z", EventDate: year(1920)},
				tt.rec,
			}
			_, err := NewStore(recs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingData))

			var mde *MissingDataError
			require.True(t, errors.As(err, &mde))
			assert.Equal(t, 1, mde.Index)
			assert.Equal(t, tt.field, mde.Field)
		})
	}
}

func TestNewStore_AllowsMissingAttributes(t *testing.T) {
	s, err := NewStore([]ParticipationRecord{
		{ExhibitionID: "E1", ArtistID: "A", EventDate: year(1935)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStore_DecadesAndFilter(t *testing.T) {
	recs := []ParticipationRecord{
		{ExhibitionID: "E3", ArtistID: "C", EventDate: year(1951)},
		{ExhibitionID: "E1", ArtistID: "A", EventDate: year(1935)},
		{ExhibitionID: "E2", ArtistID: "B", EventDate: year(1938)},
		{ExhibitionID: "E2", ArtistID: "A", EventDate: year(1938)},
	}
	s, err := NewStore(recs)
	require.NoError(t, err)

	assert.Equal(t, []int{1930, 1950}, s.Decades())
	assert.Len(t, s.ForDecade(1930), 3)
	assert.Len(t, s.ForDecade(1950), 1)
	assert.Empty(t, s.ForDecade(1940))
	assert.Equal(t, 3, s.ExhibitionCount())
	assert.Equal(t, 3, s.ArtistCount())

	// Store keeps its own copy
	recs[0].ArtistID = "mutated"
	assert.Equal(t, "C", s.Records()[0].ArtistID)
}

func TestFromExhibitions(t *testing.T) {
	s, err := FromExhibitions(map[string][]Participant{
		"E2": {{ArtistID: "B", EventDate: year(1935)}, {ArtistID: "C", EventDate: year(1935)}},
		"E1": {{ArtistID: "A", EventDate: year(1935)}},
	})
	require.NoError(t, err)

	got := s.Records()
	require.Len(t, got, 3)
	assert.Equal(t, "E1", got[0].ExhibitionID)
	assert.Equal(t, "E2", got[1].ExhibitionID)

	assert.Equal(t, "B", got[1].ArtistID)
	assert.Equal(t, 2, s.ExhibitionCount())
	assert.Equal(t, 3, s.ArtistCount())

	_, err = FromExhibitions(map[string][]Participant{"E1": {{ArtistID: ""}}})
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"date,exhibition_id,artist,gender,nationality",
		"1935-03-01,E1,Pablo Picasso,Male,Spanish",
		"1935,E1,Frida Kahlo,Female,Mexican",
		",E2,Nobody,,",
	}, "\n")

	recs, err := ReadCSV(strings.NewReader(input), "")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Pablo Picasso", recs[0].ArtistID)
	assert.Equal(t, 1935, recs[1].EventDate.Year())
	assert.True(t, recs[2].EventDate.IsZero())

	// The zero date surfaces as missing data once the store validates it
	_, err = NewStore(recs)
	var mde *MissingDataError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, "EventDate", mde.Field)
}

func TestReadCSV_BadInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "")
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("exhibition_id,artist\nE1,A\n"), "")
	assert.ErrorContains(t, err, "missing column")

	_, err = ReadCSV(strings.NewReader("exhibition_id,artist,nationality,gender,date\nE1,A,,,03/01/1935\n"), "")
	assert.ErrorContains(t, err, "parse date")
}
