package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveRounds_GroupsByNumberAndKeepsLatestDate(t *testing.T) {
	entries := []CalendarEntry{
		NewCalendarEntry("Round 3", "2024-01-01"),
		NewCalendarEntry("Round 3", "2024-01-03"),
		NewCalendarEntry("Round 4", "2024-01-10"),
	}

	rounds := ResolveRounds(entries)

	require.Len(t, rounds, 2)
	assert.Equal(t, Round{Number: 3, EndDate: date("2024-01-03")}, rounds[0])
	assert.Equal(t, Round{Number: 4, EndDate: date("2024-01-10")}, rounds[1])
}

func TestResolveRounds_DiscardsEntriesWithoutInteger(t *testing.T) {
	entries := []CalendarEntry{
		NewCalendarEntry("Playoffs", "2024-05-01"),
		NewCalendarEntry("Matchweek 12", "2024-03-02"),
	}

	rounds := ResolveRounds(entries)

	require.Len(t, rounds, 1)
	assert.Equal(t, 12, rounds[0].Number)
}

func TestResolveRounds_DiscardsEntriesWithUnparsableDate(t *testing.T) {
	entries := []CalendarEntry{
		NewCalendarEntry("Round 1", "not-a-date"),
		NewCalendarEntry("Round 2", "2024-08-20"),
	}

	rounds := ResolveRounds(entries)

	require.Len(t, rounds, 1)
	assert.Equal(t, 2, rounds[0].Number)
}

func TestResolveRounds_SortedAscending(t *testing.T) {
	entries := []CalendarEntry{
		NewCalendarEntry("Round 10", "2024-04-01"),
		NewCalendarEntry("Round 2", "2024-01-15"),
		NewCalendarEntry("Round 7", "2024-03-01"),
	}

	rounds := ResolveRounds(entries)

	require.Len(t, rounds, 3)
	assert.Equal(t, []int{2, 7, 10}, []int{rounds[0].Number, rounds[1].Number, rounds[2].Number})
}

func TestResolveRounds_EmptyInput(t *testing.T) {
	assert.Empty(t, ResolveRounds(nil))
	assert.Empty(t, ResolveRounds([]CalendarEntry{}))
}

func TestResolveRounds_ParsesRFC3339Dates(t *testing.T) {
	entries := []CalendarEntry{
		NewCalendarEntry("Round 5", "2024-02-10T19:30:00Z"),
	}

	rounds := ResolveRounds(entries)

	require.Len(t, rounds, 1)
	assert.Equal(t, 2024, rounds[0].EndDate.Year())
}

func TestSelectRound_UsesHintWhenPresent(t *testing.T) {
	rounds := []Round{
		{Number: 3, EndDate: date("2024-01-03")},
		{Number: 4, EndDate: date("2024-01-10")},
	}

	selected, ok := SelectRound(rounds, 3)

	require.True(t, ok)
	assert.Equal(t, 3, selected.Number)
}

func TestSelectRound_FallsBackToGreatestNumber(t *testing.T) {
	rounds := []Round{
		{Number: 3, EndDate: date("2024-01-03")},
		{Number: 4, EndDate: date("2024-01-10")},
	}

	selected, ok := SelectRound(rounds, 9)

	require.True(t, ok)
	assert.Equal(t, 4, selected.Number)
}

func TestSelectRound_EmptySet(t *testing.T) {
	_, ok := SelectRound(nil, 1)
	assert.False(t, ok)
}
