package domain

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// CalendarEntry is one dated fixture label from a season calendar,
// e.g. {Label: "Round 3", Value: "2024-01-03T00:00Z"}.
type CalendarEntry struct {
	// Label contains the round number somewhere in its text.
	Label string

	// Value is the fixture date string as delivered by the stats API.
	Value string

	parsed time.Time
	hasDat bool
}

// NewCalendarEntry builds an entry with its date already parsed.
// Connectors use this so the resolver never re-parses dates.
func NewCalendarEntry(label, value string) CalendarEntry {
	e := CalendarEntry{Label: label, Value: value}
	// The stats API emits minute-precision timestamps; full RFC3339 and
	// bare dates also appear in older payloads.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			e.parsed = t
			e.hasDat = true
			break
		}
	}
	return e
}

// Date returns the parsed fixture date and whether parsing succeeded.
func (e CalendarEntry) Date() (time.Time, bool) {
	return e.parsed, e.hasDat
}

// Round is a numbered grouping of a competition's fixtures.
// Derived and read-only once computed.
type Round struct {
	// Number orders the round within the season.
	Number int

	// EndDate is the latest fixture date among the round's entries.
	EndDate time.Time
}

var firstInteger = regexp.MustCompile(`\d+`)

// ResolveRounds transforms a flat calendar into the ordered round set.
//
// Entries whose label carries no integer, or whose date cannot be parsed,
// are discarded. Entries sharing a round number are grouped and the group's
// end date is its latest fixture date. The result is sorted ascending by
// round number; an empty input yields an empty set.
func ResolveRounds(entries []CalendarEntry) []Round {
	byNumber := make(map[int]time.Time)
	for _, entry := range entries {
		match := firstInteger.FindString(entry.Label)
		if match == "" {
			continue
		}
		number, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		date, ok := entry.Date()
		if !ok {
			continue
		}
		if end, seen := byNumber[number]; !seen || date.After(end) {
			byNumber[number] = date
		}
	}

	rounds := make([]Round, 0, len(byNumber))
	for number, end := range byNumber {
		rounds = append(rounds, Round{Number: number, EndDate: end})
	}
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].Number < rounds[j].Number
	})
	return rounds
}

// SelectRound picks the active round from a resolved set.
//
// If the remote source's hint names a round present in the set, that round
// wins. Otherwise the round with the greatest number is selected, as the
// most recently completed or ongoing one. The second return is false only
// for an empty set.
func SelectRound(rounds []Round, hint int) (Round, bool) {
	if len(rounds) == 0 {
		return Round{}, false
	}
	for _, r := range rounds {
		if r.Number == hint {
			return r, true
		}
	}
	return rounds[len(rounds)-1], true
}
