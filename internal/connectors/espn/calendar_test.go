package espn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3labs/sportsync/internal/core/domain"
)

const nestedCalendarScoreboard = `{
  "leagues": [{
    "id": "23",
    "abbreviation": "PL",
    "calendar": [
      {"label": "Preseason", "type": "1", "entries": [
        {"label": "Friendlies", "startDate": "2025-07-01T00:00Z", "endDate": "2025-08-01T00:00Z"}
      ]},
      {"label": "Regular Season", "type": "2", "entries": [
        {"label": "Round 1", "startDate": "2025-08-15T00:00Z", "endDate": "2025-08-18T00:00Z"},
        {"label": "Round 2", "startDate": "2025-08-22T00:00Z", "endDate": "2025-08-25T00:00Z"}
      ]}
    ]
  }],
  "events": []
}`

const legacyValueCalendarScoreboard = `{
  "leagues": [{
    "calendar": [
      {"label": "Postseason", "value": "3", "entries": [
        {"label": "Final", "startDate": "2026-05-30T00:00Z"}
      ]},
      {"label": "Regular Season", "value": "2", "entries": [
        {"label": "Round 1", "endDate": "2025-08-18T00:00Z"}
      ]}
    ]
  }],
  "events": []
}`

const flatCalendarScoreboard = `{
  "leagues": [{
    "id": "77",
    "calendar": [
      {"label": "Round 1", "startDate": "2025-08-15T00:00Z", "endDate": "2025-08-18T00:00Z"},
      {"label": "Round 2", "startDate": "2025-08-22T00:00Z"}
    ]
  }],
  "events": []
}`

func TestRegularSeasonCalendar_NestedPeriods(t *testing.T) {
	sb, err := ParseScoreboard([]byte(nestedCalendarScoreboard))
	require.NoError(t, err)

	entries := RegularSeasonCalendar(sb)
	require.Len(t, entries, 2, "preseason entries must be excluded")
	assert.Equal(t, "Round 1", entries[0].Label)
	assert.Equal(t, "Round 2", entries[1].Label)

	rounds := domain.ResolveRounds(entries)
	require.Len(t, rounds, 2)
	assert.Equal(t, 1, rounds[0].Number)
	assert.Equal(t, 2, rounds[1].Number)
}

func TestRegularSeasonCalendar_LegacyValueMarker(t *testing.T) {
	sb, err := ParseScoreboard([]byte(legacyValueCalendarScoreboard))
	require.NoError(t, err)

	entries := RegularSeasonCalendar(sb)
	require.Len(t, entries, 1)
	assert.Equal(t, "Round 1", entries[0].Label)
}

func TestRegularSeasonCalendar_FlatList(t *testing.T) {
	sb, err := ParseScoreboard([]byte(flatCalendarScoreboard))
	require.NoError(t, err)

	entries := RegularSeasonCalendar(sb)
	require.Len(t, entries, 2)

	// Second entry has no end date and falls back to its start date.
	date, ok := entries[1].Date()
	require.True(t, ok)
	assert.Equal(t, 22, date.Day())
}

func TestRegularSeasonCalendar_EmptyPayload(t *testing.T) {
	sb, err := ParseScoreboard([]byte(`{"leagues": [], "events": []}`))
	require.NoError(t, err)
	assert.Empty(t, RegularSeasonCalendar(sb))
}

const flatStandings = `{
  "name": "English Premier League",
  "abbreviation": "Prem",
  "standings": {"entries": [
    {"team": {"id": "364", "displayName": "Liverpool", "abbreviation": "LIV"},
     "stats": [
       {"name": "points", "displayValue": "84", "value": 84},
       {"name": "gamesPlayed", "displayValue": "38", "value": 38}
     ]}
  ]}
}`

const groupedStandings = `{
  "name": "UEFA Champions League",
  "children": [
    {"name": "Group A", "standings": {"entries": [
      {"team": {"id": "83", "displayName": "Bayern Munich"},
       "stats": [{"name": "points", "displayValue": "16", "value": 16}]}
    ]}},
    {"name": "Group B", "standings": {"entries": [
      {"team": {"id": "86", "displayName": "Real Madrid"},
       "stats": [{"name": "points", "displayValue": "18", "value": 18}]}
    ]}}
  ]
}`

func TestTables_FlatBecomesSingleGroup(t *testing.T) {
	resp, err := ParseStandings([]byte(flatStandings))
	require.NoError(t, err)

	tables := Tables(resp)
	require.Len(t, tables, 1)
	assert.Equal(t, "English Premier League", tables[0].Name)
	require.Len(t, tables[0].Standings.Entries, 1)

	points, ok := tables[0].Standings.Entries[0].Stat("points")
	require.True(t, ok)
	assert.Equal(t, "84", points.DisplayValue)

	_, ok = tables[0].Standings.Entries[0].Stat("pointDifferential")
	assert.False(t, ok)
}

func TestTables_GroupedKeepsGroups(t *testing.T) {
	resp, err := ParseStandings([]byte(groupedStandings))
	require.NoError(t, err)

	tables := Tables(resp)
	require.Len(t, tables, 2)
	assert.Equal(t, "Group A", tables[0].Name)
	assert.Equal(t, "Group B", tables[1].Name)
}

func TestTables_EmptyResponse(t *testing.T) {
	resp, err := ParseStandings([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, Tables(resp))
}

func TestParseScoreboard_EventShape(t *testing.T) {
	payload := `{
	  "week": {"number": 27},
	  "events": [{
	    "id": "401", "shortName": "LIV @ MCI", "date": "2026-03-14T15:00Z",
	    "status": {"type": {"state": "in", "completed": false}},
	    "competitions": [{"competitors": [
	      {"homeAway": "home", "score": "1", "team": {"abbreviation": "MCI"}},
	      {"homeAway": "away", "score": "2", "team": {"abbreviation": "LIV"}}
	    ]}]
	  }]
	}`
	sb, err := ParseScoreboard([]byte(payload))
	require.NoError(t, err)
	require.Len(t, sb.Events, 1)
	assert.Equal(t, 27, sb.Week.Number)

	event := sb.Events[0]
	assert.Equal(t, StateIn, event.Status.Type.State)

	home, ok := event.Competitions[0].Home()
	require.True(t, ok)
	assert.Equal(t, "MCI", home.Team.Abbreviation)
	assert.Equal(t, "1", home.Score)

	away, ok := event.Competitions[0].Away()
	require.True(t, ok)
	assert.Equal(t, "LIV", away.Team.Abbreviation)
}
