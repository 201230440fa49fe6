package espn

import (
	"github.com/w3labs/sportsync/internal/core/domain"
)

// RegularSeasonCalendar extracts the regular-season round entries from a
// scoreboard payload.
//
// Leagues that nest rounds report them under the period whose type is
// "2" (older payloads put the marker in value); leagues with a flat
// calendar list the rounds at the top level. An entry's date is its end
// date, falling back to its start date when the end is absent.
func RegularSeasonCalendar(sb ScoreboardResponse) []domain.CalendarEntry {
	if len(sb.Leagues) == 0 {
		return nil
	}

	var entries []domain.CalendarEntry
	calendar := sb.Leagues[0].Calendar

	for _, period := range calendar {
		if len(period.Entries) > 0 {
			if period.Type != regularSeasonType && period.Value != regularSeasonType {
				continue
			}
			for _, entry := range period.Entries {
				entries = append(entries, calendarEntry(entry))
			}
			continue
		}
		entries = append(entries, calendarEntry(period))
	}
	return entries
}

func calendarEntry(p CalendarPeriod) domain.CalendarEntry {
	date := p.EndDate
	if date == "" {
		date = p.StartDate
	}
	return domain.NewCalendarEntry(p.Label, date)
}

// Tables returns the standings tables of a response in display order,
// normalizing the flat single-table shape into a one-element group list.
func Tables(r StandingsResponse) []StandingsGroup {
	if len(r.Children) > 0 {
		return r.Children
	}
	if r.Standings != nil && len(r.Standings.Entries) > 0 {
		return []StandingsGroup{{
			Name:         r.Name,
			Abbreviation: r.Abbreviation,
			Standings:    *r.Standings,
		}}
	}
	return nil
}
