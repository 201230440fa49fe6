package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/w3labs/sportsync/internal/connectors/espn"
	"github.com/w3labs/sportsync/internal/core/domain"
)

// Scoreboard is a day's fixtures split by lifecycle state. Live comes
// first, then upcoming, then finished, preserving API order within each
// bucket.
type Scoreboard struct {
	Live     []espn.Event
	Upcoming []espn.Event
	Finished []espn.Event
}

// Events returns all fixtures in display order.
func (s Scoreboard) Events() []espn.Event {
	out := make([]espn.Event, 0, len(s.Live)+len(s.Upcoming)+len(s.Finished))
	out = append(out, s.Live...)
	out = append(out, s.Upcoming...)
	out = append(out, s.Finished...)
	return out
}

// TableRow is one team's standings line with the headline stats pulled
// out of the raw stat list.
type TableRow struct {
	Team              espn.Team
	Points            string
	GamesPlayed       string
	Wins              string
	PointDifferential string
}

// Table is one standings table, named when the competition is grouped.
type Table struct {
	Name string
	Rows []TableRow
}

// Feeds serves cache-fronted views of the remote stats API. Every fetch
// goes through the TTL cache, so repeated reads within a TTL window cost
// one upstream request.
type Feeds struct {
	cache *Cache
	api   *espn.Client

	mu       sync.RWMutex
	settings domain.Settings
}

// NewFeeds creates the feed service.
func NewFeeds(cache *Cache, api *espn.Client, settings domain.Settings) *Feeds {
	return &Feeds{
		cache:    cache,
		api:      api,
		settings: settings.Normalize(),
	}
}

// ApplySettings swaps in freshly loaded settings, normalized the same
// way the constructor does. Safe to call while reads are in flight; the
// config watcher uses this on file change.
func (f *Feeds) ApplySettings(settings domain.Settings) {
	f.mu.Lock()
	f.settings = settings.Normalize()
	f.mu.Unlock()
}

func (f *Feeds) currentSettings() domain.Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings
}

// Scoreboard returns the fixtures for a league. dates is optional, in
// YYYYMMDD form; empty means the API's current window.
func (f *Feeds) Scoreboard(ctx context.Context, sport, league, dates string) (Scoreboard, error) {
	key := fmt.Sprintf("scoreboard:%s:%s:%s", sport, league, dates)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().LiveTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.Scoreboard(ctx, sport, league, dates)
	})
	if err != nil {
		return Scoreboard{}, err
	}

	sb, err := espn.ParseScoreboard(data)
	if err != nil {
		return Scoreboard{}, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}

	var out Scoreboard
	for _, event := range sb.Events {
		switch event.Status.Type.State {
		case espn.StateIn:
			out.Live = append(out.Live, event)
		case espn.StatePost:
			out.Finished = append(out.Finished, event)
		default:
			out.Upcoming = append(out.Upcoming, event)
		}
	}
	return out, nil
}

// calendarScoreboard fetches the league's undated scoreboard, whose
// response carries the season calendar and the current week, from the
// slow-moving calendar cache.
func (f *Feeds) calendarScoreboard(ctx context.Context, sport, league string) (espn.ScoreboardResponse, error) {
	key := fmt.Sprintf("calendar:%s:%s", sport, league)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().SlowTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.Scoreboard(ctx, sport, league, "")
	})
	if err != nil {
		return espn.ScoreboardResponse{}, err
	}

	sb, err := espn.ParseScoreboard(data)
	if err != nil {
		return espn.ScoreboardResponse{}, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	return sb, nil
}

// Rounds returns the resolved regular-season rounds of a league.
func (f *Feeds) Rounds(ctx context.Context, sport, league string) ([]domain.Round, error) {
	sb, err := f.calendarScoreboard(ctx, sport, league)
	if err != nil {
		return nil, err
	}
	return domain.ResolveRounds(espn.RegularSeasonCalendar(sb)), nil
}

// CurrentRound resolves the league's rounds and selects the active one.
// hint is the round number the caller believes is current; zero defers
// to the source's own week number. ok is false when the league has no
// resolvable rounds.
func (f *Feeds) CurrentRound(ctx context.Context, sport, league string, hint int) (domain.Round, bool, error) {
	sb, err := f.calendarScoreboard(ctx, sport, league)
	if err != nil {
		return domain.Round{}, false, err
	}
	if hint == 0 {
		hint = sb.Week.Number
	}
	round, ok := domain.SelectRound(domain.ResolveRounds(espn.RegularSeasonCalendar(sb)), hint)
	return round, ok, nil
}

// Standings returns the league tables. date is optional, in YYYYMMDD
// form; empty means the current table.
func (f *Feeds) Standings(ctx context.Context, sport, league, date string) ([]Table, error) {
	key := fmt.Sprintf("standings:%s:%s:%s", sport, league, date)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().LiveTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.Standings(ctx, sport, league, date)
	})
	if err != nil {
		return nil, err
	}

	resp, err := espn.ParseStandings(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}

	groups := espn.Tables(resp)
	tables := make([]Table, 0, len(groups))
	for _, group := range groups {
		table := Table{Name: group.Name}
		for _, entry := range group.Standings.Entries {
			table.Rows = append(table.Rows, TableRow{
				Team:              entry.Team,
				Points:            statDisplay(entry, "points"),
				GamesPlayed:       statDisplay(entry, "gamesPlayed"),
				Wins:              statDisplay(entry, "wins"),
				PointDifferential: statDisplay(entry, "pointDifferential"),
			})
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// RoundStandings returns the table as of the selected round, querying
// the standings snapshot at the round's end date so fixtures of a later
// round cannot leak in. hint zero defers to the source's week number.
// Leagues without resolvable rounds fall back to the current table and
// a zero round.
func (f *Feeds) RoundStandings(ctx context.Context, sport, league string, hint int) ([]Table, domain.Round, error) {
	round, ok, err := f.CurrentRound(ctx, sport, league, hint)
	if err != nil {
		return nil, domain.Round{}, err
	}
	if !ok {
		tables, err := f.Standings(ctx, sport, league, "")
		return tables, domain.Round{}, err
	}

	tables, err := f.Standings(ctx, sport, league, round.EndDate.Format(espn.DateLayout))
	return tables, round, err
}

// Teams returns the league's team list.
func (f *Feeds) Teams(ctx context.Context, sport, league string) ([]espn.Team, error) {
	key := fmt.Sprintf("teams:%s:%s", sport, league)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().SlowTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.Teams(ctx, sport, league)
	})
	if err != nil {
		return nil, err
	}

	resp, err := espn.ParseTeams(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	return resp.All(), nil
}

// Roster returns one team's squad.
func (f *Feeds) Roster(ctx context.Context, sport, league, teamID string) ([]espn.Athlete, error) {
	key := fmt.Sprintf("roster:%s:%s:%s", sport, league, teamID)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().SlowTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.Roster(ctx, sport, league, teamID)
	})
	if err != nil {
		return nil, err
	}

	resp, err := espn.ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	return resp.Athletes, nil
}

// News returns the league's news feed.
func (f *Feeds) News(ctx context.Context, sport, league string) ([]espn.Article, error) {
	key := fmt.Sprintf("news:%s:%s", sport, league)
	data, err := f.cache.FetchOrLoad(ctx, key, f.currentSettings().NewsTTL, func(ctx context.Context) ([]byte, error) {
		return f.api.News(ctx, sport, league)
	})
	if err != nil {
		return nil, err
	}

	resp, err := espn.ParseNews(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	return resp.Articles, nil
}

func statDisplay(entry espn.StandingsEntry, name string) string {
	if stat, ok := entry.Stat(name); ok {
		return stat.DisplayValue
	}
	return ""
}
