package espn

import (
	"encoding/json"
	"fmt"
)

// Event states as reported by status.type.state.
const (
	StatePre  = "pre"
	StateIn   = "in"
	StatePost = "post"
)

// regularSeasonType marks the regular-season calendar period in its
// type field; older payloads carry the same marker in value.
const regularSeasonType = "2"

// ScoreboardResponse is the scoreboard endpoint payload.
type ScoreboardResponse struct {
	Leagues []LeagueInfo `json:"leagues"`
	Week    Week         `json:"week"`
	Events  []Event      `json:"events"`
}

// Week is the remote source's notion of the current round. Zero when the
// response carries no week object.
type Week struct {
	Number int `json:"number"`
}

// LeagueInfo describes the league a scoreboard belongs to, including its
// season calendar when the request carried no explicit date.
type LeagueInfo struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Abbreviation string           `json:"abbreviation"`
	Calendar     []CalendarPeriod `json:"calendar"`
}

// CalendarPeriod is one calendar item. Some leagues nest rounds inside a
// season period's entries; others list rounds flat at the top level.
type CalendarPeriod struct {
	Label     string           `json:"label"`
	Type      string           `json:"type"`
	Value     string           `json:"value"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Entries   []CalendarPeriod `json:"entries"`
}

// Event is one fixture on the scoreboard.
type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Date         string        `json:"date"`
	Status       EventStatus   `json:"status"`
	Competitions []Competition `json:"competitions"`
}

// EventStatus wraps the status type object.
type EventStatus struct {
	Type StatusType `json:"type"`
}

// StatusType carries the event's lifecycle state.
type StatusType struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
}

// Competition holds the two competitors of a fixture.
type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []Competitor `json:"competitors"`
}

// Competitor is one side of a fixture.
type Competitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Winner   bool   `json:"winner"`
	Team     Team   `json:"team"`
}

// Team identifies a club.
type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ShortName    string `json:"shortDisplayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// Home returns the home competitor of a competition.
func (c Competition) Home() (Competitor, bool) {
	return c.side("home")
}

// Away returns the away competitor of a competition.
func (c Competition) Away() (Competitor, bool) {
	return c.side("away")
}

func (c Competition) side(homeAway string) (Competitor, bool) {
	for _, competitor := range c.Competitors {
		if competitor.HomeAway == homeAway {
			return competitor, true
		}
	}
	return Competitor{}, false
}

// StandingsResponse is the standings endpoint payload. Small leagues put
// entries at the top level; competitions with groups nest them under
// children.
type StandingsResponse struct {
	Name         string           `json:"name"`
	Abbreviation string           `json:"abbreviation"`
	Standings    *StandingsTable  `json:"standings"`
	Children     []StandingsGroup `json:"children"`
}

// StandingsGroup is one named group of a grouped table.
type StandingsGroup struct {
	Name         string         `json:"name"`
	Abbreviation string         `json:"abbreviation"`
	Standings    StandingsTable `json:"standings"`
}

// StandingsTable holds the ranked entries of one table.
type StandingsTable struct {
	Entries []StandingsEntry `json:"entries"`
}

// StandingsEntry is one team's row.
type StandingsEntry struct {
	Team  Team   `json:"team"`
	Stats []Stat `json:"stats"`
}

// Stat is one named statistic of a standings row.
type Stat struct {
	Name         string  `json:"name"`
	DisplayValue string  `json:"displayValue"`
	Value        float64 `json:"value"`
}

// Stat returns the named statistic of the row, if present.
func (e StandingsEntry) Stat(name string) (Stat, bool) {
	for _, stat := range e.Stats {
		if stat.Name == name {
			return stat, true
		}
	}
	return Stat{}, false
}

// TeamsResponse is the team-list endpoint payload.
type TeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team Team `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// All flattens the nested team list.
func (r TeamsResponse) All() []Team {
	var teams []Team
	for _, sport := range r.Sports {
		for _, league := range sport.Leagues {
			for _, t := range league.Teams {
				teams = append(teams, t.Team)
			}
		}
	}
	return teams
}

// RosterResponse is the roster endpoint payload.
type RosterResponse struct {
	Athletes []Athlete `json:"athletes"`
}

// Athlete is one squad member.
type Athlete struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Jersey   string `json:"jersey"`
	Position struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
}

// NewsResponse is the news endpoint payload.
type NewsResponse struct {
	Articles []Article `json:"articles"`
}

// Article is one news item.
type Article struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Published   string `json:"published"`
	Links       struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
}

// ParseScoreboard decodes a scoreboard payload.
func ParseScoreboard(data []byte) (ScoreboardResponse, error) {
	var out ScoreboardResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return ScoreboardResponse{}, fmt.Errorf("decode scoreboard: %w", err)
	}
	return out, nil
}

// ParseStandings decodes a standings payload.
func ParseStandings(data []byte) (StandingsResponse, error) {
	var out StandingsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return StandingsResponse{}, fmt.Errorf("decode standings: %w", err)
	}
	return out, nil
}

// ParseTeams decodes a team-list payload.
func ParseTeams(data []byte) (TeamsResponse, error) {
	var out TeamsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return TeamsResponse{}, fmt.Errorf("decode teams: %w", err)
	}
	return out, nil
}

// ParseRoster decodes a roster payload.
func ParseRoster(data []byte) (RosterResponse, error) {
	var out RosterResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return RosterResponse{}, fmt.Errorf("decode roster: %w", err)
	}
	return out, nil
}

// ParseNews decodes a news payload.
func ParseNews(data []byte) (NewsResponse, error) {
	var out NewsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return NewsResponse{}, fmt.Errorf("decode news: %w", err)
	}
	return out, nil
}
