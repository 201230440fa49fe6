package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3labs/sportsync/internal/adapters/driven/storage/memory"
	"github.com/w3labs/sportsync/internal/connectors/espn"
	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/services"
)

const tableTestScoreboard = `{
  "week": {"number": 2},
  "leagues": [{
    "calendar": [
      {"label": "Regular Season", "type": "2", "entries": [
        {"label": "Round 1", "endDate": "2026-03-02T00:00Z"},
        {"label": "Round 2", "endDate": "2026-03-09T00:00Z"}
      ]}
    ]
  }],
  "events": []
}`

const tableTestStandings = `{
  "name": "English Premier League",
  "standings": {"entries": [
    {"team": {"id": "364", "displayName": "Liverpool"},
     "stats": [
       {"name": "points", "displayValue": "84"},
       {"name": "gamesPlayed", "displayValue": "38"}
     ]}
  ]}
}`

func TestTableCmd_PrintsRoundScopedStandings(t *testing.T) {
	var standingsQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/standings") {
			standingsQuery = r.URL.RawQuery
			w.Write([]byte(tableTestStandings))
			return
		}
		w.Write([]byte(tableTestScoreboard))
	}))
	t.Cleanup(srv.Close)

	cache := services.NewCache(memory.NewCacheStore())
	SetServices(Services{
		Feeds: services.NewFeeds(cache, espn.NewClient(srv.URL), domain.DefaultSettings()),
	})
	defer SetServices(Services{})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"table", "eng.1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Round 2")
	assert.Contains(t, buf.String(), "Liverpool")
	assert.Equal(t, "date=20260309", standingsQuery, "table queried at the round's end date")
}
