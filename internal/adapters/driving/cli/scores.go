package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/w3labs/sportsync/internal/connectors/espn"
)

var (
	scoresSport string
	scoresDate  string
	tableRound  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <league>",
	Short: "Show a league's scoreboard",
	Long: `Shows the league's fixtures: live matches first, then upcoming,
then finished. League ids follow the stats API, e.g. eng.1 or bra.1.`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

var standingsCmd = &cobra.Command{
	Use:   "table <league>",
	Short: "Show a league's standings as of the current round",
	Args:  cobra.ExactArgs(1),
	RunE:  runStandings,
}

func init() {
	scoresCmd.Flags().StringVar(&scoresSport, "sport", "soccer", "sport segment of the stats API")
	scoresCmd.Flags().StringVar(&scoresDate, "date", "", "date filter, YYYYMMDD")
	standingsCmd.Flags().StringVar(&scoresSport, "sport", "soccer", "sport segment of the stats API")
	standingsCmd.Flags().IntVar(&tableRound, "round", 0, "round number; 0 selects the current round")
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(standingsCmd)
}

func runScores(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	sb, err := feedService.Scoreboard(context.Background(), scoresSport, args[0], scoresDate)
	if err != nil {
		return fmt.Errorf("fetch scoreboard: %w", err)
	}

	if len(sb.Events()) == 0 {
		cmd.Println("No fixtures.")
		return nil
	}

	for _, event := range sb.Live {
		cmd.Printf("LIVE  %s\n", fixtureLine(event))
	}
	for _, event := range sb.Upcoming {
		cmd.Printf("      %s\n", fixtureLine(event))
	}
	for _, event := range sb.Finished {
		cmd.Printf("FT    %s\n", fixtureLine(event))
	}
	return nil
}

func fixtureLine(event espn.Event) string {
	if len(event.Competitions) > 0 {
		home, hok := event.Competitions[0].Home()
		away, aok := event.Competitions[0].Away()
		if hok && aok {
			return fmt.Sprintf("%s %s - %s %s",
				home.Team.Abbreviation, home.Score, away.Score, away.Team.Abbreviation)
		}
	}
	return event.ShortName
}

func runStandings(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	tables, round, err := feedService.RoundStandings(context.Background(), scoresSport, args[0], tableRound)
	if err != nil {
		return fmt.Errorf("fetch standings: %w", err)
	}

	if round.Number > 0 {
		cmd.Printf("Round %d\n\n", round.Number)
	}
	for _, table := range tables {
		if table.Name != "" {
			cmd.Printf("%s\n", table.Name)
		}
		for i, row := range table.Rows {
			cmd.Printf("%2d. %-30s %3s pts  %s played\n",
				i+1, row.Team.DisplayName, row.Points, row.GamesPlayed)
		}
		cmd.Println()
	}
	return nil
}
