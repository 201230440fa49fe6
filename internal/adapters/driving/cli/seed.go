package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the account's default data",
	Long: `Writes the default leagues and settings for a new account. Safe to
run repeatedly; an already seeded account is left untouched.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if seedService == nil {
		return errors.New("seed service not configured")
	}

	seeded, err := seedService.Run(context.Background())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if seeded {
		cmd.Println("Account seeded with defaults.")
	} else {
		cmd.Println("Account already seeded; nothing to do.")
	}
	return nil
}
