// Package cli implements the command-line driving adapter.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/w3labs/sportsync/internal/core/ports/driving"
	"github.com/w3labs/sportsync/internal/core/services"
	"github.com/w3labs/sportsync/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Wired services. Composition happens in cmd/sportsync before Execute.
var (
	backupManager   driving.BackupManager
	seedService     *services.Seeder
	feedService     *services.Feeds
	reminderService *services.Reminders
	profileService  *services.Profile
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sportsync",
	Short: "Sync, cache and back up your sports data",
	Long: `sportsync keeps a local, offline-capable view of your favorite
leagues, teams and match reminders in sync with the remote store, and
serves live scores and standings through a TTL cache.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles everything the CLI drives.
type Services struct {
	Backup    driving.BackupManager
	Seeder    *services.Seeder
	Feeds     *services.Feeds
	Reminders *services.Reminders
	Profile   *services.Profile
}

// SetServices wires the engine services into the commands.
func SetServices(s Services) {
	backupManager = s.Backup
	seedService = s.Seeder
	feedService = s.Feeds
	reminderService = s.Reminders
	profileService = s.Profile
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
