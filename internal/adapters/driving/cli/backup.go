package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/w3labs/sportsync/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import your data",
	Long: `Export the account's collections to a JSON file, or restore a
previously exported file into the current account.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all collections to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import collections from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	if backupManager == nil {
		return errors.New("backup service not configured")
	}

	data, err := backupManager.ExportJSON(context.Background(), domain.BackupCollections())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}

	cmd.Printf("Backup written to %s\n", args[0])
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	if backupManager == nil {
		return errors.New("backup service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	if err := backupManager.ImportJSON(context.Background(), data); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Backup %s imported successfully.\n", args[0])
	return nil
}
