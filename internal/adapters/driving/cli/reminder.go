package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage match reminders",
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List armed reminders",
	RunE:  runReminderList,
}

var reminderToggleCmd = &cobra.Command{
	Use:   "toggle <event-id> <title> <kickoff>",
	Short: "Arm or disarm a reminder for a match",
	Long: `Arms a reminder that fires shortly before kickoff, or disarms it if
one is already set for the event. Kickoff is RFC 3339, e.g.
2026-03-14T16:00:00Z.`,
	Args: cobra.ExactArgs(3),
	RunE: runReminderToggle,
}

func init() {
	reminderCmd.AddCommand(reminderListCmd)
	reminderCmd.AddCommand(reminderToggleCmd)
	rootCmd.AddCommand(reminderCmd)
}

func runReminderList(cmd *cobra.Command, _ []string) error {
	if reminderService == nil {
		return errors.New("reminder service not configured")
	}

	reminders, err := reminderService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}

	if len(reminders) == 0 {
		cmd.Println("No reminders set.")
		return nil
	}
	for _, r := range reminders {
		cmd.Printf("%s  %s (%s)\n", r.Kickoff.Local().Format("Mon 02 Jan 15:04"), r.Title, r.EventID)
	}
	return nil
}

func runReminderToggle(cmd *cobra.Command, args []string) error {
	if reminderService == nil {
		return errors.New("reminder service not configured")
	}

	kickoff, err := time.Parse(time.RFC3339, args[2])
	if err != nil {
		return fmt.Errorf("parse kickoff: %w", err)
	}

	armed, err := reminderService.Toggle(context.Background(), args[0], args[1], kickoff)
	if err != nil {
		return fmt.Errorf("toggle reminder: %w", err)
	}

	if armed {
		cmd.Printf("Reminder set for %s.\n", args[1])
	} else {
		cmd.Printf("Reminder for %s removed.\n", args[1])
	}
	return nil
}
