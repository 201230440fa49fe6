package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the account profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile document",
	RunE:  runProfileShow,
}

var profilePushTokenCmd = &cobra.Command{
	Use:   "push-token <token>",
	Short: "Record the device's push-notification token",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilePushToken,
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <file>",
	Short: "Upload a profile avatar image",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAvatar,
}

var profileAvatarRemoveCmd = &cobra.Command{
	Use:   "avatar-remove",
	Short: "Remove the profile avatar",
	RunE:  runProfileAvatarRemove,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profilePushTokenCmd)
	profileCmd.AddCommand(profileAvatarCmd)
	profileCmd.AddCommand(profileAvatarRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	fields, err := profileService.Get(context.Background())
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	if len(fields) == 0 {
		cmd.Println("No profile yet.")
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Printf("%s: %v\n", key, fields[key])
	}
	return nil
}

func runProfilePushToken(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.SavePushToken(context.Background(), args[0]); err != nil {
		return fmt.Errorf("save push token: %w", err)
	}
	cmd.Println("Push token saved.")
	return nil
}

func runProfileAvatar(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open avatar file: %w", err)
	}
	defer f.Close()

	url, err := profileService.UploadAvatar(context.Background(), f, args[0])
	if err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}
	cmd.Printf("Avatar uploaded: %s\n", url)
	return nil
}

func runProfileAvatarRemove(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.DeleteAvatar(context.Background()); err != nil {
		return fmt.Errorf("remove avatar: %w", err)
	}
	cmd.Println("Avatar removed.")
	return nil
}
