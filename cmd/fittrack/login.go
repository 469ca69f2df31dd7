// ABOUTME: CLI commands for the device session: login, logout, whoami.
// ABOUTME: The session file decides which user other commands act as.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login <user-id | \"First Last\">",
	Short: "Log in as a user on this device",
	Long: `Log in as a registered user. Accepts a user id or a full name.

Examples:
  fittrack login "Jane Doe"
  fittrack login 6f1c7a52-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := auth.Login(cmd.Context(), store, args[0])
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}

		color.Green("✓ Logged in as %s", u.FullName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		color.Yellow("✗ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		u, err := store.GetUser(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		fmt.Printf("%s (%s)\n", u.FullName(), u.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
