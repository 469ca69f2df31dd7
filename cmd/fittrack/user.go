// ABOUTME: CLI commands for user profiles: register and list.
// ABOUTME: Profiles are local; ids are UUIDs sync can rely on.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var userHeightCm float64

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user profiles",
	Long: `Manage the user profiles stored on this device.

Several people can share one database; 'fittrack login' selects who the
other commands act as.`,
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <first-name> <last-name>",
	Short: "Register a new user",
	Long: `Register a new user profile.

Examples:
  fittrack user register Jane Doe
  fittrack user register Jane Doe --height 172`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := models.NewUser(args[0], args[1])
		if userHeightCm > 0 {
			u.WithHeight(userHeightCm)
		}

		if err := store.UpsertUser(cmd.Context(), u); err != nil {
			return fmt.Errorf("register user: %w", err)
		}

		color.Green("✓ Registered %s", u.FullName())
		fmt.Printf("  ID: %s\n", u.ID)
		fmt.Printf("  Log in with: fittrack login %q\n", u.FullName())
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := store.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			fmt.Printf("%s %s\n", faint.Sprint(u.ID[:8]), u.FullName())
		}
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().Float64Var(&userHeightCm, "height", 0, "height in centimeters")

	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}
