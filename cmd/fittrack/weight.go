// ABOUTME: CLI commands for body-weight entries: add and list.
// ABOUTME: Weigh-ins feed weight_target goals during daily maintenance.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var (
	weightRecordedAt string
	weightLimit      int
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Record a body-weight measurement",
	Long: `Record a body-weight measurement in kilograms.

Examples:
  fittrack weight add 81.5
  fittrack weight add 81.5 --at "2025-03-01 07:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		var kg float64
		if _, err := fmt.Sscanf(args[0], "%f", &kg); err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		entry := models.NewWeightEntry(userID, kg)
		if weightRecordedAt != "" {
			t, err := time.Parse(time.RFC3339, weightRecordedAt)
			if err != nil {
				t, err = time.Parse("2006-01-02 15:04", weightRecordedAt)
			}
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", weightRecordedAt)
			}
			entry.WithRecordedAt(t)
		}

		if err := store.CreateWeightEntry(cmd.Context(), entry); err != nil {
			return fmt.Errorf("record weight: %w", err)
		}

		color.Green("✓ Recorded %.1f kg", kg)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		entries, err := store.ListWeightEntries(cmd.Context(), userID, weightLimit)
		if err != nil {
			return fmt.Errorf("list weight entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No weight entries found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Printf("%s %.1f kg\n",
				faint.Sprint(e.RecordedAt.Format("2006-01-02 15:04")),
				e.WeightKg)
		}
		return nil
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightRecordedAt, "at", "", "timestamp (ISO 8601, default now)")
	weightListCmd.Flags().IntVarP(&weightLimit, "limit", "n", 20, "max number of results")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	rootCmd.AddCommand(weightCmd)
}
