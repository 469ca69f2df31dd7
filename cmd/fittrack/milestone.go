// ABOUTME: CLI commands for the achievements feed and notifications.
// ABOUTME: Milestones are append-only; notifications can be marked read.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

var (
	milestoneKind     string
	milestoneLimit    int
	notificationsAll  bool
	notificationLimit int
)

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Show the achievements feed",
	Long: `Show achievements, newest first.

KINDS:

  personal_best    New best single-set weight on an exercise
  longest_streak   A new longest activity streak
  goal_achieved    A goal reached its target`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		var kind *models.MilestoneKind
		if milestoneKind != "" {
			if !models.IsValidMilestoneKind(milestoneKind) {
				return fmt.Errorf("unknown milestone kind: %s", milestoneKind)
			}
			k := models.MilestoneKind(milestoneKind)
			kind = &k
		}

		milestones, err := store.ListMilestones(cmd.Context(), userID, kind, milestoneLimit)
		if err != nil {
			return fmt.Errorf("list milestones: %w", err)
		}
		if len(milestones) == 0 {
			fmt.Println("No milestones yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range milestones {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(m.AchievedAt),
				padRight(string(m.Kind), 16),
				describeMilestone(cmd, m))
		}
		return nil
	},
}

// describeMilestone renders one feed line. Exercise names resolve
// best-effort; a missing one falls back to the id.
func describeMilestone(cmd *cobra.Command, m *models.Milestone) string {
	switch m.Kind {
	case models.MilestonePersonalBest:
		name := "exercise"
		if m.ExerciseID != nil {
			if ex, err := store.GetExercise(cmd.Context(), *m.ExerciseID); err == nil {
				name = ex.Name
			} else {
				name = fmt.Sprintf("exercise %d", *m.ExerciseID)
			}
		}
		return fmt.Sprintf("%s %.1f kg", name, m.Value)
	case models.MilestoneLongestStreak:
		return fmt.Sprintf("%d-day streak", int(m.Value))
	case models.MilestoneGoalAchieved:
		return fmt.Sprintf("goal %d achieved", int(m.Value))
	default:
		return fmt.Sprintf("%.1f", m.Value)
	}
}

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Show notifications",
	Long: `Show unread notifications. Use --all to include read ones,
and 'notifications read <id>' to mark one read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}

		notifications, err := store.ListNotifications(cmd.Context(), userID, !notificationsAll, notificationLimit)
		if err != nil {
			return fmt.Errorf("list notifications: %w", err)
		}
		if len(notifications) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, n := range notifications {
			marker := color.GreenString("●")
			if n.Read {
				marker = faint.Sprint("○")
			}
			fmt.Printf("%s %s %s %s\n",
				marker,
				faint.Sprintf("%-4d", n.ID),
				faint.Sprint(n.CreatedAt.Format("2006-01-02 15:04")),
				n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id: %s", args[0])
		}

		if err := store.MarkNotificationRead(cmd.Context(), id); err != nil {
			return fmt.Errorf("mark notification read: %w", err)
		}
		color.Green("✓ Marked %d read", id)
		return nil
	},
}

func init() {
	milestonesCmd.Flags().StringVarP(&milestoneKind, "kind", "k", "", "filter by kind")
	milestonesCmd.Flags().IntVarP(&milestoneLimit, "limit", "n", 20, "max number of results")

	notificationsCmd.Flags().BoolVarP(&notificationsAll, "all", "a", false, "include read notifications")
	notificationsCmd.Flags().IntVarP(&notificationLimit, "limit", "n", 20, "max number of results")
	notificationsCmd.AddCommand(notificationsReadCmd)

	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(notificationsCmd)
}
