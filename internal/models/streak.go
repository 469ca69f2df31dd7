// ABOUTME: DailyLog and Streak models backing consecutive-day tracking.
// ABOUTME: One log per user per day; workout activity outranks rest.
package models

import "strings"

// Activity is what a daily log records for a calendar day.
type Activity string

const (
	ActivityWorkout Activity = "workout"
	ActivityRest    Activity = "rest"
)

// IsValidActivity checks if a string is a valid activity.
func IsValidActivity(s string) bool {
	return s == string(ActivityWorkout) || s == string(ActivityRest)
}

// DailyLog marks one day as a workout or rest day. A day logged as a
// workout is never downgraded to rest by a later write.
type DailyLog struct {
	ID       int64
	UserID   string
	Date     string // ISO-8601 day, unique per user
	Activity Activity
	Notes    *string
}

// NewDailyLog creates a log entry for a user, day, and activity.
func NewDailyLog(userID, date string, activity Activity) *DailyLog {
	return &DailyLog{UserID: userID, Date: date, Activity: activity}
}

// WithNotes sets notes on the log entry.
func (d *DailyLog) WithNotes(notes string) *DailyLog {
	d.Notes = &notes
	return d
}

// Validate checks field constraints before a write.
func (d *DailyLog) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return Validationf("daily log user", "must not be empty")
	}
	if _, err := ParseDay(d.Date); err != nil {
		return Validationf("daily log date", "want YYYY-MM-DD, got %q", d.Date)
	}
	if !IsValidActivity(string(d.Activity)) {
		return Validationf("daily log activity", "unknown activity %q", d.Activity)
	}
	return nil
}

// Streak is the single per-user row of consecutive-day state. Rest days
// extend a streak only when they continue an unbroken chain; gaps reset
// the current count to the day being logged.
type Streak struct {
	UserID           string
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate *string // day of the most recent log of any kind
	LastWorkoutDate  *string // day of the most recent workout log
}
