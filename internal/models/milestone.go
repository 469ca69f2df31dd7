// ABOUTME: Milestone model: an append-only achievement record.
// ABOUTME: Covers personal bests, streak records, and achieved goals.
package models

// MilestoneKind is the achievement category.
type MilestoneKind string

const (
	MilestonePersonalBest  MilestoneKind = "personal_best"
	MilestoneLongestStreak MilestoneKind = "longest_streak"
	MilestoneGoalAchieved  MilestoneKind = "goal_achieved"
)

// AllMilestoneKinds returns all valid milestone kinds.
var AllMilestoneKinds = []MilestoneKind{
	MilestonePersonalBest, MilestoneLongestStreak, MilestoneGoalAchieved,
}

// IsValidMilestoneKind checks if a string is a valid milestone kind.
func IsValidMilestoneKind(s string) bool {
	for _, k := range AllMilestoneKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Milestone records one achievement. Rows are appended, never updated:
// the feed is the history. Value is the best weight for personal bests,
// the streak length for streak records, and the goal id for achieved
// goals. ExerciseID is set only for personal bests.
type Milestone struct {
	ID         int64
	UserID     string
	Kind       MilestoneKind
	ExerciseID *int64
	Value      float64
	AchievedAt string // ISO-8601 day
}

// NewMilestone creates a milestone achieved on a day.
func NewMilestone(userID string, kind MilestoneKind, value float64, achievedAt string) *Milestone {
	return &Milestone{UserID: userID, Kind: kind, Value: value, AchievedAt: achievedAt}
}

// WithExercise binds the milestone to an exercise.
func (m *Milestone) WithExercise(exerciseID int64) *Milestone {
	m.ExerciseID = &exerciseID
	return m
}
