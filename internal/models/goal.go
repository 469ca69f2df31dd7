// ABOUTME: Goal model with kind and status enums plus kind/field validation.
// ABOUTME: Active goals move to Achieved or Expired exactly once, never back.
package models

import "strings"

// GoalKind selects how progress is measured.
type GoalKind string

const (
	// GoalExerciseTarget tracks the best single-set weight for one exercise.
	GoalExerciseTarget GoalKind = "exercise_target"
	// GoalWorkoutFrequency counts workouts inside the goal's date range.
	GoalWorkoutFrequency GoalKind = "workout_frequency"
	// GoalWeightTarget tracks body weight toward a target from a baseline.
	GoalWeightTarget GoalKind = "weight_target"
)

// AllGoalKinds returns all valid goal kinds.
var AllGoalKinds = []GoalKind{GoalExerciseTarget, GoalWorkoutFrequency, GoalWeightTarget}

// IsValidGoalKind checks if a string is a valid goal kind.
func IsValidGoalKind(s string) bool {
	for _, k := range AllGoalKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive   GoalStatus = "active"
	GoalAchieved GoalStatus = "achieved"
	GoalExpired  GoalStatus = "expired"
)

// Terminal reports whether the status admits no further transitions.
func (s GoalStatus) Terminal() bool {
	return s == GoalAchieved || s == GoalExpired
}

// Goal is a user objective evaluated against workouts, personal bests,
// or body-weight entries depending on its kind.
type Goal struct {
	ID              int64
	UserID          string
	Kind            GoalKind
	ExerciseID      *int64 // required for exercise_target, forbidden otherwise
	TargetValue     *float64
	StartDate       string // ISO-8601 day
	EndDate         string
	Status          GoalStatus
	CurrentProgress float64
	StartingValue   *float64 // weight_target baseline
	AchievedOn      *string  // day the goal reached Achieved
}

// NewGoal creates an Active goal for a user over [start, end].
func NewGoal(userID string, kind GoalKind, startDate, endDate string) *Goal {
	return &Goal{
		UserID:    userID,
		Kind:      kind,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    GoalActive,
	}
}

// WithExercise binds the goal to an exercise.
func (g *Goal) WithExercise(exerciseID int64) *Goal {
	g.ExerciseID = &exerciseID
	return g
}

// WithTarget sets the target value.
func (g *Goal) WithTarget(v float64) *Goal {
	g.TargetValue = &v
	return g
}

// WithStartingValue sets the baseline for weight_target goals.
func (g *Goal) WithStartingValue(v float64) *Goal {
	g.StartingValue = &v
	return g
}

// Validate checks kind/field combinations before any write.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return Validationf("goal user", "must not be empty")
	}
	if !IsValidGoalKind(string(g.Kind)) {
		return Validationf("goal kind", "unknown kind %q", g.Kind)
	}
	switch g.Kind {
	case GoalExerciseTarget:
		if g.ExerciseID == nil {
			return Validationf("goal exercise", "exercise_target goals need an exercise")
		}
	default:
		if g.ExerciseID != nil {
			return Validationf("goal exercise", "%s goals must not name an exercise", g.Kind)
		}
	}
	start, err := ParseDay(g.StartDate)
	if err != nil {
		return Validationf("goal start date", "want YYYY-MM-DD, got %q", g.StartDate)
	}
	end, err := ParseDay(g.EndDate)
	if err != nil {
		return Validationf("goal end date", "want YYYY-MM-DD, got %q", g.EndDate)
	}
	if end.Before(start) {
		return Validationf("goal dates", "end %s is before start %s", g.EndDate, g.StartDate)
	}
	if g.TargetValue != nil && *g.TargetValue < 0 {
		return Validationf("goal target", "must not be negative")
	}
	return nil
}

// TargetSatisfiedBy reports whether progress satisfies the goal's target.
// A missing or zero target is satisfied by any non-negative progress.
// weight_target goals compare toward the target from the starting value:
// downward when the baseline is above the target, upward otherwise.
func (g *Goal) TargetSatisfiedBy(progress float64) bool {
	if g.TargetValue == nil || *g.TargetValue == 0 {
		return progress >= 0
	}
	if g.Kind == GoalWeightTarget && g.StartingValue != nil && *g.StartingValue > *g.TargetValue {
		return progress > 0 && progress <= *g.TargetValue
	}
	return progress >= *g.TargetValue
}
