// ABOUTME: Composite-write outcome types: primary success plus any
// ABOUTME: secondary effects that degraded instead of failing the call.
package tracker

// PersonalBest describes one new record detected by a workout save.
type PersonalBest struct {
	ExerciseID   int64
	ExerciseName string
	Weight       float64
	PriorBest    float64 // zero when this is the first recorded lift
}

// EffectWarning names a secondary effect that failed after the primary
// write committed. The primary result stands; the warning tells the
// caller which derived update needs a retry or a shrug.
type EffectWarning struct {
	Effect string
	Err    error
}

// SaveOutcome reports a completed workout save. PersonalBests lists
// records detected after commit; Warnings lists absorbed secondary
// failures (queue, goal hooks, streak).
type SaveOutcome struct {
	WorkoutID     int64
	PersonalBests []PersonalBest
	Warnings      []EffectWarning
}

// Degraded reports whether any secondary effect failed.
func (o *SaveOutcome) Degraded() bool {
	return len(o.Warnings) > 0
}

// DeleteOutcome reports a workout deletion and its absorbed secondary
// failures.
type DeleteOutcome struct {
	Warnings []EffectWarning
}

// Degraded reports whether any secondary effect failed.
func (o *DeleteOutcome) Degraded() bool {
	return len(o.Warnings) > 0
}
