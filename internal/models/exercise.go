// ABOUTME: Exercise reference model and MuscleGroup enum.
// ABOUTME: Exercises are seeded catalog data, never user-owned.
package models

// MuscleGroup classifies an exercise by the muscles it works.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full_body"
	MuscleCardio    MuscleGroup = "cardio"
)

// AllMuscleGroups returns all valid muscle groups.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleArms,
	MuscleLegs, MuscleCore, MuscleFullBody, MuscleCardio,
}

// IsValidMuscleGroup checks if a string is a valid muscle group.
func IsValidMuscleGroup(s string) bool {
	for _, mg := range AllMuscleGroups {
		if string(mg) == s {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry users attach sets to.
type Exercise struct {
	ID          int64
	Name        string
	MuscleGroup MuscleGroup
	Description string
}
