// ABOUTME: MCP tool implementations for the fitness tracker.
// ABOUTME: Workout logging, goals, body weight, rest days, and sync state.
package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func (s *Server) registerTools() {
	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a complete workout with exercises and sets",
	}, s.handleLogWorkout)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its exercises and sets",
	}, s.handleGetWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and everything recorded in it",
	}, s.handleDeleteWorkout)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog, optionally filtered by muscle group",
	}, s.handleListExercises)

	// log_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record a body-weight measurement in kilograms",
	}, s.handleLogWeight)

	// log_rest_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_rest_day",
		Description: "Log a rest day; rest keeps the streak alive",
	}, s.handleLogRestDay)

	// create_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_goal",
		Description: "Create a fitness goal (exercise_target, workout_frequency, or weight_target)",
	}, s.handleCreateGoal)

	// list_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List goals with status and progress",
	}, s.handleListGoals)

	// get_streak
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streak",
		Description: "Get the current and longest activity streak",
	}, s.handleGetStreak)

	// list_milestones
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_milestones",
		Description: "List achievements: personal bests, streak records, achieved goals",
	}, s.handleListMilestones)

	// list_notifications
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_notifications",
		Description: "List in-app notifications, unread first",
	}, s.handleListNotifications)

	// sync_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sync_status",
		Description: "Show how many local changes await sync",
	}, s.handleSyncStatus)
}

// Tool input/output types

type setInput struct {
	Reps     int     `json:"reps" jsonschema:"description=Repetitions in this set,required"`
	WeightKg float64 `json:"weight_kg,omitempty" jsonschema:"description=Weight in kilograms; omit or 0 for bodyweight"`
}

type exerciseInput struct {
	Exercise string     `json:"exercise" jsonschema:"description=Exercise name or numeric id,required"`
	Sets     []setInput `json:"sets" jsonschema:"description=Sets performed,required"`
}

type logWorkoutInput struct {
	Date            string          `json:"date,omitempty" jsonschema:"description=Workout day (YYYY-MM-DD), defaults to today"`
	DurationMinutes int             `json:"duration_minutes,omitempty" jsonschema:"description=Session length in minutes"`
	Notes           string          `json:"notes,omitempty" jsonschema:"description=Optional notes"`
	Exercises       []exerciseInput `json:"exercises" jsonschema:"description=Exercises performed,required"`
}

type logWorkoutOutput struct {
	ID            int64    `json:"id"`
	PersonalBests []string `json:"personal_bests,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Message       string   `json:"message"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"description=Workout id,required"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type listExercisesInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"description=Filter by muscle group (chest, back, legs, shoulders, arms, core, full_body, cardio)"`
}

type logWeightInput struct {
	WeightKg   float64 `json:"weight_kg" jsonschema:"description=Body weight in kilograms,required"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"description=Timestamp (ISO 8601), defaults to now"`
}

type logRestDayInput struct {
	Date  string `json:"date,omitempty" jsonschema:"description=Rest day (YYYY-MM-DD), defaults to today"`
	Notes string `json:"notes,omitempty" jsonschema:"description=Optional notes"`
}

type createGoalInput struct {
	Kind      string  `json:"kind" jsonschema:"description=Goal kind: exercise_target, workout_frequency, or weight_target,required"`
	Exercise  string  `json:"exercise,omitempty" jsonschema:"description=Exercise name or id (exercise_target only)"`
	Target    float64 `json:"target,omitempty" jsonschema:"description=Target value: weight in kg or workout count"`
	StartDate string  `json:"start_date" jsonschema:"description=Start day (YYYY-MM-DD),required"`
	EndDate   string  `json:"end_date" jsonschema:"description=End day (YYYY-MM-DD),required"`
}

type listGoalsInput struct {
	Status string `json:"status,omitempty" jsonschema:"description=Filter by status (active, achieved, expired)"`
}

type listMilestonesInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"description=Filter by kind (personal_best, longest_streak, goal_achieved)"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type listNotificationsInput struct {
	All   bool `json:"all,omitempty" jsonschema:"description=Include notifications already read"`
	Limit int  `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, logWorkoutOutput, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, logWorkoutOutput{}, err
	}
	if len(input.Exercises) == 0 {
		return nil, logWorkoutOutput{}, fmt.Errorf("a workout needs at least one exercise")
	}

	date := input.Date
	if date == "" {
		date = models.Today()
	}

	w := models.NewWorkout(userID, date)
	if input.DurationMinutes > 0 {
		w.WithDuration(input.DurationMinutes)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}
	for _, e := range input.Exercises {
		ex, err := s.resolveExercise(ctx, e.Exercise)
		if err != nil {
			return nil, logWorkoutOutput{}, err
		}
		we := w.AddExercise(ex.ID)
		for _, set := range e.Sets {
			we.AddSet(set.Reps, set.WeightKg)
		}
	}

	outcome, err := s.ledger.SaveCompleteWorkout(ctx, w)
	if err != nil {
		return nil, logWorkoutOutput{}, fmt.Errorf("save workout: %w", err)
	}

	out := logWorkoutOutput{
		ID:      outcome.WorkoutID,
		Message: fmt.Sprintf("Logged workout %d on %s", outcome.WorkoutID, date),
	}
	for _, pb := range outcome.PersonalBests {
		out.PersonalBests = append(out.PersonalBests,
			fmt.Sprintf("%s: %.1f kg", pb.ExerciseName, pb.Weight))
	}
	for _, warn := range outcome.Warnings {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", warn.Effect, warn.Err))
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	w, err := s.store.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout %d: %w", input.ID, err)
	}
	return nil, w, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.store.ListWorkouts(ctx, userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.ledger.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("delete workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %d", input.ID),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var group *models.MuscleGroup
	if input.MuscleGroup != "" {
		if !models.IsValidMuscleGroup(input.MuscleGroup) {
			return nil, nil, fmt.Errorf("unknown muscle group: %s", input.MuscleGroup)
		}
		g := models.MuscleGroup(input.MuscleGroup)
		group = &g
	}

	exercises, err := s.store.ListExercises(ctx, group)
	if err != nil {
		return nil, nil, fmt.Errorf("list exercises: %w", err)
	}
	return nil, exercises, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, simpleOutput{}, err
	}

	entry := models.NewWeightEntry(userID, input.WeightKg)
	if input.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, input.RecordedAt)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04", input.RecordedAt)
		}
		if err == nil {
			entry.WithRecordedAt(t)
		}
	}

	if err := s.store.CreateWeightEntry(ctx, entry); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("record weight: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded %.1f kg", input.WeightKg),
	}, nil
}

func (s *Server) handleLogRestDay(ctx context.Context, req *mcp.CallToolRequest, input logRestDayInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}

	date := input.Date
	if date == "" {
		date = models.Today()
	}
	var notes *string
	if input.Notes != "" {
		notes = &input.Notes
	}

	streak, err := s.streaks.LogRest(ctx, userID, date, notes)
	if err != nil {
		return nil, nil, fmt.Errorf("log rest day: %w", err)
	}
	return nil, map[string]any{
		"message":        fmt.Sprintf("Rest day logged for %s", date),
		"current_streak": streak.CurrentStreak,
		"longest_streak": streak.LongestStreak,
	}, nil
}

func (s *Server) handleCreateGoal(ctx context.Context, req *mcp.CallToolRequest, input createGoalInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}
	if !models.IsValidGoalKind(input.Kind) {
		return nil, nil, fmt.Errorf("unknown goal kind: %s", input.Kind)
	}

	g := models.NewGoal(userID, models.GoalKind(input.Kind), input.StartDate, input.EndDate)
	if input.Target > 0 {
		g.WithTarget(input.Target)
	}
	if input.Exercise != "" {
		ex, err := s.resolveExercise(ctx, input.Exercise)
		if err != nil {
			return nil, nil, err
		}
		g.WithExercise(ex.ID)
	}

	if err := s.goals.CreateGoal(ctx, g); err != nil {
		return nil, nil, fmt.Errorf("create goal: %w", err)
	}
	return nil, map[string]any{
		"id":      g.ID,
		"message": fmt.Sprintf("Created %s goal %d", input.Kind, g.ID),
	}, nil
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input listGoalsInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}

	var status *models.GoalStatus
	if input.Status != "" {
		st := models.GoalStatus(input.Status)
		status = &st
	}

	goals, err := s.store.ListGoals(ctx, userID, status)
	if err != nil {
		return nil, nil, fmt.Errorf("list goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, map[string]any{"message": "No goals found."}, nil
	}
	return nil, goals, nil
}

func (s *Server) handleGetStreak(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}

	streak, err := s.store.GetStreak(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get streak: %w", err)
	}
	return nil, streak, nil
}

func (s *Server) handleListMilestones(ctx context.Context, req *mcp.CallToolRequest, input listMilestonesInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var kind *models.MilestoneKind
	if input.Kind != "" {
		if !models.IsValidMilestoneKind(input.Kind) {
			return nil, nil, fmt.Errorf("unknown milestone kind: %s", input.Kind)
		}
		k := models.MilestoneKind(input.Kind)
		kind = &k
	}

	milestones, err := s.store.ListMilestones(ctx, userID, kind, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list milestones: %w", err)
	}
	if len(milestones) == 0 {
		return nil, map[string]any{"message": "No milestones yet."}, nil
	}
	return nil, milestones, nil
}

func (s *Server) handleListNotifications(ctx context.Context, req *mcp.CallToolRequest, input listNotificationsInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	notifications, err := s.store.ListNotifications(ctx, userID, !input.All, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list notifications: %w", err)
	}
	if len(notifications) == 0 {
		return nil, map[string]any{"message": "No notifications."}, nil
	}
	return nil, notifications, nil
}

func (s *Server) handleSyncStatus(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	pending, synced, err := s.store.CountChanges(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("count changes: %w", err)
	}
	return nil, map[string]any{
		"pending": pending,
		"synced":  synced,
	}, nil
}

// resolveExercise accepts a numeric id or a name fragment.
func (s *Server) resolveExercise(ctx context.Context, ref string) (*models.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.store.GetExercise(ctx, id)
	}
	return s.store.FindExerciseByName(ctx, ref)
}
