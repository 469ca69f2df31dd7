// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: fittrack://summary, fittrack://recent, and fittrack://goals.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
)

func (s *Server) registerResources() {
	// fittrack://summary - streak, latest weight, goal counts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://summary",
		Name:        "Training Summary",
		Description: "Streak, latest body weight, and goal counts for the logged-in user",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// fittrack://recent - last workouts and milestones
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://recent",
		Name:        "Recent Activity",
		Description: "Last 10 workouts and last 10 milestones",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// fittrack://goals - active goals with progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fittrack://goals",
		Name:        "Active Goals",
		Description: "Active goals with current progress",
		MIMEType:    "application/json",
	}, s.handleGoalsResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}

	streak, err := s.store.GetStreak(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}

	result := map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"streak": map[string]any{
			"current": streak.CurrentStreak,
			"longest": streak.LongestStreak,
		},
	}

	if kg, ok, err := s.store.LatestWeight(ctx, userID); err == nil && ok {
		result["latest_weight_kg"] = kg
	}

	counts := map[string]int{}
	for _, status := range []models.GoalStatus{models.GoalActive, models.GoalAchieved, models.GoalExpired} {
		st := status
		goals, err := s.store.ListGoals(ctx, userID, &st)
		if err != nil {
			return nil, fmt.Errorf("list goals: %w", err)
		}
		counts[string(status)] = len(goals)
	}
	result["goals"] = counts

	return resourceJSON("fittrack://summary", result)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}

	workouts, err := s.store.ListWorkouts(ctx, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	milestones, err := s.store.ListMilestones(ctx, userID, nil, 10)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}

	return resourceJSON("fittrack://recent", map[string]any{
		"workouts":   workouts,
		"milestones": milestones,
	})
}

func (s *Server) handleGoalsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}

	active := models.GoalActive
	goals, err := s.store.ListGoals(ctx, userID, &active)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	return resourceJSON("fittrack://goals", map[string]any{
		"goals": goals,
		"count": len(goals),
	})
}

func resourceJSON(uri string, result any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
