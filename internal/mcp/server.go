// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Exposes workout, goal, and streak operations to MCP clients.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/auth"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/tracker"
)

// Server wraps the MCP server with the store and engines.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.Store
	ledger    *tracker.WorkoutLedger
	goals     *tracker.GoalEngine
	streaks   *tracker.StreakTracker
	log       *zap.Logger
}

// NewServer creates an MCP server over the given store and engines.
func NewServer(store *storage.Store, ledger *tracker.WorkoutLedger, goals *tracker.GoalEngine, streaks *tracker.StreakTracker, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		ledger:    ledger,
		goals:     goals,
		streaks:   streaks,
		log:       log,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// currentUser resolves the session user per call, so a login or logout
// between calls takes effect without restarting the server.
func (s *Server) currentUser() (string, error) {
	return auth.CurrentUserID()
}
