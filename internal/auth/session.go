// ABOUTME: Local session: which user this device is acting as.
// ABOUTME: A JSON file in the config dir; no passwords, no network.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/models"
	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

// Session records the logged-in user on this device.
type Session struct {
	UserID     string `json:"user_id"`
	DeviceID   string `json:"device_id"`
	LoggedInAt string `json:"logged_in_at"`
}

func sessionDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fittrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fittrack")
}

// SessionPath returns the session file location.
func SessionPath() string {
	return filepath.Join(sessionDir(), "session.json")
}

// LoadSession reads the session from disk. A missing or empty session
// is models.ErrNotLoggedIn.
func LoadSession() (*Session, error) {
	data, err := os.ReadFile(SessionPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrNotLoggedIn
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if s.UserID == "" {
		return nil, models.ErrNotLoggedIn
	}
	return &s, nil
}

// SaveSession persists the session to disk.
func SaveSession(s *Session) error {
	if err := os.MkdirAll(sessionDir(), 0750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(SessionPath(), data, 0600)
}

// ClearSession removes the session file. Clearing an absent session
// is not an error.
func ClearSession() error {
	path := SessionPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// CurrentUserID returns the logged-in user id, or models.ErrNotLoggedIn.
func CurrentUserID() (string, error) {
	s, err := LoadSession()
	if err != nil {
		return "", err
	}
	return s.UserID, nil
}

// GenerateDeviceID creates a new unique device ID.
func GenerateDeviceID() string {
	return ulid.Make().String()
}

// Login resolves a user by id or full name, stamps their last login,
// and records the session. Re-logging on the same device keeps its
// device id.
func Login(ctx context.Context, store *storage.Store, identifier string) (*models.User, error) {
	u, err := resolveUser(ctx, store, identifier)
	if err != nil {
		return nil, err
	}
	if err := store.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("stamp last login: %w", err)
	}

	s := &Session{
		UserID:     u.ID,
		DeviceID:   GenerateDeviceID(),
		LoggedInAt: time.Now().Format(time.RFC3339),
	}
	if prev, err := LoadSession(); err == nil && prev.DeviceID != "" {
		s.DeviceID = prev.DeviceID
	}
	if err := SaveSession(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return u, nil
}

// Logout clears the session.
func Logout() error {
	return ClearSession()
}

// resolveUser accepts a user id or a "First Last" name.
func resolveUser(ctx context.Context, store *storage.Store, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.Validationf("login user", "must not be empty")
	}

	u, err := store.GetUser(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	fields := strings.Fields(identifier)
	if len(fields) < 2 {
		return nil, models.ErrNotFound
	}
	return store.FindUserByName(ctx, fields[0], strings.Join(fields[1:], " "))
}
