// ABOUTME: User model keyed by an opaque auth-provider id.
// ABOUTME: Height is optional; registration and last-login are timestamps.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the owner of all tracked data. The id comes from the auth
// provider and is treated as opaque; locally created users get a UUID.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	HeightCm     *float64
	RegisteredAt time.Time
	LastLoginAt  time.Time
}

// NewUser creates a User with a generated id and current timestamps.
func NewUser(firstName, lastName string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		RegisteredAt: now,
		LastLoginAt:  now,
	}
}

// WithHeight sets the height in centimeters.
func (u *User) WithHeight(cm float64) *User {
	u.HeightCm = &cm
	return u
}

// FullName returns "First Last" with empty parts dropped.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate checks field constraints before a write.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return Validationf("user id", "must not be empty")
	}
	if strings.TrimSpace(u.FirstName) == "" {
		return Validationf("first name", "must not be empty")
	}
	if u.HeightCm != nil && *u.HeightCm <= 0 {
		return Validationf("height", "must be positive, got %g", *u.HeightCm)
	}
	return nil
}
