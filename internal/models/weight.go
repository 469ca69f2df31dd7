// ABOUTME: WeightEntry model: timestamped body-weight measurements.
// ABOUTME: The latest entry drives weight_target goal progress.
package models

import (
	"strings"
	"time"
)

// WeightEntry is one body-weight measurement in kilograms.
type WeightEntry struct {
	ID         int64
	UserID     string
	WeightKg   float64
	RecordedAt time.Time
}

// NewWeightEntry creates a measurement recorded now.
func NewWeightEntry(userID string, weightKg float64) *WeightEntry {
	return &WeightEntry{UserID: userID, WeightKg: weightKg, RecordedAt: time.Now()}
}

// WithRecordedAt sets a custom measurement timestamp.
func (w *WeightEntry) WithRecordedAt(t time.Time) *WeightEntry {
	w.RecordedAt = t
	return w
}

// Validate checks field constraints before a write.
func (w *WeightEntry) Validate() error {
	if strings.TrimSpace(w.UserID) == "" {
		return Validationf("weight user", "must not be empty")
	}
	if w.WeightKg <= 0 {
		return Validationf("weight", "must be positive, got %g", w.WeightKg)
	}
	return nil
}
