// Package workout holds workout records: one row per completed
// exercise session, owned by a user and cascade-deleted with the
// account.
package workout

import (
	"errors"
	"fmt"
	"time"
)

// Type is the exercise performed in a session.
type Type string

const (
	TypePushUp   Type = "push-up"
	TypeJumpRope Type = "jump-rope"
)

// Valid reports whether t is a supported exercise type.
func (t Type) Valid() bool {
	return t == TypePushUp || t == TypeJumpRope
}

// Workout is a completed exercise session.
type Workout struct {
	ID              string
	UserID          string
	Type            Type
	Reps            int
	DurationSeconds int
	CaloriesBurned  *float64 // optional
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	ErrNotFound = errors.New("workout not found")
)

// ValidationError describes a business-rule violation on workout
// input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate enforces the workout business rules: non-negative reps,
// duration, and calories, and a known exercise type.
func Validate(t Type, reps, durationSeconds int, calories *float64) error {
	if !t.Valid() {
		return &ValidationError{Field: "exercise_type", Reason: fmt.Sprintf("unknown type %q", t)}
	}
	if reps < 0 {
		return &ValidationError{Field: "reps_count", Reason: "must be >= 0"}
	}
	if durationSeconds < 0 {
		return &ValidationError{Field: "duration_seconds", Reason: "must be >= 0"}
	}
	if calories != nil && *calories < 0 {
		return &ValidationError{Field: "calories_burned", Reason: "must be >= 0"}
	}
	return nil
}
