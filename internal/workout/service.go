package workout

import (
	"context"
	"errors"
)

// ErrForbidden is returned when a workout exists but belongs to a
// different user. Handlers map it to 404 to avoid leaking existence.
var ErrForbidden = errors.New("workout belongs to another user")

// UpdateFields carries a partial update; nil fields are untouched.
type UpdateFields struct {
	Reps            *int
	DurationSeconds *int
	CaloriesBurned  *float64
}

// Service enforces validation and ownership around the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, userID string, t Type, reps, durationSeconds int, calories *float64) (*Workout, error) {
	if err := Validate(t, reps, durationSeconds, calories); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, Workout{
		UserID:          userID,
		Type:            t,
		Reps:            reps,
		DurationSeconds: durationSeconds,
		CaloriesBurned:  calories,
	})
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Workout, error) {
	w, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, ErrForbidden
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, userID string, f Filter) ([]Workout, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, &ValidationError{Field: "exercise_type", Reason: "unknown type"}
	}
	return s.store.ListByUser(ctx, userID, f)
}

func (s *Service) Update(ctx context.Context, userID, id string, fields UpdateFields) (*Workout, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if fields.Reps != nil {
		w.Reps = *fields.Reps
	}
	if fields.DurationSeconds != nil {
		w.DurationSeconds = *fields.DurationSeconds
	}
	if fields.CaloriesBurned != nil {
		w.CaloriesBurned = fields.CaloriesBurned
	}
	if err := Validate(w.Type, w.Reps, w.DurationSeconds, w.CaloriesBurned); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, *w)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
