package stats

import (
	"context"
	"time"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/workout"
)

// Service fetches a user's workouts and delegates to the
// calculators.
type Service struct {
	workouts workout.Store
}

func NewService(workouts workout.Store) *Service {
	return &Service{workouts: workouts}
}

func (s *Service) Overall(ctx context.Context, userID string) (Summary, error) {
	ws, err := s.workouts.ListByUser(ctx, userID, workout.Filter{})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(ws), nil
}

func (s *Service) Exercise(ctx context.Context, userID string, t workout.Type) (ExerciseSummary, error) {
	if !t.Valid() {
		return ExerciseSummary{}, &workout.ValidationError{Field: "exercise_type", Reason: "unknown type"}
	}
	ws, err := s.workouts.ListByUser(ctx, userID, workout.Filter{Type: t})
	if err != nil {
		return ExerciseSummary{}, err
	}
	return SummarizeExercise(ws, t), nil
}

func (s *Service) ExerciseBreakdown(ctx context.Context, userID string) ([]BreakdownEntry, error) {
	ws, err := s.workouts.ListByUser(ctx, userID, workout.Filter{})
	if err != nil {
		return nil, err
	}
	return Breakdown(ws), nil
}

func (s *Service) WeeklyReport(ctx context.Context, userID string) (WeeklyReport, error) {
	ws, err := s.workouts.ListByUser(ctx, userID, workout.Filter{})
	if err != nil {
		return WeeklyReport{}, err
	}
	return Weekly(ws, time.Now()), nil
}

func (s *Service) Records(ctx context.Context, userID string) ([]Record, error) {
	ws, err := s.workouts.ListByUser(ctx, userID, workout.Filter{})
	if err != nil {
		return nil, err
	}
	return PersonalRecords(ws), nil
}
