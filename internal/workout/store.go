package workout

import "context"

// Filter narrows and pages a workout listing.
type Filter struct {
	Type   Type // zero value means all types
	Offset int
	Limit  int // 0 means no limit
}

// Store is the workout persistence contract.
type Store interface {
	Create(ctx context.Context, w Workout) (*Workout, error)
	ByID(ctx context.Context, id string) (*Workout, error)
	ListByUser(ctx context.Context, userID string, f Filter) ([]Workout, error)
	Update(ctx context.Context, w Workout) (*Workout, error)
	Delete(ctx context.Context, id string) error
}
