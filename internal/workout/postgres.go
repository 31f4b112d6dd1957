package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore implements Store on database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const workoutColumns = `
	id, user_id, exercise_type, reps_count, duration_seconds,
	calories_burned, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, w Workout) (*Workout, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO workouts (
			id, user_id, exercise_type, reps_count,
			duration_seconds, calories_burned
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+workoutColumns+`
	`,
		w.ID, w.UserID, string(w.Type), w.Reps, w.DurationSeconds, w.CaloriesBurned,
	)
	return scanWorkout(row)
}

func (s *PostgresStore) ByID(ctx context.Context, id string) (*Workout, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE id = $1
	`, id)
	return scanWorkout(row)
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, f Filter) ([]Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1`
	args := []any{userID}

	if f.Type != "" {
		args = append(args, string(f.Type))
		query += fmt.Sprintf(" AND exercise_type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, w Workout) (*Workout, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE workouts
		SET reps_count = $2,
		    duration_seconds = $3,
		    calories_burned = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+workoutColumns+`
	`, w.ID, w.Reps, w.DurationSeconds, w.CaloriesBurned)
	return scanWorkout(row)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*Workout, error) {
	var (
		w        Workout
		typ      string
		calories sql.NullFloat64
	)
	err := row.Scan(
		&w.ID, &w.UserID, &typ, &w.Reps, &w.DurationSeconds,
		&calories, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	w.Type = Type(typ)
	if calories.Valid {
		c := calories.Float64
		w.CaloriesBurned = &c
	}
	return &w, nil
}
