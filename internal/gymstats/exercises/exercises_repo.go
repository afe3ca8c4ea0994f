package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

type ExerciseParams struct {
	ExerciseID  string
	MuscleGroup string
	From        *time.Time
	To          *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.Metadata == nil {
		exercise.Metadata = map[string]string{}
	}
	metadataJson, err := json.Marshal(exercise.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(exercise_id, muscle_group, kilos, reps, metadata, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		exercise.ExerciseID, exercise.MuscleGroup, exercise.Kilos, exercise.Reps, metadataJson, exercise.CreatedAt,
	).Scan(&id)
	if err != nil {
		if pkg.IsCheckViolationError(err) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExercise, err)
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", id))

	exercise.ID = id
	return &exercise, nil
}

// Delete removes a set and returns it, so callers know which exercise changed.
func (r *Repo) Delete(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`DELETE FROM exercise WHERE id = $1
			RETURNING id, exercise_id, muscle_group, kilos, reps, metadata, created_at;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted, err := r.rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(deleted) != 1 {
		return nil, ErrExerciseNotFound
	}
	return &deleted[0], nil
}

// ListAll returns all sets for a certain muscle group and exercise ID, oldest first.
func (r *Repo) ListAll(ctx context.Context, params ExerciseParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, exercise_id, muscle_group, kilos, reps, metadata, created_at
			FROM exercise
				WHERE ($1::text = '' OR exercise_id = $1)
				AND ($2::text = '' OR muscle_group = $2)
				AND ($3::timestamp IS NULL OR created_at >= $3)
				AND ($4::timestamp IS NULL OR created_at <= $4)
			ORDER BY created_at ASC, id ASC;`,
		params.ExerciseID, params.MuscleGroup,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	exercises, err := r.rows2exercises(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2exercises: %w", err)
	}
	return exercises, nil
}

func (r *Repo) rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		var metadataBytes []byte
		if err := rows.Scan(
			&e.ID, &e.ExerciseID, &e.MuscleGroup, &e.Kilos, &e.Reps, &metadataBytes, &e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.Metadata = make(map[string]string)
		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata for exercise %d: %w", e.ID, err)
			}
		}

		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
