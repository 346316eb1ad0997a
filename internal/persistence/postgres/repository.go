// Package postgres provides the authoritative store for users and the
// workout ledger.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/workoutledger/internal/domain"
	"example.com/workoutledger/internal/observability"
)

const uniqueViolation = "23505"

// Repository provides Postgres-backed persistence for accounts and the
// workout ledger.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts the account row. The unique index on username is the
// authority on duplicates; concurrent registrations race on the constraint,
// not on a prior existence check.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username, password_hash, email, created_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, stmt,
		user.ID,
		user.Username,
		user.PasswordHash,
		nullIfEmpty(user.Email),
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateUser
		}
		return storeErr(err)
	}
	return nil
}

// FindUserByUsername looks up an account by exact, case-sensitive username.
// Returns (nil, nil) when no such user exists.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT user_id, username, password_hash, COALESCE(email, ''), created_at
        FROM users WHERE username=$1`

	row := r.pool.QueryRow(ctx, query, username)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

// AppendWorkout persists one ledger entry. The table carries no UPDATE or
// DELETE path; seq is assigned by the database and fixes insertion order.
func (r *Repository) AppendWorkout(ctx context.Context, record domain.WorkoutRecord) error {
	const stmt = `INSERT INTO workout_records (record_id, user_id, exercise, sets, reps, weight, note, recorded_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, stmt,
		record.ID,
		record.UserID,
		record.Exercise,
		record.Sets,
		record.Reps,
		record.Weight,
		nullIfEmpty(record.Note),
		record.RecordedAt,
	)
	if err != nil {
		return storeErr(err)
	}
	observability.RecordWorkoutPersisted(record.RecordedAt)
	return nil
}

// ListWorkoutsByUser returns the user's full history ascending by
// (recorded_at, seq), the one snapshot every read view derives from.
func (r *Repository) ListWorkoutsByUser(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	const query = `SELECT record_id, seq, user_id, exercise, sets, reps, weight, COALESCE(note, ''), recorded_at
        FROM workout_records WHERE user_id=$1 ORDER BY recorded_at ASC, seq ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var results []domain.WorkoutRecord
	for rows.Next() {
		var rec domain.WorkoutRecord
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.UserID, &rec.Exercise, &rec.Sets, &rec.Reps, &rec.Weight, &rec.Note, &rec.RecordedAt); err != nil {
			return nil, storeErr(err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// storeErr marks a storage failure as transient so the API layer surfaces it
// as retryable, distinct from validation errors.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
