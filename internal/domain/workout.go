package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateUser indicates the username is already taken.
	ErrDuplicateUser = errors.New("username already exists")
	// ErrInvalidCredentials is returned for unknown usernames and wrong
	// passwords alike; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidWorkoutData indicates a workout payload that failed validation.
	ErrInvalidWorkoutData = errors.New("invalid workout data")
	// ErrMalformedRequest indicates a request missing required fields.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrStoreUnavailable wraps transient storage failures so clients can retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// User is a registered account row.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

// WorkoutRecord is one entry in the append-only workout ledger. Records are
// never mutated or deleted after creation.
type WorkoutRecord struct {
	ID         string
	Seq        int64
	UserID     string
	Exercise   string
	Sets       int
	Reps       int
	Weight     float64
	Note       string
	RecordedAt time.Time
}

// Volume is the scalar work measure for one entry: sets * reps * weight.
func (r WorkoutRecord) Volume() float64 {
	return float64(r.Sets) * float64(r.Reps) * r.Weight
}

// UserRepository captures credential persistence operations.
type UserRepository interface {
	// CreateUser inserts the row, returning ErrDuplicateUser when the
	// username is taken. The store's uniqueness constraint is the authority;
	// implementations must not rely on a prior existence check.
	CreateUser(ctx context.Context, user User) error
	// FindUserByUsername returns (nil, nil) when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}

// WorkoutRepository captures ledger persistence operations.
type WorkoutRepository interface {
	AppendWorkout(ctx context.Context, record WorkoutRecord) error
	// ListWorkoutsByUser returns the user's full history ordered ascending by
	// (recorded_at, seq). Both read views derive from this one snapshot.
	ListWorkoutsByUser(ctx context.Context, userID string) ([]WorkoutRecord, error)
}
