// Package domain defines the business logic for the workout ledger service.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// timingPad is compared against when a login names an unknown user, so the
// missing-user path costs one bcrypt verification just like the wrong-password
// path. Both paths return the identical ErrInvalidCredentials.
var timingPad, _ = bcrypt.GenerateFromPassword([]byte("workout-ledger-timing-pad"), bcrypt.DefaultCost)

// Service is the facade composing the credential store, the workout ledger
// and the aggregation engine.
type Service struct {
	users      UserRepository
	workouts   WorkoutRepository
	bcryptCost int
}

// NewService constructs a Service.
func NewService(users UserRepository, workouts WorkoutRepository, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, workouts: workouts, bcryptCost: bcryptCost}
}

// RegisterAccount hashes the password and persists a new user row. The
// repository's uniqueness constraint decides duplicate usernames.
func (s *Service) RegisterAccount(ctx context.Context, username, password, email string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrMalformedRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// VerifyCredentials resolves a username/password pair to a user ID. Unknown
// usernames and wrong passwords fail with the same error value.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(timingPad, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return user.ID, nil
}

// RecordWorkoutInput captures the payload from the API layer.
type RecordWorkoutInput struct {
	Exercise string
	Sets     int
	Reps     int
	Weight   float64
	Note     string
}

// Validate checks the ingestion invariants before any storage access.
func (in RecordWorkoutInput) Validate() error {
	if strings.TrimSpace(in.Exercise) == "" {
		return fmt.Errorf("%w: exercise is required", ErrInvalidWorkoutData)
	}
	if in.Sets <= 0 {
		return fmt.Errorf("%w: sets must be > 0", ErrInvalidWorkoutData)
	}
	if in.Reps <= 0 {
		return fmt.Errorf("%w: reps must be > 0", ErrInvalidWorkoutData)
	}
	if in.Weight < 0 {
		return fmt.Errorf("%w: weight must be >= 0", ErrInvalidWorkoutData)
	}
	return nil
}

// RecordWorkout appends one entry to the user's ledger with a server-assigned
// timestamp. Repeated identical entries are legitimate; there is no dedup.
func (s *Service) RecordWorkout(ctx context.Context, userID string, input RecordWorkoutInput) (*WorkoutRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	record := WorkoutRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		Exercise:   input.Exercise,
		Sets:       input.Sets,
		Reps:       input.Reps,
		Weight:     input.Weight,
		Note:       input.Note,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.workouts.AppendWorkout(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListWorkouts returns the user's full history, most recent first.
func (s *Service) ListWorkouts(ctx context.Context, userID string) ([]WorkoutRecord, error) {
	ascending, err := s.workouts.ListWorkoutsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	descending := make([]WorkoutRecord, len(ascending))
	for i, r := range ascending {
		descending[len(ascending)-1-i] = r
	}
	return descending, nil
}

// WorkoutSummary recomputes the read-side aggregates from the user's current
// ledger contents. Nothing derived is ever stored, so the aggregates cannot
// drift from the ledger.
func (s *Service) WorkoutSummary(ctx context.Context, userID string) (Summary, error) {
	ascending, err := s.workouts.ListWorkoutsByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(ascending), nil
}
