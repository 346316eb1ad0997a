// Package memory stores accounts and workouts in memory for unit tests and
// local development.
package memory

import (
	"context"
	"sync"

	"example.com/workoutledger/internal/domain"
)

// Store implements the domain repositories over in-process maps.
type Store struct {
	mu      sync.RWMutex
	byName  map[string]domain.User
	ledgers map[string][]domain.WorkoutRecord
	nextSeq int64
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		byName:  make(map[string]domain.User),
		ledgers: make(map[string][]domain.WorkoutRecord),
	}
}

// CreateUser implements domain.UserRepository. The existence check and insert
// happen under one lock, mirroring the database's constraint atomicity.
func (s *Store) CreateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return domain.ErrDuplicateUser
	}
	s.byName[user.Username] = user
	return nil
}

// FindUserByUsername implements domain.UserRepository.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byName[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// AppendWorkout implements domain.WorkoutRepository.
func (s *Store) AppendWorkout(ctx context.Context, record domain.WorkoutRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	record.Seq = s.nextSeq
	s.ledgers[record.UserID] = append(s.ledgers[record.UserID], record)
	return nil
}

// ListWorkoutsByUser implements domain.WorkoutRepository, returning a copy
// ordered ascending by (recorded_at, seq). Appends always carry increasing
// seq, so insertion order is already that order.
func (s *Store) ListWorkoutsByUser(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := s.ledgers[userID]
	out := make([]domain.WorkoutRecord, len(ledger))
	copy(out, ledger)
	return out, nil
}
