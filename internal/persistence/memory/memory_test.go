package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/workoutledger/internal/domain"
)

func TestConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const attempts = 16
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.CreateUser(ctx, domain.User{
				ID:           uuid.NewString(),
				Username:     "alice",
				PasswordHash: "hash",
				CreatedAt:    time.Now().UTC(),
			})
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateUser):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	require.Equal(t, 1, successes, "exactly one registration may win")
	require.Equal(t, attempts-1, duplicates)
}

func TestLedgerIsPerUserAndOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now().UTC()

	for i, weight := range []float64{40, 50, 45} {
		err := store.AppendWorkout(ctx, domain.WorkoutRecord{
			ID:         uuid.NewString(),
			UserID:     "alice",
			Exercise:   "Bench press",
			Sets:       3,
			Reps:       8,
			Weight:     weight,
			RecordedAt: now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	err := store.AppendWorkout(ctx, domain.WorkoutRecord{
		ID:         uuid.NewString(),
		UserID:     "bob",
		Exercise:   "Squat",
		Sets:       5,
		Reps:       5,
		Weight:     100,
		RecordedAt: now,
	})
	require.NoError(t, err)

	alice, err := store.ListWorkoutsByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 3)
	require.Equal(t, 40.0, alice[0].Weight)
	require.Equal(t, 45.0, alice[2].Weight)
	require.Less(t, alice[0].Seq, alice[1].Seq)

	bob, err := store.ListWorkoutsByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob, 1)
}

func TestFindUserByUsernameAbsent(t *testing.T) {
	store := NewStore()
	user, err := store.FindUserByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, user)
}
