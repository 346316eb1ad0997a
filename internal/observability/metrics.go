package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	accountsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_ledger",
		Subsystem: "accounts",
		Name:      "registered_total",
		Help:      "Number of accounts created since process start.",
	})
	loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_ledger",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	workoutsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_ledger",
		Subsystem: "ledger",
		Name:      "workouts_recorded_total",
		Help:      "Number of workout records appended to the ledger.",
	})
	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_ledger",
		Subsystem: "ledger",
		Name:      "last_workout_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(accountsRegistered, loginAttempts, workoutsRecorded, workoutPersistGauge)
}

// RecordAccountRegistered increments the registration counter.
func RecordAccountRegistered() {
	accountsRegistered.Inc()
}

// RecordLogin tracks a login attempt outcome.
func RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordWorkoutPersisted updates the ledger watermark gauge and counter.
func RecordWorkoutPersisted(ts time.Time) {
	workoutsRecorded.Inc()
	if ts.IsZero() {
		return
	}
	workoutPersistGauge.Set(float64(ts.Unix()))
}
