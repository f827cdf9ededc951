//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE booking_requests,
		         availability_responses,
		         schedule_events,
		         notification_jobs
		CASCADE`)
	return err
}

// SeedScheduleEvent inserts an ordinary (non-kashikiri) occupancy row.
func SeedScheduleEvent(pool *pgxpool.Pool, ownerKind string, ownerID uuid.UUID, date, timeSlot, title string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO schedule_events (id, owner_kind, owner_id, event_date, time_slot, title)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, ownerKind, ownerID, date, timeSlot, title)
	return id, err
}

// CountNotificationJobs returns how many queued jobs exist for a topic.
func CountNotificationJobs(pool *pgxpool.Pool, topic string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM notification_jobs WHERE topic = $1`, topic).Scan(&n)
	return n, err
}
