package repository

import (
	"context"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
)

type AvailabilityResponseRepository struct {
	db db.DBTX
}

func NewAvailabilityResponseRepository(pool db.DBTX) *AvailabilityResponseRepository {
	return &AvailabilityResponseRepository{db: pool}
}

const createPendingResponseSQL = `
INSERT INTO availability_responses (id, booking_request_id, staff_id, status)
VALUES ($1, $2, $3, $4)
`

func (r *AvailabilityResponseRepository) CreatePending(ctx context.Context, tx db.DBTX, resp *availability.Response) error {
	_, err := tx.Exec(ctx, createPendingResponseSQL,
		resp.ID(), resp.BookingRequestID(), resp.StaffID(), resp.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create pending availability response", err)
	}
	return nil
}

const saveAnswerSQL = `
UPDATE availability_responses
SET status = $3, selected_orders = $4, notes = $5, responded_at = $6, updated_at = now()
WHERE booking_request_id = $1 AND staff_id = $2 AND status = 'pending'
`

// SaveAnswer relies on two guards: the status predicate rejects double
// submission, and the partial unique index on (booking_request_id) WHERE
// status = 'available' makes a second concurrent "available" fail with a
// unique violation.
func (r *AvailabilityResponseRepository) SaveAnswer(ctx context.Context, tx db.DBTX, resp *availability.Response) error {
	orders := make([]int32, 0, len(resp.SelectedOrders()))
	for _, o := range resp.SelectedOrders() {
		orders = append(orders, int32(o))
	}

	tag, err := tx.Exec(ctx, saveAnswerSQL,
		resp.BookingRequestID(), resp.StaffID(),
		resp.Status().String(), orders, resp.Notes(), resp.RespondedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save availability answer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("availability response already submitted", nil, infra.KindConflict)
	}
	return nil
}
