package repository

import (
	"context"

	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
	"kashikiri-booking/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookingRequestRepository struct {
	db db.DBTX
}

func NewBookingRequestRepository(pool db.DBTX) *BookingRequestRepository {
	return &BookingRequestRepository{db: pool}
}

const createBookingRequestSQL = `
INSERT INTO booking_requests (
    id, scenario_id, customer_ref, participant_count,
    candidate_slots, requested_store_ids, status
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

func (r *BookingRequestRepository) Create(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) (uuid.UUID, error) {
	slots, err := converter.CandidateSlotsToJSON(req.CandidateSlots())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode candidate slots", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, createBookingRequestSQL,
		req.ID(), req.ScenarioID(), req.CustomerRef(), req.ParticipantCount(),
		slots, req.RequestedStoreIDs(), req.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking request", err)
	}
	return id, nil
}

const saveClaimSQL = `
UPDATE booking_requests
SET candidate_slots = $2, status = $3, updated_at = now()
WHERE id = $1 AND status = 'awaiting_gm'
`

// SaveClaim is the conditional half of the claim: a concurrent claim that
// committed first leaves the row in awaiting_store, the update matches
// nothing, and the caller gets KindConflict.
func (r *BookingRequestRepository) SaveClaim(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error {
	slots, err := converter.CandidateSlotsToJSON(req.CandidateSlots())
	if err != nil {
		return infra.WrapRepoErr("failed to encode candidate slots", err)
	}

	tag, err := tx.Exec(ctx, saveClaimSQL, req.ID(), slots, req.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to save claim", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request is no longer awaiting GM", nil, infra.KindConflict)
	}
	return nil
}

const saveConfirmationSQL = `
UPDATE booking_requests
SET candidate_slots = $2, status = $3,
    confirmed_store_id = $4, assigned_gm_id = $5, updated_at = now()
WHERE id = $1 AND status IN ('awaiting_gm', 'awaiting_store')
`

func (r *BookingRequestRepository) SaveConfirmation(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error {
	slots, err := converter.CandidateSlotsToJSON(req.CandidateSlots())
	if err != nil {
		return infra.WrapRepoErr("failed to encode candidate slots", err)
	}

	tag, err := tx.Exec(ctx, saveConfirmationSQL,
		req.ID(), slots, req.Status().String(),
		req.ConfirmedStoreID(), req.AssignedGMID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save confirmation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request is already decided", nil, infra.KindConflict)
	}
	return nil
}

const saveRejectionSQL = `
UPDATE booking_requests
SET status = $2, rejection_reason = $3, updated_at = now()
WHERE id = $1 AND status IN ('awaiting_gm', 'awaiting_store')
`

func (r *BookingRequestRepository) SaveRejection(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error {
	tag, err := tx.Exec(ctx, saveRejectionSQL, req.ID(), req.Status().String(), req.RejectionReason())
	if err != nil {
		return infra.WrapRepoErr("failed to save rejection", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request is already decided", nil, infra.KindConflict)
	}
	return nil
}
