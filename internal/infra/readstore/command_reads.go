package readstore

import (
	"context"
	"errors"
	"time"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/domain/schedule"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
	"kashikiri-booking/internal/infra/repository/converter"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads loads aggregates and occupancy facts for the write side.
// Running over a Tx gives the reads the transaction's isolation level, which
// is what the confirmation engine's serializable conflict checks depend on.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

const bookingRequestByIDSQL = `
SELECT id, scenario_id, customer_ref, participant_count,
       candidate_slots, requested_store_ids,
       confirmed_store_id, assigned_gm_id, status, rejection_reason,
       created_at, updated_at
FROM booking_requests
WHERE id = $1
`

func (r *CommandReads) BookingRequestByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*booking.BookingRequest, error) {
	sql := bookingRequestByIDSQL
	if forUpdate {
		sql += " FOR UPDATE"
	}

	var (
		rowID, scenarioID              uuid.UUID
		customerRef, status            string
		participantCount               int
		rawSlots                       []byte
		requestedStoreIDs              []uuid.UUID
		confirmedStoreID, assignedGMID *uuid.UUID
		rejectionReason                *string
		createdAt, updatedAt           time.Time
	)
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&rowID, &scenarioID, &customerRef, &participantCount,
		&rawSlots, &requestedStoreIDs,
		&confirmedStoreID, &assignedGMID, &status, &rejectionReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking request by ID", err)
	}

	slots, err := converter.CandidateSlotsFromJSON(rawSlots)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode candidate slots", err)
	}

	return booking.ReconstructBookingRequest(
		rowID, scenarioID, customerRef, participantCount,
		slots, requestedStoreIDs,
		confirmedStoreID, assignedGMID,
		booking.Status(status), rejectionReason,
		createdAt, updatedAt,
	), nil
}

const responseByRequestAndStaffSQL = `
SELECT id, booking_request_id, staff_id, status, selected_orders, notes, responded_at
FROM availability_responses
WHERE booking_request_id = $1 AND staff_id = $2
`

func (r *CommandReads) ResponseByRequestAndStaff(ctx context.Context, requestID, staffID uuid.UUID) (*availability.Response, error) {
	var (
		id, reqID, staff uuid.UUID
		status, notes    string
		selectedOrders   []int32
		respondedAt      *time.Time
	)
	err := r.db.QueryRow(ctx, responseByRequestAndStaffSQL, requestID, staffID).Scan(
		&id, &reqID, &staff, &status, &selectedOrders, &notes, &respondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("availability response not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find availability response", err)
	}

	orders := make([]int, 0, len(selectedOrders))
	for _, o := range selectedOrders {
		orders = append(orders, int(o))
	}

	return availability.ReconstructResponse(
		id, reqID, staff, availability.Status(status), orders, notes, respondedAt,
	), nil
}

const claimedBySQL = `
SELECT staff_id
FROM availability_responses
WHERE booking_request_id = $1 AND status = 'available'
`

func (r *CommandReads) ClaimedBy(ctx context.Context, requestID uuid.UUID) (*uuid.UUID, error) {
	var staffID uuid.UUID
	err := r.db.QueryRow(ctx, claimedBySQL, requestID).Scan(&staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find claiming staff", err)
	}
	return &staffID, nil
}

const storeOccupiedSQL = `
SELECT source, source_id FROM (
    SELECT 'booking_request' AS source, br.id AS source_id
    FROM booking_requests br,
         jsonb_array_elements(br.candidate_slots) cs
    WHERE br.status = 'confirmed'
      AND br.confirmed_store_id = $1
      AND cs->>'date' = $2
      AND cs->>'timeSlot' = $3
      AND br.id <> $4
    UNION ALL
    SELECT 'schedule_event', se.id
    FROM schedule_events se
    WHERE se.owner_kind = 'store'
      AND se.owner_id = $1
      AND se.event_date = $2::date
      AND se.time_slot = $3
) hits
LIMIT 1
`

const gmOccupiedSQL = `
SELECT source, source_id FROM (
    SELECT 'booking_request' AS source, br.id AS source_id
    FROM booking_requests br,
         jsonb_array_elements(br.candidate_slots) cs
    WHERE br.status = 'confirmed'
      AND br.assigned_gm_id = $1
      AND cs->>'date' = $2
      AND cs->>'timeSlot' = $3
      AND br.id <> $4
    UNION ALL
    SELECT 'schedule_event', se.id
    FROM schedule_events se
    WHERE se.owner_kind = 'gm'
      AND se.owner_id = $1
      AND se.event_date = $2::date
      AND se.time_slot = $3
) hits
LIMIT 1
`

func (r *CommandReads) OccupiedBy(ctx context.Context, key schedule.OccupancyKey, excludeRequestID uuid.UUID) (*shared.OccupancyHit, error) {
	sql := storeOccupiedSQL
	if key.Kind == schedule.OwnerGM {
		sql = gmOccupiedSQL
	}

	var hit shared.OccupancyHit
	err := r.db.QueryRow(ctx, sql, key.OwnerID, key.Date, key.Slot.String(), excludeRequestID).Scan(&hit.Source, &hit.SourceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check schedule occupancy", err)
	}
	return &hit, nil
}
