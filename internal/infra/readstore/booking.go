package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

const findBookingByIDSQL = `
SELECT id, scenario_id, customer_ref, participant_count, status,
       candidate_slots, requested_store_ids,
       confirmed_store_id, assigned_gm_id, rejection_reason,
       created_at, updated_at
FROM booking_requests
WHERE id = $1
`

const findResponsesByRequestSQL = `
SELECT staff_id, status, selected_orders, notes, responded_at
FROM availability_responses
WHERE booking_request_id = $1
ORDER BY created_at
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingRequestView, error) {
	var (
		view     queries.BookingRequestView
		rawSlots []byte
	)
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID, &view.ScenarioID, &view.CustomerRef, &view.ParticipantCount, &view.Status,
		&rawSlots, &view.RequestedStoreIDs,
		&view.ConfirmedStoreID, &view.AssignedGMID, &view.RejectionReason,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking request by ID", err)
	}

	view.CandidateSlots, err = slotViewsFromJSON(rawSlots)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode candidate slots", err)
	}

	view.Responses, err = r.findResponses(ctx, id)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *BookingReadStore) findResponses(ctx context.Context, requestID uuid.UUID) ([]queries.AvailabilityResponseView, error) {
	rows, err := r.db.Query(ctx, findResponsesByRequestSQL, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability responses", err)
	}
	defer rows.Close()

	var result []queries.AvailabilityResponseView
	for rows.Next() {
		var (
			v      queries.AvailabilityResponseView
			orders []int32
		)
		if err := rows.Scan(&v.StaffID, &v.Status, &orders, &v.Notes, &v.RespondedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability response", err)
		}
		for _, o := range orders {
			v.SelectedOrders = append(v.SelectedOrders, int(o))
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability responses", err)
	}
	return result, nil
}

const findPendingForStaffSQL = `
SELECT br.id, br.scenario_id, br.customer_ref, br.participant_count,
       br.candidate_slots, br.created_at
FROM booking_requests br
JOIN availability_responses ar ON ar.booking_request_id = br.id
WHERE br.status = 'awaiting_gm'
  AND ar.staff_id = $1
  AND ar.status = 'pending'
ORDER BY br.created_at
`

// FindPendingForStaff lists requests still open for this GM to answer.
// Pending rows are created at intake, so the join is the worklist.
func (r *BookingReadStore) FindPendingForStaff(ctx context.Context, staffID uuid.UUID) ([]*queries.GMPendingItem, error) {
	rows, err := r.db.Query(ctx, findPendingForStaffSQL, staffID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find pending requests for staff", err)
	}
	defer rows.Close()

	var result []*queries.GMPendingItem
	for rows.Next() {
		var (
			item     queries.GMPendingItem
			rawSlots []byte
		)
		if err := rows.Scan(&item.ID, &item.ScenarioID, &item.CustomerRef, &item.ParticipantCount, &rawSlots, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pending request", err)
		}
		item.CandidateSlots, err = slotViewsFromJSON(rawSlots)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode candidate slots", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pending requests", err)
	}
	return result, nil
}

const findStoreActionableSQL = `
SELECT br.id, br.scenario_id, br.customer_ref, br.participant_count, br.status,
       br.candidate_slots, ar.staff_id, br.created_at
FROM booking_requests br
LEFT JOIN availability_responses ar
       ON ar.booking_request_id = br.id AND ar.status = 'available'
WHERE br.status IN ('awaiting_gm', 'awaiting_store')
ORDER BY br.created_at
`

func (r *BookingReadStore) FindStoreActionable(ctx context.Context) ([]*queries.StoreActionableItem, error) {
	rows, err := r.db.Query(ctx, findStoreActionableSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find actionable requests", err)
	}
	defer rows.Close()

	var result []*queries.StoreActionableItem
	for rows.Next() {
		var (
			item     queries.StoreActionableItem
			rawSlots []byte
		)
		if err := rows.Scan(&item.ID, &item.ScenarioID, &item.CustomerRef, &item.ParticipantCount, &item.Status, &rawSlots, &item.ClaimedBy, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan actionable request", err)
		}
		item.CandidateSlots, err = slotViewsFromJSON(rawSlots)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode candidate slots", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read actionable requests", err)
	}
	return result, nil
}

// slot docs are stored camelCase; views expose snake_case
type slotDoc struct {
	Order     int    `json:"order"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

func slotViewsFromJSON(raw []byte) ([]queries.CandidateSlotView, error) {
	var docs []slotDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	views := make([]queries.CandidateSlotView, 0, len(docs))
	for _, d := range docs {
		views = append(views, queries.CandidateSlotView{
			Order:     d.Order,
			Date:      d.Date,
			TimeSlot:  d.TimeSlot,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Status:    d.Status,
		})
	}
	return views, nil
}
