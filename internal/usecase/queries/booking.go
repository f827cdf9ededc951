package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingRequestView struct {
	ID                uuid.UUID                  `json:"id"`
	ScenarioID        uuid.UUID                  `json:"scenario_id"`
	CustomerRef       string                     `json:"customer_ref"`
	ParticipantCount  int                        `json:"participant_count"`
	Status            string                     `json:"status"`
	CandidateSlots    []CandidateSlotView        `json:"candidate_slots"`
	RequestedStoreIDs []uuid.UUID                `json:"requested_store_ids"`
	ConfirmedStoreID  *uuid.UUID                 `json:"confirmed_store_id,omitempty"`
	AssignedGMID      *uuid.UUID                 `json:"assigned_gm_id,omitempty"`
	RejectionReason   *string                    `json:"rejection_reason,omitempty"`
	Responses         []AvailabilityResponseView `json:"responses"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

type CandidateSlotView struct {
	Order     int    `json:"order"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type AvailabilityResponseView struct {
	StaffID        uuid.UUID  `json:"staff_id"`
	Status         string     `json:"status"`
	SelectedOrders []int      `json:"selected_orders,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
}

// GMPendingItem is one request on a GM's to-answer list: still awaiting_gm
// and without an answer from this staff member.
type GMPendingItem struct {
	ID               uuid.UUID           `json:"id"`
	ScenarioID       uuid.UUID           `json:"scenario_id"`
	CustomerRef      string              `json:"customer_ref"`
	ParticipantCount int                 `json:"participant_count"`
	CandidateSlots   []CandidateSlotView `json:"candidate_slots"`
	CreatedAt        time.Time           `json:"created_at"`
}

// StoreActionableItem is a request the store approver can act on. Claimed
// requests carry the claiming GM so the approver knows who would run the game.
type StoreActionableItem struct {
	ID               uuid.UUID           `json:"id"`
	ScenarioID       uuid.UUID           `json:"scenario_id"`
	CustomerRef      string              `json:"customer_ref"`
	ParticipantCount int                 `json:"participant_count"`
	Status           string              `json:"status"`
	CandidateSlots   []CandidateSlotView `json:"candidate_slots"`
	ClaimedBy        *uuid.UUID          `json:"claimed_by,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingRequestView, error)
	ListPendingForStaff(ctx context.Context, staffID uuid.UUID) ([]*GMPendingItem, error)
	ListStoreActionable(ctx context.Context) ([]*StoreActionableItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRequestView, error)
	FindPendingForStaff(ctx context.Context, staffID uuid.UUID) ([]*GMPendingItem, error)
	FindStoreActionable(ctx context.Context) ([]*StoreActionableItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingRequestView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListPendingForStaff(ctx context.Context, staffID uuid.UUID) ([]*GMPendingItem, error) {
	return q.repo.FindPendingForStaff(ctx, staffID)
}

func (q *bookingQueriesImpl) ListStoreActionable(ctx context.Context) ([]*StoreActionableItem, error) {
	return q.repo.FindStoreActionable(ctx)
}
