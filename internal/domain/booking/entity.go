package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCandidates         = errors.New("request needs at least one candidate slot")
	ErrDuplicateOrder       = errors.New("candidate orders must be unique")
	ErrInvalidParticipants  = errors.New("participant count must be positive")
	ErrEmptyCustomerRef     = errors.New("customer reference cannot be empty")
	ErrEmptySelection       = errors.New("selection needs at least one candidate order")
	ErrUnknownCandidate     = errors.New("candidate order not found in request")
	ErrNotAwaitingGM        = errors.New("request is not awaiting GM responses")
	ErrNotConfirmable       = errors.New("request can no longer be confirmed")
	ErrAlreadyTerminal      = errors.New("request is already confirmed or rejected")
	ErrEmptyRejectionReason = errors.New("rejection reason cannot be empty")
	ErrMissingStore         = errors.New("confirmation needs a store")
	ErrMissingGM            = errors.New("confirmation needs a game master")
)

// BookingRequest is the private ("kashikiri") booking aggregate. Intake
// creates it in awaiting_gm; the only mutations afterwards are Claim,
// Confirm and Reject, each of which guards its own transition.
type BookingRequest struct {
	id                uuid.UUID
	scenarioID        uuid.UUID
	customerRef       string
	participantCount  int
	candidateSlots    []CandidateSlot
	requestedStoreIDs []uuid.UUID
	confirmedStoreID  *uuid.UUID
	assignedGMID      *uuid.UUID
	status            Status
	rejectionReason   *string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBookingRequest(
	scenarioID uuid.UUID,
	customerRef string,
	participantCount int,
	candidates []CandidateSlot,
	requestedStoreIDs []uuid.UUID,
) (*BookingRequest, error) {
	if strings.TrimSpace(customerRef) == "" {
		return nil, ErrEmptyCustomerRef
	}
	if participantCount <= 0 {
		return nil, ErrInvalidParticipants
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	seen := make(map[int]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Order]; dup {
			return nil, ErrDuplicateOrder
		}
		seen[c.Order] = struct{}{}
	}
	// An omitted store filter means any store. Keep it a concrete empty
	// array: the NOT NULL uuid[] column must never see SQL NULL.
	if requestedStoreIDs == nil {
		requestedStoreIDs = []uuid.UUID{}
	}

	return &BookingRequest{
		id:                uuid.New(),
		scenarioID:        scenarioID,
		customerRef:       strings.TrimSpace(customerRef),
		participantCount:  participantCount,
		candidateSlots:    candidates,
		requestedStoreIDs: requestedStoreIDs,
		status:            StatusAwaitingGM,
	}, nil
}

func ReconstructBookingRequest(
	id, scenarioID uuid.UUID,
	customerRef string,
	participantCount int,
	candidates []CandidateSlot,
	requestedStoreIDs []uuid.UUID,
	confirmedStoreID, assignedGMID *uuid.UUID,
	status Status,
	rejectionReason *string,
	createdAt, updatedAt time.Time,
) *BookingRequest {
	return &BookingRequest{
		id:                id,
		scenarioID:        scenarioID,
		customerRef:       customerRef,
		participantCount:  participantCount,
		candidateSlots:    candidates,
		requestedStoreIDs: requestedStoreIDs,
		confirmedStoreID:  confirmedStoreID,
		assignedGMID:      assignedGMID,
		status:            status,
		rejectionReason:   rejectionReason,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Claim records that a GM can run some of the proposed slots. The candidate
// list is pruned to exactly the selected orders and the request moves to
// store review. The caller is responsible for the cross-staff atomicity of
// the claim itself (conditional update plus the partial unique index).
func (r *BookingRequest) Claim(selectedOrders []int) error {
	if r.status != StatusAwaitingGM {
		return ErrNotAwaitingGM
	}
	if len(selectedOrders) == 0 {
		return ErrEmptySelection
	}

	byOrder := make(map[int]CandidateSlot, len(r.candidateSlots))
	for _, c := range r.candidateSlots {
		byOrder[c.Order] = c
	}

	pruned := make([]CandidateSlot, 0, len(selectedOrders))
	seen := make(map[int]struct{}, len(selectedOrders))
	for _, order := range selectedOrders {
		if _, dup := seen[order]; dup {
			continue
		}
		seen[order] = struct{}{}
		c, ok := byOrder[order]
		if !ok {
			return ErrUnknownCandidate
		}
		pruned = append(pruned, c)
	}

	r.candidateSlots = pruned
	r.status = StatusAwaitingStore
	return nil
}

// Confirm commits the request to a single slot, store and GM. Occupancy
// conflict checks live outside the aggregate; this only enforces the state
// machine and candidate identity.
func (r *BookingRequest) Confirm(finalOrder int, storeID, gmID uuid.UUID) error {
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if r.status != StatusAwaitingGM && r.status != StatusAwaitingStore {
		return ErrNotConfirmable
	}
	if storeID == uuid.Nil {
		return ErrMissingStore
	}
	if gmID == uuid.Nil {
		return ErrMissingGM
	}

	final, ok := r.CandidateByOrder(finalOrder)
	if !ok {
		return ErrUnknownCandidate
	}

	final.Status = SlotConfirmed
	r.candidateSlots = []CandidateSlot{final}
	r.confirmedStoreID = &storeID
	r.assignedGMID = &gmID
	r.status = StatusConfirmed
	return nil
}

// Reject is the only terminal "no" — cancellations also land here.
func (r *BookingRequest) Reject(reason string) error {
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyRejectionReason
	}
	r.rejectionReason = &reason
	r.status = StatusRejected
	return nil
}

func (r *BookingRequest) CandidateByOrder(order int) (CandidateSlot, bool) {
	for _, c := range r.candidateSlots {
		if c.Order == order {
			return c, true
		}
	}
	return CandidateSlot{}, false
}

func (r *BookingRequest) ID() uuid.UUID                { return r.id }
func (r *BookingRequest) ScenarioID() uuid.UUID        { return r.scenarioID }
func (r *BookingRequest) CustomerRef() string          { return r.customerRef }
func (r *BookingRequest) ParticipantCount() int        { return r.participantCount }
func (r *BookingRequest) CandidateSlots() []CandidateSlot {
	out := make([]CandidateSlot, len(r.candidateSlots))
	copy(out, r.candidateSlots)
	return out
}
func (r *BookingRequest) RequestedStoreIDs() []uuid.UUID { return r.requestedStoreIDs }
func (r *BookingRequest) ConfirmedStoreID() *uuid.UUID   { return r.confirmedStoreID }
func (r *BookingRequest) AssignedGMID() *uuid.UUID       { return r.assignedGMID }
func (r *BookingRequest) Status() Status                 { return r.status }
func (r *BookingRequest) RejectionReason() *string       { return r.rejectionReason }
func (r *BookingRequest) CreatedAt() time.Time           { return r.createdAt }
func (r *BookingRequest) UpdatedAt() time.Time           { return r.updatedAt }
