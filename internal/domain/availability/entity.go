package availability

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySelection   = errors.New("available response needs at least one candidate order")
	ErrAlreadyResponded = errors.New("availability response already submitted")
)

// Status of a single GM's answer to a booking request. One row exists per
// (request, staff); rows start Pending when the request is created.
type Status string

const (
	StatusPending        Status = "pending"
	StatusAvailable      Status = "available"
	StatusAllUnavailable Status = "all_unavailable"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAvailable, StatusAllUnavailable:
		return true
	default:
		return false
	}
}

// Response is one GM's answer. SelectedOrders and Notes are audit/display
// data; the claim side effect on the request is handled by the aggregate.
type Response struct {
	id               uuid.UUID
	bookingRequestID uuid.UUID
	staffID          uuid.UUID
	status           Status
	selectedOrders   []int
	notes            string
	respondedAt      *time.Time
}

func NewPendingResponse(bookingRequestID, staffID uuid.UUID) *Response {
	return &Response{
		id:               uuid.New(),
		bookingRequestID: bookingRequestID,
		staffID:          staffID,
		status:           StatusPending,
	}
}

func ReconstructResponse(
	id, bookingRequestID, staffID uuid.UUID,
	status Status,
	selectedOrders []int,
	notes string,
	respondedAt *time.Time,
) *Response {
	return &Response{
		id:               id,
		bookingRequestID: bookingRequestID,
		staffID:          staffID,
		status:           status,
		selectedOrders:   selectedOrders,
		notes:            notes,
		respondedAt:      respondedAt,
	}
}

// MarkAvailable records the GM's slot selection. Resubmission is rejected;
// an answer is given exactly once.
func (r *Response) MarkAvailable(selectedOrders []int, notes string, now time.Time) error {
	if r.status != StatusPending {
		return ErrAlreadyResponded
	}
	if len(selectedOrders) == 0 {
		return ErrEmptySelection
	}
	r.status = StatusAvailable
	r.selectedOrders = selectedOrders
	r.notes = notes
	r.respondedAt = &now
	return nil
}

func (r *Response) MarkAllUnavailable(notes string, now time.Time) error {
	if r.status != StatusPending {
		return ErrAlreadyResponded
	}
	r.status = StatusAllUnavailable
	r.selectedOrders = nil
	r.notes = notes
	r.respondedAt = &now
	return nil
}

func (r *Response) ID() uuid.UUID               { return r.id }
func (r *Response) BookingRequestID() uuid.UUID { return r.bookingRequestID }
func (r *Response) StaffID() uuid.UUID          { return r.staffID }
func (r *Response) Status() Status              { return r.status }
func (r *Response) SelectedOrders() []int       { return r.selectedOrders }
func (r *Response) Notes() string               { return r.notes }
func (r *Response) RespondedAt() *time.Time     { return r.respondedAt }
