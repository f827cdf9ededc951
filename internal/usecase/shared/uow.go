package shared

import (
	"context"
	"time"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/domain/schedule"
	"kashikiri-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-committed transaction for ordinary write operations
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: serializable transaction with retry; the
	// confirmation engine's conflict checks + write must run here
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	BookingRequests() BookingRequestRepository
	AvailabilityResponses() AvailabilityResponseRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	// BookingRequestByID reconstructs the aggregate; forUpdate row-locks it
	// for the remainder of the enclosing transaction.
	BookingRequestByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*booking.BookingRequest, error)
	ResponseByRequestAndStaff(ctx context.Context, requestID, staffID uuid.UUID) (*availability.Response, error)
	// ClaimedBy returns the staff holding the claim on a request, nil if unclaimed.
	ClaimedBy(ctx context.Context, requestID uuid.UUID) (*uuid.UUID, error)
	// OccupiedBy is the occupancy lookup for the confirmation conflict
	// checks. A nil hit means the key's slot is free. excludeRequestID keeps
	// a request from conflicting with itself on re-reads.
	OccupiedBy(ctx context.Context, key schedule.OccupancyKey, excludeRequestID uuid.UUID) (*OccupancyHit, error)
}

// OccupancyHit identifies what already occupies a conflict key: either a
// confirmed booking request or an ordinary schedule event.
type OccupancyHit struct {
	SourceID uuid.UUID
	Source   string // "booking_request" | "schedule_event"
}

type BookingRequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) (uuid.UUID, error)
	// SaveClaim persists an in-memory Claim transition, guarded on the row
	// still being awaiting_gm. A stale guard surfaces as KindConflict.
	SaveClaim(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error
	// SaveConfirmation persists a Confirm transition, guarded on the row
	// being awaiting_gm or awaiting_store.
	SaveConfirmation(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error
	// SaveRejection persists a Reject transition with the same guard.
	SaveRejection(ctx context.Context, tx db.DBTX, req *booking.BookingRequest) error
}

type AvailabilityResponseRepository interface {
	CreatePending(ctx context.Context, tx db.DBTX, resp *availability.Response) error
	// SaveAnswer persists a Pending→Available/AllUnavailable transition,
	// guarded on the row still being pending. The partial unique index on
	// (booking_request_id) WHERE status='available' turns a lost claim race
	// into KindDuplicateKey.
	SaveAnswer(ctx context.Context, tx db.DBTX, resp *availability.Response) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
