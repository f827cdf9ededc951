package queries

import (
	"context"

	"kashikiri-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// OccupancyEntry is one occupied (owner, date, slot) key in the projected
// schedule: the union of confirmed booking requests and schedule events.
type OccupancyEntry struct {
	OwnerKind string    `json:"owner_kind"` // "store" | "gm"
	OwnerID   uuid.UUID `json:"owner_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Source    string    `json:"source"` // "booking_request" | "schedule_event"
	SourceID  uuid.UUID `json:"source_id"`
}

var ErrInvalidDateRange = errs.New("from must not be after to")

type OccupancyQueries interface {
	ListBetween(ctx context.Context, from, to string) ([]*OccupancyEntry, error)
}

type OccupancyViewRepo interface {
	FindBetween(ctx context.Context, from, to string) ([]*OccupancyEntry, error)
}

type occupancyQueriesImpl struct {
	repo OccupancyViewRepo
}

func NewOccupancyQueries(repo OccupancyViewRepo) OccupancyQueries {
	return &occupancyQueriesImpl{repo: repo}
}

func (q *occupancyQueriesImpl) ListBetween(ctx context.Context, from, to string) ([]*OccupancyEntry, error) {
	if from > to {
		return nil, ErrInvalidDateRange
	}
	return q.repo.FindBetween(ctx, from, to)
}
