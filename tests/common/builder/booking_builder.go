//go:build unit || e2e

package builder

import (
	"time"

	"kashikiri-booking/internal/domain/booking"
	reqdto "kashikiri-booking/internal/handler/dto/request"
	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingRequestBuilder struct {
	ScenarioID        uuid.UUID
	CustomerRef       string
	ParticipantCount  int
	Candidates        []booking.CandidateSlot
	RequestedStoreIDs []uuid.UUID
	EligibleGMIDs     []uuid.UUID
	CreatedAt         time.Time
}

func NewBookingRequestBuilder() *BookingRequestBuilder {
	return &BookingRequestBuilder{
		ScenarioID:        uuid.New(),
		CustomerRef:       "customer-042",
		ParticipantCount:  6,
		Candidates:        defaultCandidates(),
		RequestedStoreIDs: []uuid.UUID{uuid.New()},
		EligibleGMIDs:     []uuid.UUID{uuid.New(), uuid.New()},
		CreatedAt:         time.Now(),
	}
}

// one candidate per time-slot bucket
func defaultCandidates() []booking.CandidateSlot {
	c1, _ := booking.NewCandidateSlot(1, "2024-01-05", "10:00", "13:00")
	c2, _ := booking.NewCandidateSlot(2, "2024-01-06", "14:00", "17:00")
	c3, _ := booking.NewCandidateSlot(3, "2024-01-07", "19:00", "22:00")
	return []booking.CandidateSlot{c1, c2, c3}
}

func (b *BookingRequestBuilder) With(mutate func(*BookingRequestBuilder)) *BookingRequestBuilder {
	mutate(b)
	return b
}

func (b *BookingRequestBuilder) WithCustomerRef(ref string) *BookingRequestBuilder {
	b.CustomerRef = ref
	return b
}

func (b *BookingRequestBuilder) WithParticipantCount(n int) *BookingRequestBuilder {
	b.ParticipantCount = n
	return b
}

func (b *BookingRequestBuilder) WithEligibleGMs(ids ...uuid.UUID) *BookingRequestBuilder {
	b.EligibleGMIDs = ids
	return b
}

// Build methods
func (b *BookingRequestBuilder) BuildDomain() (*booking.BookingRequest, error) {
	return booking.NewBookingRequest(
		b.ScenarioID, b.CustomerRef, b.ParticipantCount,
		b.Candidates, b.RequestedStoreIDs,
	)
}

func (b *BookingRequestBuilder) BuildCreateCommand() commands.CreateBookingRequest {
	candidates := make([]commands.CandidateSlotInput, 0, len(b.Candidates))
	for _, c := range b.Candidates {
		candidates = append(candidates, commands.CandidateSlotInput{
			Order:     c.Order,
			Date:      c.Date,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return commands.CreateBookingRequest{
		ScenarioID:        b.ScenarioID,
		CustomerRef:       b.CustomerRef,
		ParticipantCount:  b.ParticipantCount,
		Candidates:        candidates,
		RequestedStoreIDs: b.RequestedStoreIDs,
		EligibleGMIDs:     b.EligibleGMIDs,
	}
}

func (b *BookingRequestBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	candidates := make([]reqdto.CandidateSlotInput, 0, len(b.Candidates))
	for _, c := range b.Candidates {
		candidates = append(candidates, reqdto.CandidateSlotInput{
			Order:     c.Order,
			Date:      c.Date,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return reqdto.CreateBookingRequest{
		ScenarioID:        b.ScenarioID,
		CustomerRef:       b.CustomerRef,
		ParticipantCount:  b.ParticipantCount,
		Candidates:        candidates,
		RequestedStoreIDs: b.RequestedStoreIDs,
		EligibleGMIDs:     b.EligibleGMIDs,
	}
}

func (b *BookingRequestBuilder) BuildView(status string) *queries.BookingRequestView {
	slots := make([]queries.CandidateSlotView, 0, len(b.Candidates))
	for _, c := range b.Candidates {
		slots = append(slots, queries.CandidateSlotView{
			Order:     c.Order,
			Date:      c.Date,
			TimeSlot:  c.TimeSlot.String(),
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Status:    string(c.Status),
		})
	}
	return &queries.BookingRequestView{
		ID:                uuid.New(),
		ScenarioID:        b.ScenarioID,
		CustomerRef:       b.CustomerRef,
		ParticipantCount:  b.ParticipantCount,
		Status:            status,
		CandidateSlots:    slots,
		RequestedStoreIDs: b.RequestedStoreIDs,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}

func (b *BookingRequestBuilder) BuildGMPendingItem() *queries.GMPendingItem {
	view := b.BuildView("awaiting_gm")
	return &queries.GMPendingItem{
		ID:               view.ID,
		ScenarioID:       view.ScenarioID,
		CustomerRef:      view.CustomerRef,
		ParticipantCount: view.ParticipantCount,
		CandidateSlots:   view.CandidateSlots,
		CreatedAt:        view.CreatedAt,
	}
}

func (b *BookingRequestBuilder) BuildStoreActionableItem(status string, claimedBy *uuid.UUID) *queries.StoreActionableItem {
	view := b.BuildView(status)
	return &queries.StoreActionableItem{
		ID:               view.ID,
		ScenarioID:       view.ScenarioID,
		CustomerRef:      view.CustomerRef,
		ParticipantCount: view.ParticipantCount,
		Status:           status,
		CandidateSlots:   view.CandidateSlots,
		ClaimedBy:        claimedBy,
		CreatedAt:        view.CreatedAt,
	}
}
