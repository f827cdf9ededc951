package commands

import (
	"context"
	"encoding/json"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/pkg/clock"
	"kashikiri-booking/internal/pkg/errs"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoEligibleGMs = errs.New("request needs at least one eligible GM")

const (
	notificationKindEmail = "email"

	topicRequestCreated   = "booking_request.created"
	topicRequestClaimed   = "booking_request.claimed"
	topicRequestConfirmed = "booking_request.confirmed"
	topicRequestRejected  = "booking_request.rejected"
)

type CreateBookingRequest struct {
	ScenarioID        uuid.UUID
	CustomerRef       string
	ParticipantCount  int
	Candidates        []CandidateSlotInput
	RequestedStoreIDs []uuid.UUID
	EligibleGMIDs     []uuid.UUID
}

type CandidateSlotInput struct {
	Order     int
	Date      string
	StartTime string
	EndTime   string
}

type CreateBookingResult struct {
	RequestID uuid.UUID
}

type IntakeCommands interface {
	CreateRequest(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
}

type intakeUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewIntakeUseCase(uow shared.UnitOfWork, clk clock.Clock) IntakeCommands {
	return &intakeUseCaseImpl{uow: uow, clock: clk}
}

// CreateRequest opens the approval flow: the request lands in awaiting_gm
// with one pending availability row per eligible GM, and the delivery worker
// picks up the intake notification from notification_jobs.
func (uc *intakeUseCaseImpl) CreateRequest(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	if len(req.EligibleGMIDs) == 0 {
		return nil, ErrNoEligibleGMs
	}

	candidates := make([]booking.CandidateSlot, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		slot, err := booking.NewCandidateSlot(c.Order, c.Date, c.StartTime, c.EndTime)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, slot)
	}

	request, err := booking.NewBookingRequest(
		req.ScenarioID, req.CustomerRef, req.ParticipantCount,
		candidates, req.RequestedStoreIDs,
	)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.BookingRequests().Create(ctx, tx.DB(), request); derr != nil {
			return derr
		}

		seen := make(map[uuid.UUID]struct{}, len(req.EligibleGMIDs))
		for _, gmID := range req.EligibleGMIDs {
			if _, dup := seen[gmID]; dup {
				continue
			}
			seen[gmID] = struct{}{}
			resp := availability.NewPendingResponse(request.ID(), gmID)
			if derr := tx.AvailabilityResponses().CreatePending(ctx, tx.DB(), resp); derr != nil {
				return derr
			}
		}

		return enqueueNotification(ctx, tx, uc.clock, topicRequestCreated, request.ID())
	})
	if err != nil {
		return nil, err
	}

	return &CreateBookingResult{RequestID: request.ID()}, nil
}

func enqueueNotification(ctx context.Context, tx shared.Tx, clk clock.Clock, topic string, requestID uuid.UUID) error {
	payload, err := json.Marshal(map[string]string{"booking_request_id": requestID.String()})
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification payload")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindEmail, topic, payload, clk.Now())
}
