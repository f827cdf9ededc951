package commands

import (
	"context"
	"errors"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/pkg/clock"
	"kashikiri-booking/internal/pkg/errs"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound       = errs.New("booking request not found")
	ErrResponseNotFound      = errs.New("staff is not eligible for this request")
	ErrAlreadyClaimed        = errs.New("request already claimed by another GM")
	ErrAlreadyResponded      = errs.New("availability already submitted")
	ErrRequestAlreadyDecided = errs.New("request is already confirmed or rejected")
)

type SubmitAvailabilityRequest struct {
	RequestID      uuid.UUID
	StaffID        uuid.UUID
	Available      bool
	SelectedOrders []int
	Notes          string
}

type AvailabilityCommands interface {
	SubmitAvailability(ctx context.Context, req SubmitAvailabilityRequest) error
}

type availabilityUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAvailabilityUseCase(uow shared.UnitOfWork, clk clock.Clock) AvailabilityCommands {
	return &availabilityUseCaseImpl{uow: uow, clock: clk}
}

// SubmitAvailability records a GM's answer. The first "available" wins the
// claim and moves the request to store review; every answer after the claim
// is audit-only. Losing the race surfaces as ErrAlreadyClaimed, double
// submission as ErrAlreadyResponded.
func (uc *availabilityUseCaseImpl) SubmitAvailability(ctx context.Context, req SubmitAvailabilityRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		request, err := tx.Reads().BookingRequestByID(ctx, req.RequestID, true)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRequestNotFound)
			}
			return err
		}

		resp, err := tx.Reads().ResponseByRequestAndStaff(ctx, req.RequestID, req.StaffID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrResponseNotFound)
			}
			return err
		}

		if request.Status().IsTerminal() {
			return ErrRequestAlreadyDecided
		}

		if !req.Available {
			return uc.recordAllUnavailable(ctx, tx, resp, req.Notes)
		}

		if request.Status() != booking.StatusAwaitingGM {
			return ErrAlreadyClaimed
		}

		if err := resp.MarkAvailable(req.SelectedOrders, req.Notes, uc.clock.Now()); err != nil {
			return mapResponseErr(err)
		}
		if err := request.Claim(req.SelectedOrders); err != nil {
			return err
		}

		if err := tx.AvailabilityResponses().SaveAnswer(ctx, tx.DB(), resp); err != nil {
			// The partial unique index fires when a concurrent "available"
			// committed between our read and this write.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrAlreadyClaimed)
			}
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrAlreadyResponded)
			}
			return err
		}
		if err := tx.BookingRequests().SaveClaim(ctx, tx.DB(), request); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrAlreadyClaimed)
			}
			return err
		}

		return enqueueNotification(ctx, tx, uc.clock, topicRequestClaimed, request.ID())
	})
}

// recordAllUnavailable never touches the request: a peer's "no" after the
// claim stays in the audit trail without disturbing store review.
func (uc *availabilityUseCaseImpl) recordAllUnavailable(ctx context.Context, tx shared.Tx, resp *availability.Response, notes string) error {
	if err := resp.MarkAllUnavailable(notes, uc.clock.Now()); err != nil {
		return mapResponseErr(err)
	}
	if err := tx.AvailabilityResponses().SaveAnswer(ctx, tx.DB(), resp); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrAlreadyResponded)
		}
		return err
	}
	return nil
}

func mapResponseErr(err error) error {
	if errors.Is(err, availability.ErrAlreadyResponded) {
		return errs.Mark(err, ErrAlreadyResponded)
	}
	return err
}
