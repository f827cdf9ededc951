package commands

import (
	"context"
	"fmt"

	"kashikiri-booking/internal/domain/schedule"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/pkg/clock"
	"kashikiri-booking/internal/pkg/errs"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAssigneeRequired = errs.New("confirming an unclaimed request needs an explicit GM")

// DefaultRejectionTemplate is a client convenience for the store UI. It is
// never auto-filled server-side: an empty reason is still a validation error.
const DefaultRejectionTemplate = "申し訳ございませんが、ご希望の日程では貸切公演の開催ができません。別の日程をご検討いただけますと幸いです。"

const (
	ConflictReasonStoreOccupied = "store_occupied"
	ConflictReasonGMOccupied    = "gm_occupied"
)

// ConflictError reports the exact occupancy that blocked a confirmation.
type ConflictError struct {
	Reason        string
	ConflictingID uuid.UUID
	Source        string
	Date          string
	TimeSlot      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict (%s): %s %s occupies %s %s",
		e.Reason, e.Source, e.ConflictingID, e.Date, e.TimeSlot)
}

type ConfirmRequest struct {
	RequestID  uuid.UUID
	FinalOrder int
	StoreID    uuid.UUID
	// GMID is only consulted when no GM has claimed the request (forced
	// decision); a claim always wins.
	GMID *uuid.UUID
}

type RejectRequest struct {
	RequestID uuid.UUID
	Reason    string
}

type ConfirmationCommands interface {
	Confirm(ctx context.Context, req ConfirmRequest) error
	Reject(ctx context.Context, req RejectRequest) error
}

type confirmationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewConfirmationUseCase(uow shared.UnitOfWork, clk clock.Clock) ConfirmationCommands {
	return &confirmationUseCaseImpl{uow: uow, clock: clk}
}

// Confirm commits the request to one slot, one store and one GM. The
// occupancy checks and the status write share a serializable transaction, so
// two confirmations racing for the same slot cannot both commit.
func (uc *confirmationUseCaseImpl) Confirm(ctx context.Context, req ConfirmRequest) error {
	return uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		request, err := tx.Reads().BookingRequestByID(ctx, req.RequestID, true)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRequestNotFound)
			}
			return err
		}

		gmID, err := uc.resolveGM(ctx, tx, req)
		if err != nil {
			return err
		}

		final, ok := request.CandidateByOrder(req.FinalOrder)
		if !ok {
			// Let the aggregate produce the precise state/validation error.
			return request.Confirm(req.FinalOrder, req.StoreID, gmID)
		}

		checks := []struct {
			key    schedule.OccupancyKey
			reason string
		}{
			{schedule.StoreKey(req.StoreID, final.Date, final.TimeSlot), ConflictReasonStoreOccupied},
			{schedule.GMKey(gmID, final.Date, final.TimeSlot), ConflictReasonGMOccupied},
		}
		for _, check := range checks {
			hit, herr := tx.Reads().OccupiedBy(ctx, check.key, request.ID())
			if herr != nil {
				return herr
			}
			if hit != nil {
				return &ConflictError{
					Reason:        check.reason,
					ConflictingID: hit.SourceID,
					Source:        hit.Source,
					Date:          final.Date,
					TimeSlot:      final.TimeSlot.String(),
				}
			}
		}

		if err := request.Confirm(req.FinalOrder, req.StoreID, gmID); err != nil {
			return err
		}
		if err := tx.BookingRequests().SaveConfirmation(ctx, tx.DB(), request); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrRequestAlreadyDecided)
			}
			return err
		}

		return enqueueNotification(ctx, tx, uc.clock, topicRequestConfirmed, request.ID())
	})
}

func (uc *confirmationUseCaseImpl) resolveGM(ctx context.Context, tx shared.Tx, req ConfirmRequest) (uuid.UUID, error) {
	claimedBy, err := tx.Reads().ClaimedBy(ctx, req.RequestID)
	if err != nil {
		return uuid.Nil, err
	}
	if claimedBy != nil {
		return *claimedBy, nil
	}
	if req.GMID == nil || *req.GMID == uuid.Nil {
		return uuid.Nil, ErrAssigneeRequired
	}
	return *req.GMID, nil
}

func (uc *confirmationUseCaseImpl) Reject(ctx context.Context, req RejectRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		request, err := tx.Reads().BookingRequestByID(ctx, req.RequestID, true)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRequestNotFound)
			}
			return err
		}

		if err := request.Reject(req.Reason); err != nil {
			return err
		}
		if err := tx.BookingRequests().SaveRejection(ctx, tx.DB(), request); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrRequestAlreadyDecided)
			}
			return err
		}

		return enqueueNotification(ctx, tx, uc.clock, topicRequestRejected, request.ID())
	})
}
