//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/pkg/clock"
	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCommands_Confirm(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC)

	t.Run("claimed request is confirmed with the claiming GM", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		claimingGM := uuid.New()
		storeID := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &claimingGM

		// An explicit gm_id in the payload must lose to the claim.
		otherGM := uuid.New()
		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 1,
			StoreID:    storeID,
			GMID:       &otherGM,
		})
		require.NoError(t, err)
		assert.True(t, uow.serializableInvoked)

		saved := uow.tx.bookings.confirmSaved
		require.NotNil(t, saved)
		assert.Equal(t, booking.StatusConfirmed, saved.Status())
		require.NotNil(t, saved.ConfirmedStoreID())
		assert.Equal(t, storeID, *saved.ConfirmedStoreID())
		require.NotNil(t, saved.AssignedGMID())
		assert.Equal(t, claimingGM, *saved.AssignedGMID())

		slots := saved.CandidateSlots()
		require.Len(t, slots, 1)
		assert.Equal(t, 1, slots[0].Order)
		assert.Equal(t, booking.SlotConfirmed, slots[0].Status)

		assert.Equal(t, []string{"booking_request.confirmed"}, uow.tx.jobs.topics)
	})

	t.Run("forced decision without a GM returns ErrAssigneeRequired", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := awaitingGMRequest(t)
		uow.tx.reads.request = request

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 1,
			StoreID:    uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrAssigneeRequired)
		assert.Nil(t, uow.tx.bookings.confirmSaved)
	})

	t.Run("forced decision uses the explicit GM when nothing is claimed", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := awaitingGMRequest(t)
		gmID := uuid.New()
		uow.tx.reads.request = request

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 2,
			StoreID:    uuid.New(),
			GMID:       &gmID,
		})
		require.NoError(t, err)

		saved := uow.tx.bookings.confirmSaved
		require.NotNil(t, saved)
		require.NotNil(t, saved.AssignedGMID())
		assert.Equal(t, gmID, *saved.AssignedGMID())
	})

	t.Run("occupied store slot fails with a store conflict", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		gmID := uuid.New()
		blocking := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &gmID
		uow.tx.reads.storeHit = &shared.OccupancyHit{SourceID: blocking, Source: "booking_request"}

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 1,
			StoreID:    uuid.New(),
		})

		var conflict *commands.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, commands.ConflictReasonStoreOccupied, conflict.Reason)
		assert.Equal(t, blocking, conflict.ConflictingID)
		assert.Equal(t, "booking_request", conflict.Source)
		assert.Equal(t, "2024-01-05", conflict.Date)
		assert.Equal(t, "morning", conflict.TimeSlot)
		assert.Nil(t, uow.tx.bookings.confirmSaved)
	})

	t.Run("occupied GM slot fails with a GM conflict", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		gmID := uuid.New()
		blocking := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &gmID
		uow.tx.reads.gmHit = &shared.OccupancyHit{SourceID: blocking, Source: "schedule_event"}

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 2,
			StoreID:    uuid.New(),
		})

		var conflict *commands.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, commands.ConflictReasonGMOccupied, conflict.Reason)
		assert.Equal(t, "schedule_event", conflict.Source)
		assert.Equal(t, "2024-01-06", conflict.Date)
		assert.Equal(t, "afternoon", conflict.TimeSlot)
	})

	t.Run("losing the decision race returns ErrRequestAlreadyDecided", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		gmID := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &gmID
		uow.tx.bookings.confirmSaveErr = conflictErr("request already decided")

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 1,
			StoreID:    uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrRequestAlreadyDecided)
		assert.Empty(t, uow.tx.jobs.topics)
	})

	t.Run("final order outside the claimed candidates fails", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		gmID := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &gmID

		// Order 3 was dropped when the GM claimed orders 1 and 2.
		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 3,
			StoreID:    uuid.New(),
		})
		assert.ErrorIs(t, err, booking.ErrUnknownCandidate)
	})

	t.Run("already decided request fails terminally", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := confirmedRequest(t)
		gmID := uuid.New()
		uow.tx.reads.request = request
		uow.tx.reads.claimedBy = &gmID

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  request.ID(),
			FinalOrder: 1,
			StoreID:    uuid.New(),
		})
		assert.ErrorIs(t, err, booking.ErrAlreadyTerminal)
	})

	t.Run("unknown request returns ErrRequestNotFound", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))
		uow.tx.reads.requestErr = notFoundErr("booking request not found")

		err := uc.Confirm(context.Background(), commands.ConfirmRequest{
			RequestID:  uuid.New(),
			FinalOrder: 1,
			StoreID:    uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})
}

func TestConfirmationCommands_Reject(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC)

	t.Run("records the reason and terminates the request", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		uow.tx.reads.request = request

		err := uc.Reject(context.Background(), commands.RejectRequest{
			RequestID: request.ID(),
			Reason:    commands.DefaultRejectionTemplate,
		})
		require.NoError(t, err)

		saved := uow.tx.bookings.rejectSaved
		require.NotNil(t, saved)
		assert.Equal(t, booking.StatusRejected, saved.Status())
		require.NotNil(t, saved.RejectionReason())
		assert.Equal(t, commands.DefaultRejectionTemplate, *saved.RejectionReason())

		assert.Equal(t, []string{"booking_request.rejected"}, uow.tx.jobs.topics)
	})

	t.Run("blank reason is a validation error", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := claimedRequest(t)
		uow.tx.reads.request = request

		err := uc.Reject(context.Background(), commands.RejectRequest{
			RequestID: request.ID(),
			Reason:    "   ",
		})
		assert.ErrorIs(t, err, booking.ErrEmptyRejectionReason)
		assert.Nil(t, uow.tx.bookings.rejectSaved)
	})

	t.Run("already decided request cannot be rejected again", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))

		request := confirmedRequest(t)
		uow.tx.reads.request = request

		err := uc.Reject(context.Background(), commands.RejectRequest{
			RequestID: request.ID(),
			Reason:    "別日程を提案済み",
		})
		assert.ErrorIs(t, err, booking.ErrAlreadyTerminal)
	})

	t.Run("unknown request returns ErrRequestNotFound", func(t *testing.T) {
		t.Parallel()

		uow := newFakeUoW()
		uc := commands.NewConfirmationUseCase(uow, clock.NewMockClock(now))
		uow.tx.reads.requestErr = notFoundErr("booking request not found")

		err := uc.Reject(context.Background(), commands.RejectRequest{
			RequestID: uuid.New(),
			Reason:    "reason",
		})
		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})
}
