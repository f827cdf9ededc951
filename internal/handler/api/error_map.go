package api

import (
	"errors"
	"net/http"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/handler/httperr"
	"kashikiri-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// abortWithMappedError translates usecase and domain errors into the wire
// taxonomy: 404 unknown request, 403 ineligible staff, 409 races and
// already-decided states, 422 validation, 500 everything else.
func abortWithMappedError(c *gin.Context, err error, fallbackMsg string) {
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Schedule conflict", gin.H{
			"reason":         conflict.Reason,
			"conflicting_id": conflict.ConflictingID.String(),
			"source":         conflict.Source,
			"date":           conflict.Date,
			"time_slot":      conflict.TimeSlot,
		})
		return
	}

	switch {
	case errors.Is(err, commands.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking request not found", nil)
	case errors.Is(err, commands.ErrResponseNotFound):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not eligible for this request", nil)
	case errors.Is(err, commands.ErrAlreadyClaimed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request already claimed", gin.H{"reason": "already_claimed"})
	case errors.Is(err, commands.ErrAlreadyResponded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Availability already submitted", gin.H{"reason": "already_responded"})
	case errors.Is(err, commands.ErrRequestAlreadyDecided),
		errors.Is(err, booking.ErrAlreadyTerminal),
		errors.Is(err, booking.ErrNotAwaitingGM),
		errors.Is(err, booking.ErrNotConfirmable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request already decided", gin.H{"reason": "already_decided"})
	case isValidationErr(err):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallbackMsg, nil)
	}
}

func isValidationErr(err error) bool {
	validationErrs := []error{
		commands.ErrNoEligibleGMs,
		commands.ErrAssigneeRequired,
		booking.ErrNoCandidates,
		booking.ErrDuplicateOrder,
		booking.ErrInvalidParticipants,
		booking.ErrEmptyCustomerRef,
		booking.ErrEmptySelection,
		booking.ErrUnknownCandidate,
		booking.ErrEmptyRejectionReason,
		booking.ErrMissingStore,
		booking.ErrMissingGM,
		booking.ErrInvalidCandidateDate,
		booking.ErrInvalidCandidateTime,
		booking.ErrCandidateTimeOrder,
		booking.ErrInvalidOrder,
		availability.ErrEmptySelection,
	}
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
