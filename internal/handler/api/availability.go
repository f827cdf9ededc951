package api

import (
	"net/http"

	reqdto "kashikiri-booking/internal/handler/dto/request"
	resdto "kashikiri-booking/internal/handler/dto/response"
	"kashikiri-booking/internal/handler/httperr"
	"kashikiri-booking/internal/handler/middleware"
	"kashikiri-booking/internal/pkg/errs"
	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingStaffContext = errs.New("staff context missing")

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.BookingQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.BookingQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary List pending requests
// @Description List booking requests this GM has not answered yet
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.GMPendingItemResponse
// @Failure 401 {object} map[string]string
// @Router /availability/requests [get]
func (h *AvailabilityHandler) ListPending(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingStaffContext, "Unauthorized", nil)
		return
	}

	items, err := h.q.ListPendingForStaff(c.Request.Context(), staffID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list pending requests", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": resdto.FromGMPendingList(items)})
}

// @Summary Submit availability
// @Description Answer a booking request; the first "available" claims it
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Param request body reqdto.SubmitAvailabilityRequest true "Availability answer"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /availability/requests/{id}/response [post]
func (h *AvailabilityHandler) Submit(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingStaffContext, "Unauthorized", nil)
		return
	}

	var req reqdto.SubmitAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.SubmitAvailability(c.Request.Context(), req.ToCommand(requestID, staffID)); err != nil {
		abortWithMappedError(c, err, "Submit availability failed")
		return
	}
	c.Status(http.StatusNoContent)
}
