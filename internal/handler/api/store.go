package api

import (
	"net/http"

	reqdto "kashikiri-booking/internal/handler/dto/request"
	resdto "kashikiri-booking/internal/handler/dto/response"
	"kashikiri-booking/internal/handler/httperr"
	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoreHandler struct {
	cmds commands.ConfirmationCommands
	q    queries.BookingQueries
}

func NewStoreHandler(cmds commands.ConfirmationCommands, q queries.BookingQueries) *StoreHandler {
	return &StoreHandler{cmds: cmds, q: q}
}

// @Summary List actionable requests
// @Description List requests the store approver can confirm or reject
// @Tags store
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StoreActionableItemResponse
// @Failure 401 {object} map[string]string
// @Router /store/requests [get]
func (h *StoreHandler) List(c *gin.Context) {
	items, err := h.q.ListStoreActionable(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list actionable requests", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requests":                   resdto.FromStoreActionableList(items),
		"default_rejection_template": commands.DefaultRejectionTemplate,
	})
}

// @Summary Confirm booking request
// @Description Commit a request to one slot, store and GM after conflict checks
// @Tags store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Param request body reqdto.ConfirmRequest true "Confirmation"
// @Success 200 {object} resdto.BookingRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /store/requests/{id}/confirm [post]
func (h *StoreHandler) Confirm(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ConfirmRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.Confirm(c.Request.Context(), req.ToCommand(requestID)); err != nil {
		abortWithMappedError(c, err, "Confirm failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), requestID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking request", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRequestView(view))
}

// @Summary Reject booking request
// @Description Terminally reject a request with a reason
// @Tags store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Param request body reqdto.RejectRequest true "Rejection"
// @Success 200 {object} resdto.BookingRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /store/requests/{id}/reject [post]
func (h *StoreHandler) Reject(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.RejectRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.Reject(c.Request.Context(), req.ToCommand(requestID)); err != nil {
		abortWithMappedError(c, err, "Reject failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), requestID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking request", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRequestView(view))
}
