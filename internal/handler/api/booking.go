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

type BookingHandler struct {
	cmds commands.IntakeCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.IntakeCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking request
// @Description Open the private-booking approval flow for a customer request
// @Tags booking-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /booking-requests [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateRequest(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithMappedError(c, err, "Create booking request failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{RequestID: result.RequestID.String()})
}

// @Summary Get booking request
// @Description Get a booking request with all availability responses
// @Tags booking-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Success 200 {object} resdto.BookingRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /booking-requests/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRequestView(view))
}
