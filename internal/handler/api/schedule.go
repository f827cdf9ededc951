package api

import (
	"errors"
	"net/http"
	"time"

	resdto "kashikiri-booking/internal/handler/dto/response"
	"kashikiri-booking/internal/handler/httperr"
	"kashikiri-booking/internal/pkg/errs"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidDateParam = errs.New("invalid date parameter")

type ScheduleHandler struct {
	q queries.OccupancyQueries
}

func NewScheduleHandler(q queries.OccupancyQueries) *ScheduleHandler {
	return &ScheduleHandler{q: q}
}

// @Summary Schedule occupancy
// @Description Project occupied (owner, date, slot) keys from confirmed bookings and schedule events
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} resdto.OccupancyEntryResponse
// @Failure 400 {object} map[string]string
// @Router /schedule/occupancy [get]
func (h *ScheduleHandler) Occupancy(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if !isValidDate(from) || !isValidDate(to) {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidDateParam, "from and to must be YYYY-MM-DD", nil)
		return
	}

	entries, err := h.q.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDateRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "from must not be after to", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load occupancy", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occupancy": resdto.FromOccupancyList(entries)})
}

func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
