//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"kashikiri-booking/internal/handler/api"
	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/queries"
	"kashikiri-booking/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailabilityRouter(cmds *fakeAvailabilityCommands, q *fakeBookingQueries, staffID uuid.UUID) *gin.Engine {
	h := api.NewAvailabilityHandler(cmds, q)
	engine := gin.New()
	group := engine.Group("/availability", withStaff(staffID))
	group.GET("/requests", h.ListPending)
	group.POST("/requests/:id/response", h.Submit)
	return engine
}

func TestAvailabilityHandler_ListPending(t *testing.T) {
	t.Parallel()

	t.Run("returns the GM's pending worklist", func(t *testing.T) {
		t.Parallel()

		item := builder.NewBookingRequestBuilder().BuildGMPendingItem()
		q := &fakeBookingQueries{pending: []*queries.GMPendingItem{item}}
		engine := newAvailabilityRouter(&fakeAvailabilityCommands{}, q, uuid.New())

		rec := performJSON(t, engine, http.MethodGet, "/availability/requests", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		requests, ok := body["requests"].([]any)
		require.True(t, ok)
		require.Len(t, requests, 1)
		first := requests[0].(map[string]any)
		assert.Equal(t, item.ID.String(), first["id"])
	})

	t.Run("returns 401 without staff context", func(t *testing.T) {
		t.Parallel()

		h := api.NewAvailabilityHandler(&fakeAvailabilityCommands{}, &fakeBookingQueries{})
		engine := gin.New()
		engine.GET("/availability/requests", h.ListPending)

		rec := performJSON(t, engine, http.MethodGet, "/availability/requests", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAvailabilityHandler_Submit(t *testing.T) {
	t.Parallel()

	requestID := uuid.New()
	staffID := uuid.New()
	path := "/availability/requests/" + requestID.String() + "/response"

	available := func(orders ...int) gin.H {
		return gin.H{"available": true, "selected_orders": orders, "notes": "ok"}
	}

	t.Run("returns 204 and forwards the command", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1, 2))

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, requestID, cmds.lastSubmit.RequestID)
		assert.Equal(t, staffID, cmds.lastSubmit.StaffID)
		assert.True(t, cmds.lastSubmit.Available)
		assert.Equal(t, []int{1, 2}, cmds.lastSubmit.SelectedOrders)
	})

	t.Run("accepts all-unavailable without selected orders", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, gin.H{"available": false, "notes": "無理です"})

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, cmds.lastSubmit.Available)
		assert.Empty(t, cmds.lastSubmit.SelectedOrders)
	})

	t.Run("returns 400 when available is true but no orders are selected", func(t *testing.T) {
		t.Parallel()

		engine := newAvailabilityRouter(&fakeAvailabilityCommands{}, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, gin.H{"available": true})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 400 when available is missing", func(t *testing.T) {
		t.Parallel()

		engine := newAvailabilityRouter(&fakeAvailabilityCommands{}, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, gin.H{"selected_orders": []int{1}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps a lost claim race to 409 already_claimed", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{err: commands.ErrAlreadyClaimed}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1))

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		detail := body["detail"].(map[string]any)
		assert.Equal(t, "already_claimed", detail["reason"])
	})

	t.Run("maps an ineligible GM to 403", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{err: commands.ErrResponseNotFound}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("maps a double submission to 409 already_responded", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{err: commands.ErrAlreadyResponded}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1))

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		detail := body["detail"].(map[string]any)
		assert.Equal(t, "already_responded", detail["reason"])
	})

	t.Run("maps a decided request to 409 already_decided", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{err: commands.ErrRequestAlreadyDecided}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1))

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		detail := body["detail"].(map[string]any)
		assert.Equal(t, "already_decided", detail["reason"])
	})

	t.Run("returns 404 for an unknown request", func(t *testing.T) {
		t.Parallel()

		cmds := &fakeAvailabilityCommands{err: commands.ErrRequestNotFound}
		engine := newAvailabilityRouter(cmds, &fakeBookingQueries{}, staffID)

		rec := performJSON(t, engine, http.MethodPost, path, available(1))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
