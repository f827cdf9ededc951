//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"kashikiri-booking/internal/usecase/commands"
	"kashikiri-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIntakeCommands struct {
	lastCreate commands.CreateBookingRequest
	result     *commands.CreateBookingResult
	err        error
}

func (f *fakeIntakeCommands) CreateRequest(_ context.Context, req commands.CreateBookingRequest) (*commands.CreateBookingResult, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAvailabilityCommands struct {
	lastSubmit commands.SubmitAvailabilityRequest
	err        error
}

func (f *fakeAvailabilityCommands) SubmitAvailability(_ context.Context, req commands.SubmitAvailabilityRequest) error {
	f.lastSubmit = req
	return f.err
}

type fakeConfirmationCommands struct {
	lastConfirm commands.ConfirmRequest
	lastReject  commands.RejectRequest
	confirmErr  error
	rejectErr   error
}

func (f *fakeConfirmationCommands) Confirm(_ context.Context, req commands.ConfirmRequest) error {
	f.lastConfirm = req
	return f.confirmErr
}

func (f *fakeConfirmationCommands) Reject(_ context.Context, req commands.RejectRequest) error {
	f.lastReject = req
	return f.rejectErr
}

type fakeBookingQueries struct {
	view       *queries.BookingRequestView
	pending    []*queries.GMPendingItem
	actionable []*queries.StoreActionableItem
	err        error
}

func (f *fakeBookingQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.BookingRequestView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeBookingQueries) ListPendingForStaff(_ context.Context, _ uuid.UUID) ([]*queries.GMPendingItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pending, nil
}

func (f *fakeBookingQueries) ListStoreActionable(_ context.Context) ([]*queries.StoreActionableItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.actionable, nil
}

type fakeOccupancyQueries struct {
	entries []*queries.OccupancyEntry
	err     error
}

func (f *fakeOccupancyQueries) ListBetween(_ context.Context, _, _ string) ([]*queries.OccupancyEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

// withStaff injects the auth context keys the way RequireAuth would.
func withStaff(staffID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("staff_id", staffID)
		c.Next()
	}
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
