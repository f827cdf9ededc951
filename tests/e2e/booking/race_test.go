//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"kashikiri-booking/internal/domain/staff"
	"kashikiri-booking/internal/handler/dto/response"
	"kashikiri-booking/tests/common/authtest"
	"kashikiri-booking/tests/common/builder"
	"kashikiri-booking/tests/common/httptest"
	"kashikiri-booking/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RaceSuite struct {
	e2e.SharedSuite
}

// Not parallel: the suite truncates tables shared with BookingFlowSuite.
func TestRaceSuite(t *testing.T) {
	suite.Run(t, new(RaceSuite))
}

func (s *RaceSuite) openRequest(t *testing.T, storeTok string, gmIDs ...uuid.UUID) string {
	body := builder.NewBookingRequestBuilder().WithEligibleGMs(gmIDs...).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingRequestsURL, body, storeTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateBookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created.RequestID
}

func (s *RaceSuite) requestStatus(t *testing.T, requestID, token string) string {
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingRequestsURL+"/"+requestID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var view response.BookingRequestResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
	return view.Status
}

// fireConcurrently releases every request at once and returns the status codes.
func fireConcurrently(reqs []func() int) []int {
	codes := make([]int, len(reqs))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, send := range reqs {
		wg.Add(1)
		go func(i int, send func() int) {
			defer wg.Done()
			<-start
			codes[i] = send()
		}(i, send)
	}
	close(start)
	wg.Wait()
	return codes
}

func countCode(codes []int, want int) int {
	n := 0
	for _, c := range codes {
		if c == want {
			n++
		}
	}
	return n
}

func (s *RaceSuite) TestConcurrentRaces() {
	s.Run("Normal case: two concurrent claims, exactly one wins", func() {
		t := s.T()

		gm1, gm2 := uuid.New(), uuid.New()
		storeTok := authtest.StaffToken(t, s.Config, uuid.New(), staff.RoleStore.String())
		requestID := s.openRequest(t, storeTok, gm1, gm2)

		submit := func(gmID uuid.UUID) func() int {
			token := authtest.StaffToken(t, s.Config, gmID, staff.RoleGM.String())
			return func() int {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost,
					fmt.Sprintf(gmResponseURL, requestID),
					gin.H{"available": true, "selected_orders": []int{1}},
					token)
				return w.Code
			}
		}

		codes := fireConcurrently([]func() int{submit(gm1), submit(gm2)})
		require.Equal(t, 1, countCode(codes, http.StatusNoContent), "勝者は一人だけのはず: %v", codes)
		require.Equal(t, 1, countCode(codes, http.StatusConflict), "敗者は409になるはず: %v", codes)

		require.Equal(t, "awaiting_store", s.requestStatus(t, requestID, storeTok))
	})

	s.Run("Normal case: two concurrent confirms on the same slot, exactly one commits", func() {
		t := s.T()

		storeTok := authtest.StaffToken(t, s.Config, uuid.New(), staff.RoleStore.String())
		storeID := uuid.New()

		// Two independent requests sharing the same first candidate slot.
		claimed := func() string {
			gmID := uuid.New()
			requestID := s.openRequest(t, storeTok, gmID)
			w := httptest.PerformRequest(t, s.Router, http.MethodPost,
				fmt.Sprintf(gmResponseURL, requestID),
				gin.H{"available": true, "selected_orders": []int{1}},
				authtest.StaffToken(t, s.Config, gmID, staff.RoleGM.String()))
			require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
			return requestID
		}
		reqA, reqB := claimed(), claimed()

		confirm := func(requestID string) func() int {
			return func() int {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost,
					fmt.Sprintf(confirmURL, requestID),
					gin.H{"final_order": 1, "store_id": storeID.String()},
					storeTok)
				return w.Code
			}
		}

		codes := fireConcurrently([]func() int{confirm(reqA), confirm(reqB)})
		require.Equal(t, 1, countCode(codes, http.StatusOK), "確定できるのは一件だけのはず: %v", codes)
		require.Equal(t, 1, countCode(codes, http.StatusConflict), "敗者は409になるはず: %v", codes)

		confirmed := 0
		for _, id := range []string{reqA, reqB} {
			if s.requestStatus(t, id, storeTok) == "confirmed" {
				confirmed++
			}
		}
		require.Equal(t, 1, confirmed)
	})
}
