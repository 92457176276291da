//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"shop-reservation/internal/handler/api"
	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/tests/common/httptest"
	queriesmock "shop-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries

	shopID    uuid.UUID
	serviceID uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries, clock.NewMockClock(baseTime))

	s.shopID = uuid.New()
	s.serviceID = uuid.New()

	service := s.router.Group("/shops/:shopID/services/:serviceID")
	service.GET("/availability", handler.GetAvailability)
	service.GET("/next-slot", handler.GetNextAvailableSlot)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) url(suffix string) string {
	return "/shops/" + s.shopID.String() + "/services/" + s.serviceID.String() + suffix
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	days := []queries.DayAvailability{{
		Date: "2026-10-19",
		Slots: []queries.SlotView{
			{StartTime: "10:00", EndTime: "11:00", Available: true},
			{StartTime: "11:00", EndTime: "12:00", Available: false},
		},
	}}

	s.Run("success: from defaults to today and to defaults to from", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), s.shopID, s.serviceID, today, today, gomock.Nil()).
			Return(days, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/availability"), nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-10-19", body.DateFrom)
		s.Equal("2026-10-19", body.DateTo)
		s.Equal(s.serviceID, body.ServiceID)
		s.Require().Len(body.Days, 1)
		s.Len(body.Days[0].Slots, 2)
		s.False(body.Days[0].Slots[1].Available)
	})

	s.Run("success: explicit range and resource", func() {
		resourceID := uuid.New()
		from := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), s.shopID, s.serviceID, from, to, &resourceID).
			Return([]queries.DayAvailability{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			s.url("/availability?from=2026-10-20&to=2026-10-22&resource_id="+resourceID.String()), nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-10-22", body.DateTo)
		s.Require().NotNil(body.ResourceID)
		s.Equal(resourceID, *body.ResourceID)
	})

	s.Run("error: 400 Bad Request for malformed input", func() {
		testCases := []struct {
			name        string
			path        string
			expectedMsg string
		}{
			{name: "date", path: s.url("/availability?from=19-10-2026"), expectedMsg: "Invalid from format"},
			{name: "resource", path: s.url("/availability?resource_id=x"), expectedMsg: "Invalid resource_id format"},
			{name: "service", path: "/shops/" + s.shopID.String() + "/services/x/availability", expectedMsg: "Invalid service ID format"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.expectedMsg)
			})
		}
	})

	s.Run("error: usecase errors map to status", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{name: "unknown service", err: errs.NotFound("service"), expectedStatus: http.StatusNotFound},
			{name: "range too wide", err: errs.Validation("date range exceeds the booking window"), expectedStatus: http.StatusUnprocessableEntity},
			{name: "store failure", err: errs.Store(errs.New("boom"), "load rules"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetAvailability(gomock.Any(), s.shopID, s.serviceID, today, today, gomock.Nil()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/availability"), nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetNextAvailableSlot() {
	s.Run("success: returns the earliest slot", func() {
		resourceID := uuid.New()
		s.mockQueries.EXPECT().GetNextAvailableSlot(gomock.Any(), s.shopID, s.serviceID, gomock.Nil()).
			Return(&queries.NextSlotView{
				Date:     "2026-10-20",
				SlotView: queries.SlotView{StartTime: "09:00", EndTime: "10:00", Available: true, ResourceID: &resourceID},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/next-slot"), nil, "")

		var body resdto.NextSlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Slot)
		s.Equal("2026-10-20", body.Slot.Date)
		s.Equal("09:00", body.Slot.StartTime)
	})

	s.Run("success: null slot when nothing is open", func() {
		s.mockQueries.EXPECT().GetNextAvailableSlot(gomock.Any(), s.shopID, s.serviceID, gomock.Nil()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/next-slot"), nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"slot":null`)
	})

	s.Run("error: 404 Not Found for an unknown service", func() {
		s.mockQueries.EXPECT().GetNextAvailableSlot(gomock.Any(), s.shopID, s.serviceID, gomock.Nil()).
			Return(nil, errs.NotFound("service")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/next-slot"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service not found")
	})
}
