//go:build e2e

package reservation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"shop-reservation/internal/handler/dto/request"
	"shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/repository"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"
	"shop-reservation/tests/common/authtest"
	"shop-reservation/tests/common/builder"
	"shop-reservation/tests/common/dbtest"
	"shop-reservation/tests/common/httptest"
	"shop-reservation/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	servicesURL        = "/api/shops/%s/services"
	resourcesURL       = "/api/shops/%s/resources"
	resourceLinksURL   = "/api/shops/%s/resources/%s/services"
	availabilityURL    = "/api/shops/%s/availability"
	slotsURL           = "/api/shops/%s/services/%s/availability?from=%s"
	reservationsURL    = "/api/shops/%s/reservations"
	reservationURL     = "/api/shops/%s/reservations/%s"
	reservationCmdURL  = "/api/shops/%s/reservations/%s/%s"
	idempotencyHeader  = "Idempotency-Key"
	replayedHeader     = "Idempotent-Replayed"
	bookingHourOfDay   = 10
	bookingDaysAhead   = 3
	concurrentBookings = 6
	serviceDurationMin = 60
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// shopFixture is a shop with one service bookable on one resource every day 09:00-18:00.
type shopFixture struct {
	shopID     uuid.UUID
	serviceID  uuid.UUID
	resourceID uuid.UUID
	ownerToken string
	jwt        *authtest.JWTHelper
	start      time.Time
}

func (s *ReservationSuite) setupShop(t *testing.T) shopFixture {
	t.Helper()

	jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
	shopID := dbtest.CreateTestShop(t, s.DB, "Salon Sakura")
	ownerToken := jwtHelper.ShopOwnerToken(t, uuid.New(), shopID)

	duration := serviceDurationMin
	price := int64(5000)
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(servicesURL, shopID), request.CreateServiceRequest{
		Name:             "Cut",
		DurationMinutes:  &duration,
		Price:            &price,
		RequiresResource: true,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var service queries.ServiceView
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &service))

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(resourcesURL, shopID), request.CreateResourceRequest{
		Name: "Aiko",
		Type: "staff",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resource queries.ResourceView
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resource))

	w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(resourceLinksURL, shopID, resource.ID), request.SetResourceServicesRequest{
		Services: []request.ResourceServiceLink{{ServiceID: service.ID}},
	}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rules := make([]request.AvailabilityRule, 0, 7)
	for day := range 7 {
		rules = append(rules, request.AvailabilityRule{DayOfWeek: day, StartTime: "09:00", EndTime: "18:00"})
	}
	w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(availabilityURL, shopID), request.SetAvailabilityRequest{
		ResourceID: &resource.ID,
		Rules:      rules,
	}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	loc, err := s.Config.Reservation.Location()
	require.NoError(t, err)
	day := time.Now().In(loc).AddDate(0, 0, bookingDaysAhead)
	start := time.Date(day.Year(), day.Month(), day.Day(), bookingHourOfDay, 0, 0, 0, loc)

	return shopFixture{
		shopID:     shopID,
		serviceID:  service.ID,
		resourceID: resource.ID,
		ownerToken: ownerToken,
		jwt:        jwtHelper,
		start:      start,
	}
}

func (s *ReservationSuite) slotAvailable(t *testing.T, f shopFixture, startHHMM string) bool {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf(slotsURL, f.shopID, f.serviceID, f.start.Format(time.DateOnly)), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	require.Len(t, body.Days, 1)
	for _, slot := range body.Days[0].Slots {
		if slot.StartTime == startHHMM {
			return slot.Available
		}
	}
	t.Fatalf("slot %s not offered", startHHMM)
	return false
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: customer books and the slot disappears from availability", func() {
		t := s.T()
		f := s.setupShop(t)
		userID := dbtest.CreateTestAppUser(t, s.DB, "Taro")
		token := f.jwt.CustomerToken(t, userID)

		require.True(t, s.slotAvailable(t, f, "10:00"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, f.shopID), request.CreateReservationRequest{
			ServiceID: f.serviceID,
			StartTime: f.start,
			PartySize: 1,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var actual queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actual))

		price := int64(5000)
		resourceName := "Aiko"
		expected := &queries.ReservationView{
			ShopID:           f.shopID,
			ServiceID:        f.serviceID,
			ServiceName:      "Cut",
			ResourceID:       &f.resourceID,
			ResourceName:     &resourceName,
			AppUserID:        &userID,
			PartySize:        1,
			Price:            &price,
			Status:           "confirmed",
			ConfirmationMode: "auto",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(queries.ReservationView{}, "ID", "StartTime", "EndTime", "ConfirmedAt", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}
		require.True(t, actual.StartTime.Equal(f.start))
		require.True(t, actual.EndTime.Equal(f.start.Add(serviceDurationMin*time.Minute)))

		require.False(t, s.slotAvailable(t, f, "10:00"))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, actual.ID))
	})

	s.Run("Error case: overlapping booking on the same resource is rejected", func() {
		t := s.T()
		f := s.setupShop(t)
		first := f.jwt.CustomerToken(t, dbtest.CreateTestAppUser(t, s.DB, "Taro"))
		second := f.jwt.CustomerToken(t, dbtest.CreateTestAppUser(t, s.DB, "Jiro"))
		url := fmt.Sprintf(reservationsURL, f.shopID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.CreateReservationRequest{
			ServiceID:  f.serviceID,
			ResourceID: &f.resourceID,
			StartTime:  f.start,
		}, first)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.CreateReservationRequest{
			ServiceID:  f.serviceID,
			ResourceID: &f.resourceID,
			StartTime:  f.start.Add(30 * time.Minute),
		}, second)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")

		// back-to-back is fine: intervals are half-open
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.CreateReservationRequest{
			ServiceID:  f.serviceID,
			ResourceID: &f.resourceID,
			StartTime:  f.start.Add(serviceDurationMin * time.Minute),
		}, second)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Normal case: retry with the same idempotency key replays the first result", func() {
		t := s.T()
		f := s.setupShop(t)
		token := f.jwt.CustomerToken(t, dbtest.CreateTestAppUser(t, s.DB, "Taro"))
		url := fmt.Sprintf(reservationsURL, f.shopID)
		key := uuid.NewString()
		body := request.CreateReservationRequest{ServiceID: f.serviceID, StartTime: f.start}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, body, map[string]string{idempotencyHeader: key}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, body, map[string]string{idempotencyHeader: key}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.AssertHeaders(t, w, map[string]string{replayedHeader: "true"})
		var replayed queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &replayed))
		require.Equal(t, created.ID, replayed.ID)

		changed := body
		changed.StartTime = f.start.Add(2 * time.Hour)
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, url, changed, map[string]string{idempotencyHeader: key}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})
}

// =============================================================================
// TestDoubleBookingRaces
// =============================================================================

func (s *ReservationSuite) TestDoubleBookingRaces() {
	s.Run("Normal case: simultaneous bookings of one slot admit exactly one", func() {
		t := s.T()
		f := s.setupShop(t)
		url := fmt.Sprintf(reservationsURL, f.shopID)

		reqs := make([]*http.Request, concurrentBookings)
		for i := range reqs {
			token := f.jwt.CustomerToken(t, dbtest.CreateTestAppUser(t, s.DB, fmt.Sprintf("Customer %d", i)))
			body, err := json.Marshal(request.CreateReservationRequest{
				ServiceID:  f.serviceID,
				ResourceID: &f.resourceID,
				StartTime:  f.start,
			})
			require.NoError(t, err)
			req := nethttptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			reqs[i] = req
		}

		codes := make([]int, len(reqs))
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i, req := range reqs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				rec := nethttptest.NewRecorder()
				s.Router.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}()
		}
		close(start)
		wg.Wait()

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created, "status codes: %v", codes)
		require.Equal(t, concurrentBookings-1, conflicts, "status codes: %v", codes)
		require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, f.shopID))
		require.False(t, s.slotAvailable(t, f, "10:00"))
	})

	s.Run("Error case: an overlapping insert that skips the resource lock hits the exclusion constraint", func() {
		t := s.T()
		f := s.setupShop(t)
		userID := dbtest.CreateTestAppUser(t, s.DB, "Taro")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, f.shopID), request.CreateReservationRequest{
			ServiceID:  f.serviceID,
			ResourceID: &f.resourceID,
			StartTime:  f.start,
		}, f.jwt.CustomerToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		overlap := builder.NewReservationBuilder().
			WithShopID(f.shopID).
			WithResourceID(f.resourceID).
			WithStart(f.start.Add(30 * time.Minute)).
			With(func(b *builder.ReservationBuilder) {
				b.ServiceID = f.serviceID
				b.AppUserID = &userID
				b.Now = time.Now()
			}).
			Build()

		repo := repository.NewReservationRepository(sqlc.New(), s.DB)
		err := repo.Create(context.Background(), overlap)
		require.Error(t, err)

		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr), "expected a postgres error, got %v", err)
		require.Equal(t, "23P01", pgErr.Code)
		require.True(t, infra.IsKind(err, infra.KindConflict))

		translated := shared.TranslateRepoErr(err, "reservation")
		require.True(t, errs.Is(translated, errs.ErrConflict))
		require.Equal(t, http.StatusConflict, httperr.StatusOf(translated))
		require.Equal(t, 1, dbtest.CountActiveReservations(t, s.DB, f.shopID))
	})
}

// =============================================================================
// TestReservationLifecycle
// =============================================================================

func (s *ReservationSuite) TestReservationLifecycle() {
	s.Run("Normal case: guest books and cancels, freeing the slot", func() {
		t := s.T()
		f := s.setupShop(t)
		phone := "090-1234-5678"
		guest := &request.GuestContact{Name: "Hanako", Phone: &phone}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, f.shopID), request.CreateReservationRequest{
			ServiceID: f.serviceID,
			StartTime: f.start,
			Guest:     guest,
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotNil(t, created.GuestPhone)
		require.Equal(t, "+819012345678", *created.GuestPhone)
		require.False(t, s.slotAvailable(t, f, "10:00"))

		reason := "schedule changed"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationCmdURL, f.shopID, created.ID, "cancel"),
			request.CancelReservationRequest{Reason: &reason, Guest: guest}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var cancelled queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Status)

		require.True(t, s.slotAvailable(t, f, "10:00"))
	})

	s.Run("Error case: another guest cannot cancel", func() {
		t := s.T()
		f := s.setupShop(t)
		phone := "090-1234-5678"
		other := "090-8765-4321"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, f.shopID), request.CreateReservationRequest{
			ServiceID: f.serviceID,
			StartTime: f.start,
			Guest:     &request.GuestContact{Name: "Hanako", Phone: &phone},
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationCmdURL, f.shopID, created.ID, "cancel"),
			request.CancelReservationRequest{Guest: &request.GuestContact{Name: "Hanako", Phone: &other}}, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "reservation not found")
	})

	s.Run("Normal case: owner marks a no-show and the customer's counter increases", func() {
		t := s.T()
		f := s.setupShop(t)
		userID := dbtest.CreateTestAppUser(t, s.DB, "Taro")
		token := f.jwt.CustomerToken(t, userID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, f.shopID), request.CreateReservationRequest{
			ServiceID: f.serviceID,
			StartTime: f.start,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationCmdURL, f.shopID, created.ID, "no-show"), nil, f.ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 1, dbtest.NoShowCount(t, s.DB, userID))

		// terminal: a second transition finds nothing to change
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationCmdURL, f.shopID, created.ID, "complete"), nil, f.ownerToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
		require.Equal(t, 1, dbtest.NoShowCount(t, s.DB, userID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, f.shopID, created.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var fetched queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &fetched))
		require.Equal(t, "no_show", fetched.Status)
		require.Nil(t, fetched.InternalNotes)
	})
}
