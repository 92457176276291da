//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/handler/api"
	reqdto "shop-reservation/internal/handler/dto/request"
	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/tests/common/authtest"
	"shop-reservation/tests/common/httptest"
	"shop-reservation/tests/common/testutil"
	commandsmock "shop-reservation/tests/mock/commands"
	queriesmock "shop-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCatalogCommands
	mockQueries  *queriesmock.MockCatalogQueries
	jwt          *authtest.JWTHelper

	shopID     uuid.UUID
	ownerID    uuid.UUID
	ownerToken string
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCatalogQueries(s.mockCtrl)
	handler := api.NewCatalogHandler(s.mockCommands, s.mockQueries)

	auth, jwtHelper := newAuth()
	s.jwt = jwtHelper
	s.shopID = uuid.New()
	s.ownerID = uuid.New()
	s.ownerToken = jwtHelper.ShopOwnerToken(s.T(), s.ownerID, s.shopID)
	admin := shopAdmin(auth)

	shop := s.router.Group("/shops/:shopID")
	shop.GET("/services", auth.OptionalAuth(), handler.ListServices)
	shop.GET("/services/:serviceID", handler.GetService)
	shop.POST("/services", with(admin, handler.CreateService)...)
	shop.PATCH("/services/:serviceID", with(admin, handler.UpdateService)...)
	shop.DELETE("/services/:serviceID", with(admin, handler.DeleteService)...)
	shop.GET("/resources", auth.OptionalAuth(), handler.ListResources)
	shop.GET("/resources/:id", handler.GetResource)
	shop.POST("/resources", with(admin, handler.CreateResource)...)
	shop.PATCH("/resources/:id", with(admin, handler.UpdateResource)...)
	shop.DELETE("/resources/:id", with(admin, handler.DeleteResource)...)
	shop.PUT("/resources/:id/services", with(admin, handler.SetResourceServices)...)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) url(suffix string) string {
	return "/shops/" + s.shopID.String() + suffix
}

func (s *CatalogHandlerTestSuite) owner() reservation.Actor {
	return reservation.ShopOwner(s.ownerID, s.shopID)
}

// ================================================================================
// TestListServices
// ================================================================================

func (s *CatalogHandlerTestSuite) TestListServices() {
	services := []*queries.ServiceView{{ID: uuid.New(), ShopID: s.shopID, Name: "Cut", IsActive: true}}

	s.Run("success: public callers only see active services", func() {
		s.mockQueries.EXPECT().ListServices(gomock.Any(), s.shopID, true).Return(services, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services?include_inactive=true"), nil, "")

		var body resdto.ListResponse[queries.ServiceView]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Count)
		s.Equal("Cut", body.Items[0].Name)
	})

	s.Run("success: shop admins may include inactive services", func() {
		s.mockQueries.EXPECT().ListServices(gomock.Any(), s.shopID, false).Return(services, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services?include_inactive=true"), nil, s.ownerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: customers asking for inactive services still get active ones", func() {
		s.mockQueries.EXPECT().ListServices(gomock.Any(), s.shopID, true).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services?include_inactive=true"), nil, s.jwt.CustomerToken(s.T(), uuid.New()))

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Contains(rec.Body.String(), `"items":[]`)
	})

	s.Run("error: 400 Bad Request for invalid shop ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/shops/abc/services", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid shop ID format")
	})
}

// ================================================================================
// TestGetService
// ================================================================================

func (s *CatalogHandlerTestSuite) TestGetService() {
	serviceID := uuid.New()

	s.Run("success: returns the service with its resources", func() {
		view := &queries.ServiceView{ID: serviceID, Name: "Cut", Resources: []queries.LinkedResourceView{{ID: uuid.New(), Name: "Aiko"}}}
		s.mockQueries.EXPECT().GetService(gomock.Any(), s.shopID, serviceID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services/"+serviceID.String()), nil, "")

		var body queries.ServiceView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Resources, 1)
	})

	s.Run("error: 404 Not Found for a missing service", func() {
		s.mockQueries.EXPECT().GetService(gomock.Any(), s.shopID, serviceID).Return(nil, errs.NotFound("service")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services/"+serviceID.String()), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service not found")
	})

	s.Run("error: 400 Bad Request for invalid service ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/services/xyz"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid service ID format")
	})
}

// ================================================================================
// TestCreateService
// ================================================================================

func (s *CatalogHandlerTestSuite) TestCreateService() {
	url := s.url("/services")
	reqBody := reqdto.CreateServiceRequest{Name: "Cut", DurationMinutes: ptr(60), Price: ptr(int64(5000)), RequiresResource: true}
	returnView := &queries.ServiceView{ID: uuid.New(), ShopID: s.shopID, Name: "Cut", Capacity: 1, IsActive: true}

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().CreateService(gomock.Any(), s.owner(), s.shopID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ reservation.Actor, _ uuid.UUID, p catalog.ServiceParams) (*queries.ServiceView, error) {
				s.Equal("Cut", p.Name)
				s.Equal(60, *p.DurationMinutes)
				s.True(p.RequiresResource)
				s.Nil(p.Capacity)
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.ownerToken)

		var body queries.ServiceView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
	})

	s.Run("error: 400 Bad Request without a name", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("name", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.ownerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 422 Unprocessable Entity for domain validation", func() {
		s.mockCommands.EXPECT().CreateService(gomock.Any(), gomock.Any(), s.shopID, gomock.Any()).
			Return(nil, catalog.ErrInvalidName).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("name", "   "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.ownerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "name is required")
	})

	s.Run("error: 401 and 403 for callers who do not manage the shop", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.jwt.ShopOwnerToken(s.T(), uuid.New(), uuid.New()))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// TestUpdateService
// ================================================================================

func (s *CatalogHandlerTestSuite) TestUpdateService() {
	serviceID := uuid.New()
	url := s.url("/services/" + serviceID.String())

	s.Run("success: passes only the provided fields", func() {
		s.mockCommands.EXPECT().UpdateService(gomock.Any(), s.owner(), s.shopID, serviceID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ reservation.Actor, _, _ uuid.UUID, p catalog.ServicePatch) (*queries.ServiceView, error) {
				s.Require().NotNil(p.IsActive)
				s.False(*p.IsActive)
				s.Nil(p.Name)
				s.Nil(p.Price)
				return &queries.ServiceView{ID: serviceID}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"is_active": false}, s.ownerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 Not Found for another shop's service", func() {
		s.mockCommands.EXPECT().UpdateService(gomock.Any(), gomock.Any(), s.shopID, serviceID, gomock.Any()).
			Return(nil, errs.NotFound("service")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"name": "Color"}, s.ownerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service not found")
	})
}

// ================================================================================
// TestDeleteService
// ================================================================================

func (s *CatalogHandlerTestSuite) TestDeleteService() {
	serviceID := uuid.New()
	url := s.url("/services/" + serviceID.String())

	s.Run("success: reports hard deletion", func() {
		s.mockCommands.EXPECT().DeleteService(gomock.Any(), s.owner(), s.shopID, serviceID).
			Return(&commands.DeleteResult{ID: serviceID, Mode: commands.DeleteModeHard}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.ownerToken)

		var body resdto.DeleteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("hard", body.Mode)
		s.Equal("Service deleted", body.Message)
	})

	s.Run("success: reports deactivation when reservations reference it", func() {
		s.mockCommands.EXPECT().DeleteService(gomock.Any(), s.owner(), s.shopID, serviceID).
			Return(&commands.DeleteResult{ID: serviceID, Mode: commands.DeleteModeSoft}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, s.ownerToken)

		var body resdto.DeleteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("soft", body.Mode)
		s.Contains(body.Message, "deactivated")
	})
}

// ================================================================================
// TestResources
// ================================================================================

func (s *CatalogHandlerTestSuite) TestResources() {
	resourceID := uuid.New()

	s.Run("success: lists active resources", func() {
		s.mockQueries.EXPECT().ListResources(gomock.Any(), s.shopID, true).
			Return([]*queries.ResourceView{{ID: resourceID, Name: "Aiko", Type: "staff"}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/resources"), nil, "")

		var body resdto.ListResponse[queries.ResourceView]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Count)
	})

	s.Run("success: returns a resource with services and rules", func() {
		s.mockQueries.EXPECT().GetResource(gomock.Any(), s.shopID, resourceID).
			Return(&queries.ResourceView{ID: resourceID, Rules: []queries.RuleView{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/resources/"+resourceID.String()), nil, "")

		var body queries.ResourceView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Rules, 1)
	})

	s.Run("success: creates a resource", func() {
		s.mockCommands.EXPECT().CreateResource(gomock.Any(), s.owner(), s.shopID, catalog.ResourceParams{Name: "Window table", Type: "table", SortOrder: 2}).
			Return(&queries.ResourceView{ID: resourceID, Name: "Window table", Type: "table"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.url("/resources"),
			reqdto.CreateResourceRequest{Name: "Window table", Type: "table", SortOrder: 2}, s.ownerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("success: updates a resource", func() {
		s.mockCommands.EXPECT().UpdateResource(gomock.Any(), s.owner(), s.shopID, resourceID, catalog.ResourcePatch{Name: ptr("Booth")}).
			Return(&queries.ResourceView{ID: resourceID, Name: "Booth"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.url("/resources/"+resourceID.String()),
			map[string]any{"name": "Booth"}, s.ownerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: deletes a resource", func() {
		s.mockCommands.EXPECT().DeleteResource(gomock.Any(), s.owner(), s.shopID, resourceID).
			Return(&commands.DeleteResult{ID: resourceID, Mode: commands.DeleteModeHard}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, s.url("/resources/"+resourceID.String()), nil, s.ownerToken)

		var body resdto.DeleteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Resource deleted", body.Message)
	})

	s.Run("error: 400 Bad Request for invalid resource ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/resources/1"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid resource ID format")
	})
}

// ================================================================================
// TestSetResourceServices
// ================================================================================

func (s *CatalogHandlerTestSuite) TestSetResourceServices() {
	resourceID := uuid.New()
	serviceID := uuid.New()
	url := s.url("/resources/" + resourceID.String() + "/services")

	s.Run("success: replaces the link set", func() {
		want := []commands.LinkInput{{ServiceID: serviceID, PriceOverride: ptr(int64(7000))}}
		s.mockCommands.EXPECT().SetResourceServices(gomock.Any(), s.owner(), s.shopID, resourceID, want).
			Return([]queries.LinkedServiceView{{ID: serviceID, PriceOverride: ptr(int64(7000)), LinkActive: true}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.SetResourceServicesRequest{
			Services: []reqdto.ResourceServiceLink{{ServiceID: serviceID, PriceOverride: ptr(int64(7000))}},
		}, s.ownerToken)

		var body resdto.ListResponse[queries.LinkedServiceView]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Count)
	})

	s.Run("success: an empty list clears every link", func() {
		s.mockCommands.EXPECT().SetResourceServices(gomock.Any(), s.owner(), s.shopID, resourceID, []commands.LinkInput{}).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"services": []any{}}, s.ownerToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Contains(rec.Body.String(), `"count":0`)
	})

	s.Run("error: 400 Bad Request when services is missing", func() {
		s.mockCommands.EXPECT().SetResourceServices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		for _, body := range []any{map[string]any{}, map[string]any{"services": nil}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, s.ownerToken)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 400 Bad Request for a link without service_id", func() {
		s.mockCommands.EXPECT().SetResourceServices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"services": []any{map[string]any{"price_override": 7000}}}, s.ownerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 422 Unprocessable Entity for foreign services", func() {
		s.mockCommands.EXPECT().SetResourceServices(gomock.Any(), gomock.Any(), s.shopID, resourceID, gomock.Any()).
			Return(nil, commands.ErrForeignService).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.SetResourceServicesRequest{
			Services: []reqdto.ResourceServiceLink{{ServiceID: uuid.New()}},
		}, s.ownerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "do not belong to this shop")
	})
}
