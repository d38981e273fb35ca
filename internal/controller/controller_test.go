package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/middleware"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testUserHeader = "X-Test-User"
	testSeedSecret = "seed-secret"
)

type stubProductService struct {
	service.ProductService
	filter  pkgdto.Filter
	review  dto.ReviewRequest
	update  dto.ProductRequest
	getErr  error
	reviews int
}

func (s *stubProductService) GetProducts(ctx context.Context, filter pkgdto.Filter) (dto.ProductListResponse, error) {
	s.filter = filter
	return dto.ProductListResponse{Products: []domain.Product{}, Page: 1}, nil
}

func (s *stubProductService) GetTopProducts(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{{Name: "top"}}, nil
}

func (s *stubProductService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if s.getErr != nil {
		return domain.Product{}, s.getErr
	}
	return domain.Product{Name: id}, nil
}

func (s *stubProductService) UpdateProduct(ctx context.Context, req dto.ProductRequest) (domain.Product, error) {
	s.update = req
	return domain.Product{Name: req.Name}, nil
}

func (s *stubProductService) AddReview(ctx context.Context, user domain.User, req dto.ReviewRequest) error {
	s.review = req
	s.reviews++
	return nil
}

type stubOrderService struct {
	service.OrderService
	pay    dto.PayOrderRequest
	payErr error
}

func (s *stubOrderService) GetMyOrders(ctx context.Context, user domain.User) ([]domain.Order, error) {
	return []domain.Order{{User: user.ID}}, nil
}

func (s *stubOrderService) GetOrderByID(ctx context.Context, user domain.User, id string) (dto.OrderResponse, error) {
	return dto.OrderResponse{}, errs.ErrOrderNotFound
}

func (s *stubOrderService) PayOrder(ctx context.Context, user domain.User, req dto.PayOrderRequest) (domain.Order, error) {
	s.pay = req
	return domain.Order{IsPaid: s.payErr == nil}, s.payErr
}

func (s *stubOrderService) AddOrder(ctx context.Context, user domain.User, req dto.OrderRequest) (domain.Order, error) {
	if len(req.OrderItems) == 0 {
		return domain.Order{}, errs.ErrNoOrderItems
	}
	return domain.Order{User: user.ID}, nil
}

type stubSeedService struct {
	service.SeedService
	seeded int
}

func (s *stubSeedService) SeedCatalog(ctx context.Context) (dto.SeedResult, error) {
	s.seeded++
	return dto.SeedResult{ProductsCreated: 249, Batches: 5}, nil
}

func (s *stubSeedService) GetSeedStatus(ctx context.Context) (dto.SeedStatus, error) {
	return dto.SeedStatus{HasSeedSecret: true}, nil
}

type stubInventoryService struct {
	service.InventoryService
}

func (s *stubInventoryService) SyncInventory(ctx context.Context) (dto.InventorySyncResult, error) {
	return dto.InventorySyncResult{}, errs.ErrInventoryFeed
}

type ControllerTestSuite struct {
	suite.Suite
	e         *echo.Echo
	products  *stubProductService
	orders    *stubOrderService
	seeds     *stubSeedService
	customer  domain.User
	admin     domain.User
	usersByID map[string]domain.User
}

func (s *ControllerTestSuite) SetupTest() {
	s.customer = domain.User{ID: primitive.NewObjectID(), Name: "customer"}
	s.admin = domain.User{ID: primitive.NewObjectID(), Name: "admin", IsAdmin: true}
	s.usersByID = map[string]domain.User{
		s.customer.ID.Hex(): s.customer,
		s.admin.ID.Hex():    s.admin,
	}

	isLoggedIn := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := s.usersByID[c.Request().Header.Get(testUserHeader)]
			if !ok {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}
			middleware.SetCurrentUser(c, user)
			return next(c)
		}
	}
	isAdmin := (&middleware.AuthMiddleware{}).IsAdmin

	s.products = &stubProductService{}
	s.orders = &stubOrderService{}
	s.seeds = &stubSeedService{}

	s.e = echo.New()
	g := s.e.Group("/api/v1")
	CreateProductController(g, s.products, isLoggedIn, isAdmin)
	CreateOrderController(g, s.orders, isLoggedIn, isAdmin)
	CreateSeedController(g, s.seeds, middleware.SeedSecret(testSeedSecret))
	CreateInventoryController(g, &stubInventoryService{}, isLoggedIn, isAdmin)
	CreateConfigController(g, "paypal-client-id")
}

func (s *ControllerTestSuite) do(method, path string, body interface{}, user *domain.User, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		req.Header.Set(testUserHeader, user.ID.Hex())
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ControllerTestSuite) Test_GetProductsBindsQuery() {
	rec := s.do(http.MethodGet, "/api/v1/products?keyword=fold&page=2&condition=B&model=Pixel%20Fold", nil, nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(pkgdto.Filter{Keyword: "fold", Page: 2, Condition: "B", ModelName: "Pixel Fold"}, s.products.filter)
}

func (s *ControllerTestSuite) Test_ProductRoutes() {
	rec := s.do(http.MethodGet, "/api/v1/products/top", nil, nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"name":"top"`)

	s.products.getErr = errs.ErrProductNotFound
	rec = s.do(http.MethodGet, "/api/v1/products/abc", nil, nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ControllerTestSuite) Test_UpdateProductRequiresAdmin() {
	id := primitive.NewObjectID().Hex()
	payload := map[string]interface{}{"name": "Renamed", "price": 99.5}

	rec := s.do(http.MethodPut, "/api/v1/products/"+id, payload, nil, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/products/"+id, payload, &s.customer, nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/products/"+id, payload, &s.admin, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(id, s.products.update.ID)
	s.Equal("Renamed", s.products.update.Name)
	s.Equal(99.5, s.products.update.Price)
}

func (s *ControllerTestSuite) Test_AddReview() {
	id := primitive.NewObjectID().Hex()

	rec := s.do(http.MethodPost, "/api/v1/products/"+id+"/reviews", map[string]interface{}{"rating": 4, "comment": "ok"}, nil, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(0, s.products.reviews)

	rec = s.do(http.MethodPost, "/api/v1/products/"+id+"/reviews", map[string]interface{}{"rating": 4, "comment": "ok"}, &s.customer, nil)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(dto.ReviewRequest{ProductID: id, Rating: 4, Comment: "ok"}, s.products.review)
}

func (s *ControllerTestSuite) Test_OrderRoutes() {
	rec := s.do(http.MethodGet, "/api/v1/orders/mine", nil, &s.customer, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/orders", map[string]interface{}{"orderItems": []interface{}{}}, &s.customer, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), errs.ErrNoOrderItems.Error())

	rec = s.do(http.MethodGet, "/api/v1/orders", nil, &s.customer, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ControllerTestSuite) Test_PayOrder() {
	id := primitive.NewObjectID().Hex()

	rec := s.do(http.MethodPut, "/api/v1/orders/"+id+"/pay", map[string]string{"paymentId": "PAY-1"}, &s.customer, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(dto.PayOrderRequest{OrderID: id, PaymentID: "PAY-1"}, s.orders.pay)

	testCases := []struct {
		Err      error
		Expected int
	}{
		{Err: errs.ErrPaymentVerificationFailed, Expected: http.StatusBadRequest},
		{Err: errs.ErrOrderAlreadyPaid, Expected: http.StatusConflict},
		{Err: errs.ErrPaymentProcessor, Expected: http.StatusBadGateway},
		{Err: errs.ErrForbidden, Expected: http.StatusForbidden},
	}

	for _, tc := range testCases {
		s.Run(tc.Err.Error(), func() {
			s.orders.payErr = tc.Err
			rec := s.do(http.MethodPut, "/api/v1/orders/"+id+"/pay", map[string]string{"paymentId": "PAY-1"}, &s.customer, nil)
			s.Equal(tc.Expected, rec.Code)
		})
	}
}

func (s *ControllerTestSuite) Test_SeedRoutes() {
	rec := s.do(http.MethodPost, "/api/v1/seed", nil, nil, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(0, s.seeds.seeded)

	rec = s.do(http.MethodPost, "/api/v1/seed", nil, nil, map[string]string{middleware.SeedSecretHeader: testSeedSecret})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.seeds.seeded)
	s.Contains(rec.Body.String(), `"productsCreated":249`)

	rec = s.do(http.MethodGet, "/api/v1/seed/status", nil, nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"hasSeedSecret":true`)
}

func (s *ControllerTestSuite) Test_InventoryFeedFailure() {
	rec := s.do(http.MethodPost, "/api/v1/inventory/sync", nil, &s.admin, nil)
	s.Equal(http.StatusBadGateway, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/inventory/sync", nil, &s.customer, nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ControllerTestSuite) Test_PayPalConfig() {
	rec := s.do(http.MethodGet, "/api/v1/config/paypal", nil, nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"clientId":"paypal-client-id"`)
}

func TestControllers(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
