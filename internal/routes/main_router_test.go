package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-system/internal/controllers"
	"restaurant-system/internal/controllers/telegram"
	"restaurant-system/internal/dto"
	"restaurant-system/internal/entities"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/config"
	"restaurant-system/pkg/customvalidator"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/middleware"
	"restaurant-system/pkg/service"
	"restaurant-system/pkg/utils"
	appwebsocket "restaurant-system/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// Неиспользуемые методы интерфейсов в фейках не реализуем: вызов упадёт паникой.

type stubStatuses struct {
	services.StatusServiceInterface
}

func (stubStatuses) ListStatuses(context.Context) ([]entities.OrderStatus, error) {
	return []entities.OrderStatus{{ID: 1, Code: "NEW", Name: "Новий"}}, nil
}

func (stubStatuses) FindStatus(_ context.Context, id uint64) (*entities.OrderStatus, error) {
	return nil, apperrors.ErrNotFound
}

type stubOrders struct {
	services.OrderServiceInterface
	lastActor  entities.Actor
	lastChatID int64
}

func (s *stubOrders) PlaceWebOrder(_ context.Context, p dto.CreateWebOrderDTO) (*entities.Order, error) {
	s.lastChatID = p.CustomerChatID
	return &entities.Order{ID: 10, CustomerName: p.CustomerName, OrderType: entities.OrderType(p.OrderType), TotalPrice: decimal.NewFromInt(250)}, nil
}

func (s *stubOrders) ChangeStatus(_ context.Context, orderID, statusID uint64, actor entities.Actor) (*entities.Order, error) {
	s.lastActor = actor
	return &entities.Order{ID: orderID, StatusID: statusID}, nil
}

type stubIdentity struct{}

func (stubIdentity) UserID(initData string) (int64, error) {
	if initData != "signed" {
		return 0, errors.New("bad signature")
	}
	return 777, nil
}

type stubTables struct {
	services.TableServiceInterface
	known uuid.UUID
}

func (s stubTables) CallWaiter(_ context.Context, token uuid.UUID) error {
	if token != s.known {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrNoRecipients
}

type RouterTestSuite struct {
	suite.Suite
	Echo   *echo.Echo
	Orders *stubOrders
	Table  uuid.UUID
	Token  string
}

func (suite *RouterTestSuite) SetupSuite() {
	nopLogger := zap.NewNop()

	e := echo.New()
	v := validator.New()
	suite.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	authMW := middleware.NewAuthMiddleware(jwtSvc, nopLogger)

	suite.Orders = &stubOrders{}
	suite.Table = uuid.New()
	tables := stubTables{known: suite.Table}
	hub := appwebsocket.NewHub(nopLogger)

	ctrl := &Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(config.AdminConfig{User: "admin", Pass: "pass"}, jwtSvc, nopLogger), nopLogger),
		Status:    controllers.NewStatusController(stubStatuses{}, nopLogger),
		Order:     controllers.NewOrderController(suite.Orders, stubIdentity{}, nopLogger),
		Employee:  controllers.NewEmployeeController(nil, nopLogger),
		Product:   controllers.NewProductController(nil, nopLogger),
		Table:     controllers.NewTableController(tables, nopLogger),
		Menu:      controllers.NewMenuController(tables, suite.Orders, nopLogger),
		Report:    controllers.NewReportController(nil, nopLogger),
		WebSocket: controllers.NewWebSocketController(hub, nopLogger),
		StaffBot:  telegram.NewStaffBotController(nil, nil, nil, nil, config.TelegramConfig{}, nopLogger),
	}
	InitRouter(e, ctrl, authMW, nopLogger)
	suite.Echo = e

	token, err := jwtSvc.GenerateToken("admin")
	suite.Require().NoError(err)
	suite.Token = token
}

func (suite *RouterTestSuite) do(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, utils.HttpResponse) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, req)

	var resp utils.HttpResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func (suite *RouterTestSuite) TestLogin() {
	rec, resp := suite.do(http.MethodPost, "/api/auth/login", dto.LoginDTO{Login: "admin", Password: "pass"}, "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(resp.Status)

	rec, _ = suite.do(http.MethodPost, "/api/auth/login", dto.LoginDTO{Login: "admin", Password: "wrong"}, "")
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *RouterTestSuite) TestAdminRoutesRequireToken() {
	rec, _ := suite.do(http.MethodGet, "/api/statuses", nil, "")
	suite.Equal(http.StatusUnauthorized, rec.Code)

	rec, resp := suite.do(http.MethodGet, "/api/statuses", nil, suite.Token)
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(resp.Status)
}

func (suite *RouterTestSuite) TestStatusNotFound() {
	rec, resp := suite.do(http.MethodGet, "/api/statuses/99", nil, suite.Token)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.False(resp.Status)

	rec, _ = suite.do(http.MethodGet, "/api/statuses/abc", nil, suite.Token)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestWebOrderValidation() {
	payload := dto.CreateWebOrderDTO{
		Items:        []dto.OrderItemDTO{{ProductID: 1, Quantity: 2}},
		CustomerName: "Іван",
		Phone:        "+380 67 123 45 67",
		OrderType:    "delivery",
	}
	rec, _ := suite.do(http.MethodPost, "/api/orders", payload, "")
	suite.Equal(http.StatusBadRequest, rec.Code, "доставка без адреса")

	payload.Address = "вул. Шевченка, 1"
	rec, resp := suite.do(http.MethodPost, "/api/orders", payload, "")
	suite.Equal(http.StatusCreated, rec.Code)
	suite.True(resp.Status)
}

func (suite *RouterTestSuite) TestWebOrderCustomerChatComesFromSignedData() {
	payload := map[string]interface{}{
		"items":            []dto.OrderItemDTO{{ProductID: 1, Quantity: 1}},
		"customer_name":    "Іван",
		"phone":            "0671234567",
		"order_type":       "pickup",
		"customer_chat_id": 12345,
	}
	rec, _ := suite.do(http.MethodPost, "/api/orders", payload, "")
	suite.Equal(http.StatusCreated, rec.Code)
	suite.Zero(suite.Orders.lastChatID, "chat id from the body is ignored")

	payload["telegram_init_data"] = "forged"
	rec, _ = suite.do(http.MethodPost, "/api/orders", payload, "")
	suite.Equal(http.StatusBadRequest, rec.Code)

	payload["telegram_init_data"] = "signed"
	rec, _ = suite.do(http.MethodPost, "/api/orders", payload, "")
	suite.Equal(http.StatusCreated, rec.Code)
	suite.Equal(int64(777), suite.Orders.lastChatID)
}

func (suite *RouterTestSuite) TestChangeStatusUsesAdminLogin() {
	rec, _ := suite.do(http.MethodPut, "/api/orders/5/status", dto.ChangeStatusDTO{StatusID: 3}, suite.Token)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Адміністратор: admin", suite.Orders.lastActor.Description)
}

func (suite *RouterTestSuite) TestCallWaiter() {
	rec, _ := suite.do(http.MethodPost, "/api/menu/not-a-uuid/call-waiter", nil, "")
	suite.Equal(http.StatusNotFound, rec.Code)

	rec, _ = suite.do(http.MethodPost, "/api/menu/"+uuid.NewString()+"/call-waiter", nil, "")
	suite.Equal(http.StatusNotFound, rec.Code)

	rec, _ = suite.do(http.MethodPost, "/api/menu/"+suite.Table.String()+"/call-waiter", nil, "")
	suite.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (suite *RouterTestSuite) TestWebhookWithoutSecret() {
	rec, _ := suite.do(http.MethodPost, "/api/telegram/webhook/anything", map[string]int{"update_id": 1}, "")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
