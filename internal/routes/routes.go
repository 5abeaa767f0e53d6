package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"restaurant-system/internal/controllers"
	"restaurant-system/internal/controllers/telegram"
	"restaurant-system/pkg/middleware"
)

// Controllers - всё, что нужно роутеру. Собирается в app/main.go.
type Controllers struct {
	Auth      *controllers.AuthController
	Status    *controllers.StatusController
	Order     *controllers.OrderController
	Employee  *controllers.EmployeeController
	Product   *controllers.ProductController
	Table     *controllers.TableController
	Menu      *controllers.MenuController
	Report    *controllers.ReportController
	WebSocket *controllers.WebSocketController
	StaffBot  *telegram.StaffBotController
}

func InitRouter(e *echo.Echo, ctrl *Controllers, authMW *middleware.AuthMiddleware, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// Публичные: сайт, меню столика, вход администратора, вебхук бота.
	runAuthRouter(api, ctrl.Auth)
	runMenuRouter(api, ctrl.Menu)
	api.POST("/orders", ctrl.Order.CreateWebOrder)
	runTelegramRouter(api, ctrl.StaffBot)

	secureGroup := api.Group("", authMW.Auth)
	runStatusRouter(secureGroup, ctrl.Status)
	runOrderRouter(secureGroup, ctrl.Order)
	runEmployeeRouter(secureGroup, ctrl.Employee)
	runProductRouter(secureGroup, ctrl.Product)
	runTableRouter(secureGroup, ctrl.Table)
	runReportRouter(secureGroup, ctrl.Report)

	e.GET("/ws", ctrl.WebSocket.ServeWs, authMW.QueryToken)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
