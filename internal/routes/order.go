package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runOrderRouter(secureGroup *echo.Group, orderCtrl *controllers.OrderController) {
	orders := secureGroup.Group("/orders")
	{
		orders.GET("/:id", orderCtrl.FindOrder)
		orders.PUT("/:id/status", orderCtrl.ChangeStatus)
		orders.PUT("/:id/courier", orderCtrl.AssignCourier)
		orders.GET("/:id/history", orderCtrl.GetHistory)
	}
}
