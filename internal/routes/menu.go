package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

// runMenuRouter - ручки по QR-коду столика, без авторизации.
func runMenuRouter(api *echo.Group, menuCtrl *controllers.MenuController) {
	menu := api.Group("/menu/:token")
	{
		menu.GET("", menuCtrl.GetMenu)
		menu.POST("/orders", menuCtrl.CreateTableOrder)
		menu.POST("/call-waiter", menuCtrl.CallWaiter)
		menu.POST("/request-bill", menuCtrl.RequestBill)
	}
}
