package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runProductRouter(secureGroup *echo.Group, productCtrl *controllers.ProductController) {
	secureGroup.GET("/products", productCtrl.GetProducts)
	secureGroup.PUT("/products/:id/area", productCtrl.SetArea)
}

func runTableRouter(secureGroup *echo.Group, tableCtrl *controllers.TableController) {
	secureGroup.GET("/tables", tableCtrl.GetTables)
	secureGroup.POST("/tables", tableCtrl.CreateTable)
	secureGroup.PUT("/tables/:id/waiters", tableCtrl.SetWaiters)
}
