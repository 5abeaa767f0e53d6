package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runStatusRouter(secureGroup *echo.Group, statusCtrl *controllers.StatusController) {
	secureGroup.GET("/statuses", statusCtrl.GetStatuses)
	secureGroup.POST("/statuses", statusCtrl.CreateStatus)
	secureGroup.GET("/statuses/:id", statusCtrl.FindStatus)
	secureGroup.PUT("/statuses/:id", statusCtrl.UpdateStatus)
	secureGroup.DELETE("/statuses/:id", statusCtrl.DeleteStatus)
}
