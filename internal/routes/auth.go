package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
	}
}
