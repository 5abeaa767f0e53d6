package routes

import (
	"restaurant-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEmployeeRouter(secureGroup *echo.Group, employeeCtrl *controllers.EmployeeController) {
	secureGroup.GET("/employees", employeeCtrl.GetEmployees)
	secureGroup.POST("/employees", employeeCtrl.CreateEmployee)
	secureGroup.PUT("/employees/:id/shift", employeeCtrl.SetShift)
	secureGroup.GET("/roles", employeeCtrl.GetRoles)
}
