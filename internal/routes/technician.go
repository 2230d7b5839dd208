package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runTechnicianRouter(secure *echo.Group, ctrl *controllers.TechnicianController) {
	secure.GET("/technicians", ctrl.List)
	secure.PATCH("/technicians/:id/status", ctrl.UpdateStatus)
}
