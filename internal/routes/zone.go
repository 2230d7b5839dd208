package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runZoneRouter(secure *echo.Group, ctrl *controllers.ZoneController) {
	secure.GET("/zones", ctrl.List)
	secure.POST("/zones", ctrl.Create)
}
