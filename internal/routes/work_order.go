package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runWorkOrderRouter(secure *echo.Group, ctrl *controllers.WorkOrderController) {
	secure.GET("/work-orders", ctrl.List)
	secure.POST("/work-orders", ctrl.Create)
	secure.GET("/work-orders/:id", ctrl.Show)
	secure.GET("/work-orders/:id/logs", ctrl.Logs)
}
