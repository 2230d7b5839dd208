package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runWorkRequestRouter(secure *echo.Group, ctrl *controllers.WorkRequestController) {
	secure.GET("/work-requests", ctrl.List)
	secure.POST("/work-requests", ctrl.Create)
	secure.GET("/work-requests/:id", ctrl.Show)
	secure.GET("/work-requests/:id/view", ctrl.ShowView)
	secure.GET("/work-requests/:id/print", ctrl.ShowView)
	secure.PUT("/work-requests/:id", ctrl.Update)
	secure.POST("/work-requests/:id/cancel", ctrl.Cancel)
	secure.DELETE("/work-requests/:id", ctrl.Delete)
}
