package routes

import (
	"github.com/labstack/echo/v4"

	"maintenance-system/internal/controllers"
)

func runEquipmentRouter(secure *echo.Group, ctrl *controllers.EquipmentController) {
	secure.GET("/equipments", ctrl.List)
	secure.POST("/equipments", ctrl.Create)
	secure.POST("/equipments/import", ctrl.Import)
	secure.GET("/equipments/:id", ctrl.Show)
	secure.PUT("/equipments/:id", ctrl.Update)
	secure.DELETE("/equipments/:id", ctrl.Delete)
}
