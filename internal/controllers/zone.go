package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type ZoneController struct {
	zoneService services.ZoneServiceInterface
	logger      *zap.Logger
}

func NewZoneController(zoneService services.ZoneServiceInterface, logger *zap.Logger) *ZoneController {
	return &ZoneController{zoneService: zoneService, logger: logger}
}

func (c *ZoneController) List(ctx echo.Context) error {
	res, err := c.zoneService.List(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ошибка получения списка зон", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Зоны успешно получены", http.StatusOK)
}

func (c *ZoneController) Create(ctx echo.Context) error {
	var payload dto.CreateZoneDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.zoneService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка создания зоны", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Зона успешно создана", http.StatusCreated)
}
