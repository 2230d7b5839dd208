package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type TechnicianController struct {
	technicianService services.TechnicianServiceInterface
	logger            *zap.Logger
}

func NewTechnicianController(
	technicianService services.TechnicianServiceInterface,
	logger *zap.Logger,
) *TechnicianController {
	return &TechnicianController{technicianService: technicianService, logger: logger}
}

func (c *TechnicianController) List(ctx echo.Context) error {
	res, err := c.technicianService.List(ctx.Request().Context())
	if err != nil {
		c.logger.Error("ошибка получения списка техников", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Техники успешно получены", http.StatusOK)
}

func (c *TechnicianController) UpdateStatus(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID техника"))
	}

	var payload dto.UpdateTechnicianStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.technicianService.UpdateStatus(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("ошибка смены статуса техника", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Статус техника обновлён", http.StatusOK)
}
