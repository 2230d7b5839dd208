package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type WorkOrderController struct {
	workOrderService services.WorkOrderServiceInterface
	logger           *zap.Logger
}

func NewWorkOrderController(
	workOrderService services.WorkOrderServiceInterface,
	logger *zap.Logger,
) *WorkOrderController {
	return &WorkOrderController{
		workOrderService: workOrderService,
		logger:           logger,
	}
}

func (c *WorkOrderController) Create(ctx echo.Context) error {
	var payload dto.CreateWorkOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.workOrderService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка создания ордера", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Ордер успешно создан", http.StatusCreated)
}

func (c *WorkOrderController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.workOrderService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ошибка получения списка ордеров", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Ордера успешно получены", http.StatusOK, total)
}

func (c *WorkOrderController) Show(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID ордера"))
	}

	res, err := c.workOrderService.Show(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Ордер успешно получен", http.StatusOK)
}

func (c *WorkOrderController) Logs(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID ордера"))
	}

	res, err := c.workOrderService.Logs(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Журнал ордера успешно получен", http.StatusOK)
}
