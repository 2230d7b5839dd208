package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type WorkRequestController struct {
	workRequestService services.WorkRequestServiceInterface
	logger             *zap.Logger
}

func NewWorkRequestController(
	workRequestService services.WorkRequestServiceInterface,
	logger *zap.Logger,
) *WorkRequestController {
	return &WorkRequestController{
		workRequestService: workRequestService,
		logger:             logger,
	}
}

func (c *WorkRequestController) Create(ctx echo.Context) error {
	var payload dto.CreateWorkRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.workRequestService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ошибка создания заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *WorkRequestController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.workRequestService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ошибка получения списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заявки успешно получены", http.StatusOK, total)
}

func (c *WorkRequestController) Show(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID заявки"))
	}

	res, err := c.workRequestService.Show(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно получена", http.StatusOK)
}

// ShowView — заявка плюс справочники для формы редактирования.
func (c *WorkRequestController) ShowView(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID заявки"))
	}

	res, err := c.workRequestService.ShowView(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Данные формы успешно получены", http.StatusOK)
}

func (c *WorkRequestController) Update(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID заявки"))
	}

	var payload dto.UpdateWorkRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.workRequestService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("ошибка обновления заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

func (c *WorkRequestController) Cancel(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID заявки"))
	}

	if err := c.workRequestService.Cancel(ctx.Request().Context(), id); err != nil {
		c.logger.Error("ошибка отмены заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка отменена", http.StatusOK)
}

func (c *WorkRequestController) Delete(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID заявки"))
	}

	if err := c.workRequestService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка удалена", http.StatusOK)
}
