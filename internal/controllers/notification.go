package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(
	notificationService services.NotificationServiceInterface,
	logger *zap.Logger,
) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

// My — уведомления текущего пользователя, новые сверху.
func (c *NotificationController) My(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.notificationService.MyNotifications(ctx.Request().Context(), filter.Limit, filter.Offset)
	if err != nil {
		c.logger.Error("ошибка получения уведомлений", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Уведомления успешно получены", http.StatusOK, total)
}
