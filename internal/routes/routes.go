package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/dispatch"
	"maintenance-system/internal/listeners"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/notify"
	"maintenance-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры, слушателей событий — и навешивает маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")

	// --- репозитории ---
	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	adminRepo := repositories.NewAdminRepository(dbConn)
	technicianRepo := repositories.NewTechnicianRepository(dbConn)
	departmentRepo := repositories.NewDepartmentRepository(dbConn)
	permissionRepo := repositories.NewPermissionRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	zoneRepo := repositories.NewZoneRepository(dbConn)
	requestRepo := repositories.NewWorkRequestRepository(dbConn)
	orderRepo := repositories.NewWorkOrderRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)

	// --- доставка уведомлений ---
	dispatcher := notify.NewDispatcher(notificationRepo, logger)
	var pushSvc notify.PushServiceInterface
	if cfg.FCM.ServerKey != "" {
		pushSvc = notify.NewPushService(cfg.FCM.Endpoint, cfg.FCM.ServerKey, logger)
	} else {
		logger.Warn("FCM_SERVER_KEY не задан, push-уведомления отключены")
		pushSvc = notify.NopPushService{}
	}
	listeners.NewNotificationListener(dispatcher, pushSvc, logger).Register(bus)

	// --- сервисы ---
	gatekeeper := authz.NewGatekeeper()
	policy := dispatch.Policy{
		Window: dispatch.Window{
			Start: cfg.Dispatch.BusinessDayStart,
			End:   cfg.Dispatch.BusinessDayEnd,
		},
		NotifyDelay: cfg.Dispatch.NotifyDelay,
	}

	authPermSvc := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger, cfg.Redis.PermissionsTTL)
	authSvc := services.NewAuthService(userRepo, jwtSvc, logger)
	requestSvc := services.NewWorkRequestService(
		txManager, requestRepo, orderRepo, technicianRepo, adminRepo,
		userRepo, equipmentRepo, gatekeeper, policy, bus, logger,
	)
	orderSvc := services.NewWorkOrderService(
		txManager, orderRepo, requestRepo, technicianRepo, adminRepo, gatekeeper, logger,
	)
	equipmentSvc := services.NewEquipmentService(equipmentRepo, userRepo, gatekeeper, logger)
	importSvc := services.NewEquipmentImportService(equipmentRepo, zoneRepo, gatekeeper, logger)
	zoneSvc := services.NewZoneService(zoneRepo, departmentRepo, gatekeeper, logger)
	technicianSvc := services.NewTechnicianService(technicianRepo, gatekeeper, logger)
	notificationSvc := services.NewNotificationService(notificationRepo)

	// --- контроллеры ---
	authCtrl := controllers.NewAuthController(authSvc, logger)
	requestCtrl := controllers.NewWorkRequestController(requestSvc, logger)
	orderCtrl := controllers.NewWorkOrderController(orderSvc, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentSvc, importSvc, logger)
	zoneCtrl := controllers.NewZoneController(zoneSvc, logger)
	technicianCtrl := controllers.NewTechnicianController(technicianSvc, logger)
	notificationCtrl := controllers.NewNotificationController(notificationSvc, logger)

	// --- маршруты ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermSvc, logger)

	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/refresh", authCtrl.Refresh)

	secure := api.Group("", authMW.Auth)
	secure.POST("/auth/device", authCtrl.RegisterDevice)

	runWorkRequestRouter(secure, requestCtrl)
	runWorkOrderRouter(secure, orderCtrl)
	runEquipmentRouter(secure, equipmentCtrl)
	runZoneRouter(secure, zoneCtrl)
	runTechnicianRouter(secure, technicianCtrl)

	secure.GET("/notifications/my", notificationCtrl.My)

	logger.Info("маршруты инициализированы")
}
