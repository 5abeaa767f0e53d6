package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-system/internal/controllers"
	stafftelegram "restaurant-system/internal/controllers/telegram"
	"restaurant-system/internal/listeners"
	"restaurant-system/internal/notifications"
	"restaurant-system/internal/repositories"
	"restaurant-system/internal/routes"
	"restaurant-system/internal/services"
	"restaurant-system/pkg/config"
	"restaurant-system/pkg/customvalidator"
	"restaurant-system/pkg/database/postgresql"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/eventbus"
	applogger "restaurant-system/pkg/logger"
	appmiddleware "restaurant-system/pkg/middleware"
	"restaurant-system/pkg/service"
	"restaurant-system/pkg/telegram"
	"restaurant-system/pkg/utils"
	appwebsocket "restaurant-system/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logger := applogger.NewLogger("./logs/app.log")
	defer logger.Sync()

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Хранилища
	dbConn, err := postgresql.ConnectDB(appCtx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.RunMigrations {
		if err := postgresql.Migrate(appCtx, dbConn); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
		logger.Info("✅ Миграции применены")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(appCtx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 2. Репозитории
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	statusRepo := repositories.NewStatusRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn)
	historyRepo := repositories.NewOrderHistoryRepository(dbConn)
	employeeRepo := repositories.NewEmployeeRepository(dbConn)
	roleRepo := repositories.NewRoleRepository(dbConn)
	productRepo := repositories.NewProductRepository(dbConn)
	tableRepo := repositories.NewTableRepository(dbConn)

	// 3. Рассылка: боты, дашборд, диспетчер, шина событий
	hub := appwebsocket.NewHub(logger)
	go hub.Run(appCtx)

	staffBot := telegram.NewService(cfg.Telegram.AdminBotToken, telegram.WithDebug(cfg.Telegram.Debug))
	staffSender := notifications.NewMirrorSender(notifications.NewTelegramSender(staffBot), hub, logger)

	var customerSender notifications.Sender
	var customerIdentity controllers.CustomerIdentity
	if cfg.Telegram.ClientBotToken != "" {
		customerSender = notifications.NewTelegramSender(telegram.NewService(cfg.Telegram.ClientBotToken, telegram.WithDebug(cfg.Telegram.Debug)))
		customerIdentity = telegram.NewWebAppAuth(cfg.Telegram.ClientBotToken, telegram.DefaultInitDataMaxAge)
	} else {
		logger.Warn("CLIENT_BOT_TOKEN не задан: клиенты не получат уведомления о статусе")
	}

	statusService := services.NewStatusService(statusRepo, cacheRepo, cfg.Notify.StatusCacheTTL, logger)
	dispatcher := notifications.NewDispatcher(
		notifications.Config{AdminChatID: cfg.Telegram.AdminChatID, ReadyStatusCode: cfg.Notify.ReadyStatusCode},
		employeeRepo,
		productRepo,
		statusService,
		staffSender,
		customerSender,
		logger,
	)

	bus := eventbus.New(logger)
	listeners.NewNotificationListener(dispatcher, logger).Register(bus)

	// 4. Сервисы
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	orderService := services.NewOrderService(
		txManager, orderRepo, historyRepo, employeeRepo, productRepo, tableRepo,
		statusService, bus, cfg.Notify, logger,
	)
	employeeService := services.NewEmployeeService(employeeRepo, roleRepo, logger)
	tableService := services.NewTableService(tableRepo, employeeRepo, productRepo, dispatcher, logger)
	productService := services.NewProductService(productRepo)
	authService := services.NewAuthService(cfg.Admin, jwtSvc, logger)
	reportService := services.NewReportService(orderRepo, logger)

	staffBotCtrl := stafftelegram.NewStaffBotController(employeeService, orderService, staffBot, cacheRepo, cfg.Telegram, logger)
	go staffBotCtrl.RunCleanup(appCtx)

	// 5. HTTP
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	routes.InitRouter(e, &routes.Controllers{
		Auth:      controllers.NewAuthController(authService, logger),
		Status:    controllers.NewStatusController(statusService, logger),
		Order:     controllers.NewOrderController(orderService, customerIdentity, logger),
		Employee:  controllers.NewEmployeeController(employeeService, logger),
		Product:   controllers.NewProductController(productService, logger),
		Table:     controllers.NewTableController(tableService, logger),
		Menu:      controllers.NewMenuController(tableService, orderService, logger),
		Report:    controllers.NewReportController(reportService, logger),
		WebSocket: controllers.NewWebSocketController(hub, logger),
		StaffBot:  staffBotCtrl,
	}, appmiddleware.NewAuthMiddleware(jwtSvc, logger), logger)

	if cfg.Server.PublicURL != "" && cfg.Telegram.WebhookSecret != "" {
		go func() {
			hookURL := cfg.Server.PublicURL + "/api/telegram/webhook/" + cfg.Telegram.WebhookSecret
			if err := staffBot.SetWebhook(appCtx, hookURL, cfg.Telegram.WebhookSecret); err != nil {
				logger.Error("Не удалось зарегистрировать Telegram Webhook", zap.Error(err))
			}
		}()
	}

	// 6. Запуск и остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-appCtx.Done()
	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки HTTP-сервера", zap.Error(err))
	}
	// Запросы завершены: дожидаемся фоновых рассылок и ответов бота.
	staffBotCtrl.Wait()
	bus.Wait()
	logger.Info("Сервер остановлен")
}
