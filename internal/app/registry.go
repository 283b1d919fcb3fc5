package app

import (
	"database/sql"

	"github.com/logfretaulnay/hr-zen/internal/auth"
	"github.com/logfretaulnay/hr-zen/internal/balance"
	"github.com/logfretaulnay/hr-zen/internal/holiday"
	"github.com/logfretaulnay/hr-zen/internal/leave"
	"github.com/logfretaulnay/hr-zen/internal/leavetype"
	"github.com/logfretaulnay/hr-zen/internal/messaging/kafka"
	"github.com/logfretaulnay/hr-zen/internal/middleware"
	"github.com/logfretaulnay/hr-zen/internal/notification"
	"github.com/logfretaulnay/hr-zen/internal/profile"
	"github.com/logfretaulnay/hr-zen/internal/rbac"
	"github.com/logfretaulnay/hr-zen/internal/rbac/infra"
	"github.com/logfretaulnay/hr-zen/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(db, authRepo, profileRepo)
	profileService := profile.NewService(db, profileRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	holidayService := holiday.NewService(db, holidayRepo)
	balanceService := balance.NewService(db, balanceRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, balanceService)
	notificationService := notification.NewService(db, notificationRepo, profileRepo, notification.NewLogDispatcher())
	settingsService := settings.NewService(db, settingsRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	balanceHandler := balance.NewHandler(balanceService)
	notificationHandler := notification.NewHandler(notificationService)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Global middleware & routes ---
	middleware.InitMetrics()
	router.Use(middleware.RequestID(), middleware.Metrics(), middleware.ContextLogger(zap.L()))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		profile.RegisterRoutes(api, profileHandler, rbacService, profileRepo)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService, profileRepo)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, profileRepo)
		leave.RegisterRoutes(api, leaveHandler, rbacService, profileRepo, rdb)
		balance.RegisterRoutes(api, balanceHandler, rbacService, profileRepo)
		notification.RegisterRoutes(api, notificationHandler, rbacService, profileRepo)
		settings.RegisterRoutes(api, settingsHandler, rbacService, profileRepo)
	}

	return nil
}
