package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/auth"
	"github.com/taskforge/scheduler/internal/clock"
	"github.com/taskforge/scheduler/internal/config"
	"github.com/taskforge/scheduler/internal/httpapi"
	"github.com/taskforge/scheduler/internal/lock"
	"github.com/taskforge/scheduler/internal/logging"
	"github.com/taskforge/scheduler/internal/scheduler"
	"github.com/taskforge/scheduler/internal/store/gormstore"
	"github.com/taskforge/scheduler/internal/summary"
	"github.com/taskforge/scheduler/internal/tracker"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid scheduling zone", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	db, err := gormstore.Connect(gormstore.ConnectConfig{
		Dialect:    gormstore.Dialect(cfg.DBDialect),
		DSN:        cfg.DBDSN,
		DBHost:     cfg.DBHost,
		DBPort:     cfg.DBPort,
		DBUser:     cfg.DBUser,
		DBPassword: cfg.DBPassword,
		DBName:     cfg.DBName,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := gormstore.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	taskStore := gormstore.NewTaskStore(db)
	reportStore := gormstore.NewReportStore(db)
	userStore := gormstore.NewUserStore(db)

	locks := lock.NewKeyed()
	realClock := clock.Real{}

	schedulerSvc := scheduler.New(taskStore, realClock, locks, logger)
	execTracker := tracker.New(taskStore, logger)
	authSvc := auth.New(userStore)

	var summaryProvider summary.Provider
	if cfg.OpenAIAPIKey != "" {
		summaryProvider = summary.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	handlers := httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc),
		Tasks:     httpapi.NewTaskHandler(taskStore),
		Scheduler: httpapi.NewSchedulerHandler(schedulerSvc, execTracker, taskStore, loc, cfg.DefaultWindowEndMinutes),
		Reports:   httpapi.NewReportHandler(taskStore, reportStore, summaryProvider, loc),
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessStore, err := redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
	if err != nil {
		logger.Fatal("failed to create redis session store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	sessStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Default, 2=Lax, 3=Strict, 4=None)
	})

	router := httpapi.NewRouter(handlers, sessStore, cfg.MetricsEnabled)

	logger.Info("server starting", zap.String("addr", ":8080"))
	if err := router.Run(":8080"); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
