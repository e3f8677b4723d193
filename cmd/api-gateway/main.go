package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classdeck/classdeck-api/api/swagger"
	"github.com/classdeck/classdeck-api/internal/client"
	"github.com/classdeck/classdeck-api/internal/handler"
	"github.com/classdeck/classdeck-api/internal/middleware"
	"github.com/classdeck/classdeck-api/internal/repository"
	"github.com/classdeck/classdeck-api/internal/service"
	"github.com/classdeck/classdeck-api/pkg/cache"
	"github.com/classdeck/classdeck-api/pkg/config"
	"github.com/classdeck/classdeck-api/pkg/database"
	"github.com/classdeck/classdeck-api/pkg/export"
	"github.com/classdeck/classdeck-api/pkg/logger"
	corsmiddleware "github.com/classdeck/classdeck-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classdeck/classdeck-api/pkg/middleware/requestid"
	"github.com/classdeck/classdeck-api/pkg/storage"
)

// @title ClassDeck API
// @version 1.0.0
// @description Classroom dashboard backend: lesson boards, bell-schedule detection, and public share views
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	// Repositories.
	boardRepo := repository.NewBoardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.CacheTTL, logr, true)

	boardSvc := service.NewBoardService(boardRepo, logr, cfg.Boards.DefaultThemeID)
	settingsSvc := service.NewSettingsService(settingsRepo, logr)

	calendarClient := client.NewCalendarClient(cfg.Calendar)
	scheduleSvc := service.NewScheduleService(calendarClient, cacheSvc, logr, cfg.Calendar.CacheTTL)

	syncManager := service.NewSyncManager(boardSvc, scheduleSvc, logr, cfg.Boards.DebounceInterval)

	authSvc := service.NewAuthService(sessionRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.Session.Secret,
		Expiration: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})

	generationSvc := service.NewGenerationService(nil, logr)
	if cfg.Generator.Enabled {
		generationSvc = service.NewGenerationService(client.NewCompletionClient(cfg.Generator), logr)
	}

	shareSvc := service.NewShareService(boardSvc, settingsSvc, logr, cfg.Share.BaseURL)

	classroomSvc := service.NewClassroomService(nil, shareSvc, boardSvc, logr)
	if cfg.Classroom.Enabled {
		classroomSvc = service.NewClassroomService(client.NewClassroomClient(cfg.Classroom), shareSvc, boardSvc, logr)
	}

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("exports storage init failed", "error", err)
		}
		exportSvc = service.NewExportService(service.ExportServiceParams{
			Boards:            boardSvc,
			Settings:          settingsSvc,
			Exporter:          export.NewPDFExporter(),
			Files:             files,
			Signer:            storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
			Cache:             cacheSvc,
			Logger:            logr,
			WorkerConcurrency: cfg.Exports.WorkerConcurrency,
			WorkerRetries:     cfg.Exports.WorkerRetries,
		})
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc, syncManager)
	boardHandler := handler.NewBoardHandler(syncManager, scheduleSvc, settingsSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, settingsSvc)
	generationHandler := handler.NewGenerationHandler(generationSvc, syncManager)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	shareHandler := handler.NewShareHandler(shareSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/system", metricsHandler.System)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/signin", authHandler.SignIn)
	api.GET("/share/:teacherId/:classId/:date", shareHandler.View)

	authed := api.Group("", middleware.Session(authSvc))
	{
		authed.POST("/auth/signout", authHandler.SignOut)
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/board", boardHandler.State)
		authed.PUT("/board/selection", boardHandler.Select)
		authed.PUT("/board/sections/:key", boardHandler.EditSection)
		authed.PUT("/board/sections/:key/media", boardHandler.AttachMedia)
		authed.DELETE("/board/sections/:key/media", boardHandler.RemoveMedia)
		authed.PUT("/board/layout", boardHandler.UpdateLayout)
		authed.PUT("/board/theme", boardHandler.UpdateTheme)
		authed.PUT("/board/schedule-override", boardHandler.SetScheduleOverride)
		authed.POST("/board/flush", boardHandler.Flush)

		authed.GET("/settings", settingsHandler.Get)
		authed.PATCH("/settings", settingsHandler.Update)

		authed.GET("/schedule", scheduleHandler.Day)
		authed.GET("/schedule/classify", scheduleHandler.Classify)

		authed.POST("/generate/section", generationHandler.Section)
		authed.POST("/generate/board", generationHandler.Board)

		authed.GET("/classroom/courses", classroomHandler.Courses)
		authed.GET("/classroom/courses/:courseId/coursework", classroomHandler.CourseWork)
		authed.POST("/classroom/courses/:courseId/announcements", classroomHandler.Announce)
	}

	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		api.GET("/exports/download", exportHandler.Download)
		authed.POST("/exports", exportHandler.Create)
		authed.GET("/exports/jobs/:id", exportHandler.Status)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if exportSvc != nil {
		exportSvc.Start(ctx)
		defer exportSvc.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
}
