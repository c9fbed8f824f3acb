package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/cache"
	"github.com/SH20RAJ/sketchflow-sub001/internal/config"
	"github.com/SH20RAJ/sketchflow-sub001/internal/features/activities"
	collaborators_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/collaborators/controllers"
	comments_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/comments/controllers"
	projects_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/projects/controllers"
	system_healthcheck "github.com/SH20RAJ/sketchflow-sub001/internal/features/system/healthcheck"
	users_controllers "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/controllers"
	users_middleware "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/middleware"
	users_services "github.com/SH20RAJ/sketchflow-sub001/internal/features/users/services"
	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	env_utils "github.com/SH20RAJ/sketchflow-sub001/internal/util/env"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"
	_ "github.com/SH20RAJ/sketchflow-sub001/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// @title Sketchflow Backend API
// @version 1.0
// @description Collaboration API for Sketchflow projects

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runMigrations(log)
	testCacheConnection(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(gzip.DefaultCompression))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(ctx, log, ginApp)
}

func startServerWithGracefulShutdown(ctx context.Context, log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + config.GetEnv().HttpPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", slog.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen:", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	authMiddleware := users_middleware.AuthMiddleware(users_services.GetUserService())

	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetTagController().RegisterRoutes(protected)
	projects_controllers.GetDocumentController().RegisterRoutes(protected)
	collaborators_controllers.GetCollaboratorController().RegisterRoutes(protected)
	comments_controllers.GetCommentController().RegisterRoutes(protected)
	activities.GetActivityController().RegisterRoutes(protected)
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	cmd := exec.Command("swag", "init", "-d", ".", "-g", "cmd/main.go", "-o", "swagger")
	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	err := storage.RunMigrations(storage.GetDb(), config.GetEnv().MigrationsPath(), log)
	if err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
}

func testCacheConnection(log *slog.Logger) {
	log.Info("Testing cache connection...")

	if err := cache.Ping(cache.GetCache()); err != nil {
		log.Error("Failed to connect to cache", "error", err)
		os.Exit(1)
	}

	log.Info("Cache connection test successful")
}

func enableCors(ginApp *gin.Engine) {
	allowOrigins := []string{config.GetEnv().AppURL}
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		allowOrigins = []string{"*"}
	}

	ginApp.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
		},
		AllowCredentials: allowOrigins[0] != "*",
	}))
}
