package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-records-api/api/swagger"
	"github.com/noah-isme/campus-records-api/internal/handler"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/internal/service"
	"github.com/noah-isme/campus-records-api/pkg/config"
	"github.com/noah-isme/campus-records-api/pkg/export"
	"github.com/noah-isme/campus-records-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-records-api/pkg/middleware/requestid"
	"github.com/noah-isme/campus-records-api/pkg/storage"
)

// @title Campus Records API
// @version 0.1.0
// @description In-memory academic records manager
// @BasePath /api/v1
// @schemes http

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

	store, err := storage.NewLocalStorage(cfg.Dirs.Data)
	if err != nil {
		logr.Sugar().Fatalw("storage init failed", "error", err)
	}
	if err := store.EnsureTree("exports", "backups", "imports"); err != nil {
		logr.Sugar().Fatalw("storage tree failed", "error", err)
	}

	students := repository.NewStudentStore()
	courses := repository.NewCourseStore()
	instructors := repository.NewInstructorStore()
	enrollments := repository.NewEnrollmentStore()

	validate := validator.New()
	metrics := service.NewMetricsService()

	studentSvc := service.NewStudentService(students, courses, cfg.Registrar, validate, logr)
	courseSvc := service.NewCourseService(courses, instructors, validate, logr)
	instructorSvc := service.NewInstructorService(instructors, validate, logr)
	registrarSvc := service.NewRegistrarService(students, courses, enrollments, cfg.Registrar, logr)
	analyticsSvc := service.NewAnalyticsService(studentSvc, courseSvc, instructorSvc, enrollments, logr)
	importSvc := service.NewImportService(students, courses, export.NewCSVExporter(), metrics, logr)
	exportSvc := service.NewExportService(students, courses, enrollments, store, logr)
	backupSvc := service.NewBackupService(store, cfg.Dirs.Data, cfg.Backup, metrics, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg, handler.Handlers{
		Students:    handler.NewStudentHandler(studentSvc, registrarSvc, metrics),
		Courses:     handler.NewCourseHandler(courseSvc),
		Instructors: handler.NewInstructorHandler(instructorSvc),
		Enrollments: handler.NewEnrollmentHandler(registrarSvc),
		Analytics:   handler.NewAnalyticsHandler(analyticsSvc, metrics),
		Admin:       handler.NewAdminHandler(importSvc, exportSvc, backupSvc),
		Metrics:     metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
