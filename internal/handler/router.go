package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/middleware"
	"github.com/noah-isme/campus-records-api/internal/service"
	"github.com/noah-isme/campus-records-api/pkg/config"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Students    *StudentHandler
	Courses     *CourseHandler
	Instructors *InstructorHandler
	Enrollments *EnrollmentHandler
	Analytics   *AnalyticsHandler
	Admin       *AdminHandler
	Metrics     *service.MetricsService
}

// RegisterRoutes mounts all API routes under the configured prefix. The
// serialization middleware wraps the whole group so the lock-free stores
// only ever see one request at a time.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, h Handlers) {
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Serialize())
	api.Use(middleware.Metrics(h.Metrics))

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/top", h.Students.Top)
		students.GET("/stats", h.Students.Stats)
		students.GET("/:id", h.Students.Get)
		students.PATCH("/:id", h.Students.Update)
		students.PUT("/:id/active", h.Students.SetActive)
		students.POST("/:id/enrollments", h.Students.Enroll)
		students.DELETE("/:id/enrollments/:code", h.Students.Drop)
		students.POST("/:id/grades", h.Students.Grade)
		students.GET("/:id/transcript", h.Students.Transcript)
		students.GET("/:id/audit", h.Students.AuditTrail)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.Courses.List)
		courses.POST("", h.Courses.Create)
		courses.GET("/catalog", h.Courses.Catalog)
		courses.GET("/stats", h.Courses.Stats)
		courses.GET("/:code", h.Courses.Get)
		courses.PATCH("/:code", h.Courses.Update)
		courses.PUT("/:code/active", h.Courses.SetActive)
		courses.PUT("/:code/instructor", h.Courses.AssignInstructor)
		courses.GET("/:code/roster", h.Courses.Roster)
	}

	instructors := api.Group("/instructors")
	{
		instructors.GET("", h.Instructors.List)
		instructors.POST("", h.Instructors.Create)
		instructors.GET("/:id", h.Instructors.Get)
		instructors.PATCH("/:id", h.Instructors.Update)
		instructors.POST("/:id/qualifications", h.Instructors.AddQualification)
		instructors.GET("/:id/profile", h.Instructors.Profile)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", h.Enrollments.List)
		enrollments.GET("/:id", h.Enrollments.Get)
		enrollments.GET("/:id/report", h.Enrollments.Report)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", h.Analytics.Overview)
		analytics.GET("/report", h.Analytics.Report)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/import/students", h.Admin.ImportStudents)
		admin.POST("/import/courses", h.Admin.ImportCourses)
		admin.POST("/export", h.Admin.Export)
		admin.GET("/export", h.Admin.ListExports)
		admin.GET("/export/transcript/:id", h.Admin.TranscriptPDF)
		admin.GET("/export/catalog", h.Admin.CatalogPDF)
		admin.POST("/backups", h.Admin.CreateBackup)
		admin.GET("/backups", h.Admin.ListBackups)
		admin.POST("/backups/cleanup", h.Admin.CleanupBackups)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}
