package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/service"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// StudentHandler exposes the student roster endpoints.
type StudentHandler struct {
	students  *service.StudentService
	registrar *service.RegistrarService
	metrics   *service.MetricsService
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(students *service.StudentService, registrar *service.RegistrarService, metrics *service.MetricsService) *StudentHandler {
	return &StudentHandler{students: students, registrar: registrar, metrics: metrics}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param department query string false "Filter by department"
// @Param active query bool false "Only active students"
// @Param reg_pattern query string false "Registration number regexp"
// @Param min_gpa query number false "Minimum GPA"
// @Param max_gpa query number false "Maximum GPA"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if pattern := c.Query("reg_pattern"); pattern != "" {
		students, err := h.students.ByRegistrationPattern(ctx, pattern)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, students, nil)
		return
	}
	if department := c.Query("department"); department != "" {
		response.JSON(c, http.StatusOK, h.students.ByDepartment(ctx, department), nil)
		return
	}
	if c.Query("min_gpa") != "" || c.Query("max_gpa") != "" {
		min, err := strconv.ParseFloat(c.DefaultQuery("min_gpa", "0"), 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid min_gpa"))
			return
		}
		max, err := strconv.ParseFloat(c.DefaultQuery("max_gpa", "10"), 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid max_gpa"))
			return
		}
		response.JSON(c, http.StatusOK, h.students.ByGPARange(ctx, min, max), nil)
		return
	}
	if c.Query("active") == "true" {
		response.JSON(c, http.StatusOK, h.students.ActiveStudents(ctx), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.students.List(ctx), nil)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student profile
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Profile changes"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive godoc
// @Summary Activate or deactivate a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body setActiveRequest true "Active flag"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/active [put]
func (h *StudentHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ctx := c.Request.Context()
	var changed bool
	var err error
	if req.Active {
		changed, err = h.students.Activate(ctx, c.Param("id"))
	} else {
		changed, err = h.students.Deactivate(ctx, c.Param("id"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"changed": changed}, nil)
}

type enrollRequest struct {
	CourseCode string `json:"course_code" binding:"required"`
}

// Enroll godoc
// @Summary Enroll student in course
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body enrollRequest true "Course code"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/enrollments [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.registrar.Enroll(c.Request.Context(), c.Param("id"), req.CourseCode)
	h.metrics.RecordRegistrarOp("enroll", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Drop godoc
// @Summary Drop student from course
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param code path string true "Course code"
// @Success 204
// @Router /students/{id}/enrollments/{code} [delete]
func (h *StudentHandler) Drop(c *gin.Context) {
	err := h.registrar.Drop(c.Request.Context(), c.Param("id"), c.Param("code"))
	h.metrics.RecordRegistrarOp("drop", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type gradeRequest struct {
	CourseCode string  `json:"course_code" binding:"required"`
	Marks      float64 `json:"marks"`
}

// Grade godoc
// @Summary Record marks for a student's course
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body gradeRequest true "Marks payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/grades [post]
func (h *StudentHandler) Grade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.registrar.Grade(c.Request.Context(), c.Param("id"), req.CourseCode, req.Marks)
	h.metrics.RecordRegistrarOp("grade", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Transcript godoc
// @Summary Render student transcript
// @Tags Students
// @Produce plain
// @Param id path string true "Student ID"
// @Success 200 {string} string
// @Router /students/{id}/transcript [get]
func (h *StudentHandler) Transcript(c *gin.Context) {
	transcript, err := h.students.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.String(http.StatusOK, transcript)
}

// AuditTrail godoc
// @Summary Get student audit trail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/audit [get]
func (h *StudentHandler) AuditTrail(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student.AuditTrail(), nil)
}

// Top godoc
// @Summary List top performers by GPA
// @Tags Students
// @Produce json
// @Param n query int false "How many students"
// @Success 200 {object} response.Envelope
// @Router /students/top [get]
func (h *StudentHandler) Top(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid n"))
		return
	}
	response.JSON(c, http.StatusOK, h.students.TopPerformers(c.Request.Context(), n), nil)
}

// Stats godoc
// @Summary Student statistics
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/stats [get]
func (h *StudentHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	response.JSON(c, http.StatusOK, gin.H{
		"total":            len(h.students.List(ctx)),
		"active":           len(h.students.ActiveStudents(ctx)),
		"average_gpa":      h.students.AverageGPA(ctx),
		"by_department":    h.students.DepartmentCounts(ctx),
		"gpa_distribution": h.students.GPADistribution(ctx),
	}, nil)
}
