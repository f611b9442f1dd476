package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/service"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// CourseHandler exposes the course catalog endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param department query string false "Filter by department"
// @Param semester query string false "Filter by semester"
// @Param instructor query string false "Filter by instructor id"
// @Param q query string false "Title search"
// @Param min_credits query int false "Minimum credits"
// @Param max_credits query int false "Maximum credits"
// @Param filter query string false "popular | underenrolled | available | prereqs"
// @Param sort query string false "enrollment | availability"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if department := c.Query("department"); department != "" {
		response.JSON(c, http.StatusOK, h.courses.ByDepartment(ctx, department), nil)
		return
	}
	if query := c.Query("q"); query != "" {
		response.JSON(c, http.StatusOK, h.courses.TitleSearch(ctx, query), nil)
		return
	}
	if c.Query("min_credits") != "" || c.Query("max_credits") != "" {
		min, err := strconv.Atoi(c.DefaultQuery("min_credits", "1"))
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid min_credits"))
			return
		}
		max, err := strconv.Atoi(c.DefaultQuery("max_credits", "6"))
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid max_credits"))
			return
		}
		response.JSON(c, http.StatusOK, h.courses.ByCreditRange(ctx, min, max), nil)
		return
	}
	if rawSemester := c.Query("semester"); rawSemester != "" {
		semester, err := models.ParseSemester(rawSemester)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, h.courses.BySemester(ctx, semester), nil)
		return
	}
	if instructor := c.Query("instructor"); instructor != "" {
		response.JSON(c, http.StatusOK, h.courses.ByInstructor(ctx, instructor), nil)
		return
	}
	switch c.Query("filter") {
	case "popular":
		response.JSON(c, http.StatusOK, h.courses.Popular(ctx), nil)
		return
	case "underenrolled":
		response.JSON(c, http.StatusOK, h.courses.Underenrolled(ctx), nil)
		return
	case "available":
		response.JSON(c, http.StatusOK, h.courses.WithAvailableSpots(ctx), nil)
		return
	case "prereqs":
		response.JSON(c, http.StatusOK, h.courses.WithPrerequisites(ctx), nil)
		return
	}
	switch c.Query("sort") {
	case "enrollment":
		response.JSON(c, http.StatusOK, h.courses.SortedByEnrollment(ctx), nil)
		return
	case "availability":
		response.JSON(c, http.StatusOK, h.courses.SortedByAvailability(ctx), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.courses.List(ctx), nil)
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{code} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param payload body service.UpdateCourseRequest true "Course changes"
// @Success 200 {object} response.Envelope
// @Router /courses/{code} [patch]
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// SetActive godoc
// @Summary Activate or deactivate a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param payload body setActiveRequest true "Active flag"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/active [put]
func (h *CourseHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ctx := c.Request.Context()
	var changed bool
	var err error
	if req.Active {
		changed, err = h.courses.Activate(ctx, c.Param("code"))
	} else {
		changed, err = h.courses.Deactivate(ctx, c.Param("code"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"changed": changed}, nil)
}

type assignInstructorRequest struct {
	InstructorID string `json:"instructor_id" binding:"required"`
}

// AssignInstructor godoc
// @Summary Assign instructor to course
// @Tags Courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param payload body assignInstructorRequest true "Instructor id"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/instructor [put]
func (h *CourseHandler) AssignInstructor(c *gin.Context) {
	var req assignInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assigned, err := h.courses.AssignInstructor(c.Request.Context(), c.Param("code"), req.InstructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !assigned {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "instructor not found"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"assigned": true}, nil)
}

// Roster godoc
// @Summary Get course roster
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/roster [get]
func (h *CourseHandler) Roster(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"course_code":     course.Code.String(),
		"roster":          course.Roster(),
		"enrolled":        course.CurrentEnrollment(),
		"max_capacity":    course.MaxCapacity,
		"available_spots": course.AvailableSpots(),
		"status":          course.StatusSummary(),
	}, nil)
}

// Stats godoc
// @Summary Course catalog statistics
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/stats [get]
func (h *CourseHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	response.JSON(c, http.StatusOK, gin.H{
		"total":         len(h.courses.List(ctx)),
		"by_department": h.courses.DepartmentCounts(ctx),
		"by_semester":   h.courses.SemesterCounts(ctx),
		"by_credits":    h.courses.CreditCounts(ctx),
		"status_groups": h.courses.StatusGroups(ctx),
		"average_fill":  h.courses.AverageEnrollmentPercentage(ctx),
	}, nil)
}

// Catalog godoc
// @Summary Render course catalog text
// @Tags Courses
// @Produce plain
// @Success 200 {string} string
// @Router /courses/catalog [get]
func (h *CourseHandler) Catalog(c *gin.Context) {
	c.String(http.StatusOK, h.courses.Catalog(c.Request.Context()))
}
