package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/service"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// InstructorHandler exposes the teaching staff endpoints.
type InstructorHandler struct {
	instructors *service.InstructorService
}

// NewInstructorHandler constructs an instructor handler.
func NewInstructorHandler(instructors *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Param department query string false "Filter by department"
// @Param filter query string false "overloaded | senior"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if department := c.Query("department"); department != "" {
		response.JSON(c, http.StatusOK, h.instructors.ByDepartment(ctx, department), nil)
		return
	}
	switch c.Query("filter") {
	case "overloaded":
		response.JSON(c, http.StatusOK, h.instructors.Overloaded(ctx), nil)
		return
	case "senior":
		response.JSON(c, http.StatusOK, h.instructors.Senior(ctx), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.instructors.List(ctx), nil)
}

// Get godoc
// @Summary Get instructor detail
// @Tags Instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	instructor, err := h.instructors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

// Create godoc
// @Summary Record instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param payload body service.CreateInstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	var req service.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := h.instructors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// Update godoc
// @Summary Update instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param payload body service.UpdateInstructorRequest true "Staff changes"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [patch]
func (h *InstructorHandler) Update(c *gin.Context) {
	var req service.UpdateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := h.instructors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, nil)
}

type qualificationRequest struct {
	Qualification string `json:"qualification" binding:"required"`
}

// AddQualification godoc
// @Summary Add instructor qualification
// @Tags Instructors
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param payload body qualificationRequest true "Qualification"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id}/qualifications [post]
func (h *InstructorHandler) AddQualification(c *gin.Context) {
	var req qualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	added, err := h.instructors.AddQualification(c.Request.Context(), c.Param("id"), req.Qualification)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"added": added}, nil)
}

// Profile godoc
// @Summary Render instructor profile text
// @Tags Instructors
// @Produce plain
// @Param id path string true "Instructor ID"
// @Success 200 {string} string
// @Router /instructors/{id}/profile [get]
func (h *InstructorHandler) Profile(c *gin.Context) {
	profile, err := h.instructors.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.String(http.StatusOK, profile)
}
