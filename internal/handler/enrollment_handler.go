package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/service"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// EnrollmentHandler exposes the registrar ledger endpoints.
type EnrollmentHandler struct {
	registrar *service.RegistrarService
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(registrar *service.RegistrarService) *EnrollmentHandler {
	return &EnrollmentHandler{registrar: registrar}
}

// List godoc
// @Summary List enrollment records
// @Tags Enrollments
// @Produce json
// @Param student query string false "Filter by student id"
// @Param course query string false "Filter by course code"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if studentID := c.Query("student"); studentID != "" {
		response.JSON(c, http.StatusOK, h.registrar.RecordsByStudent(ctx, studentID), nil)
		return
	}
	if courseCode := c.Query("course"); courseCode != "" {
		response.JSON(c, http.StatusOK, h.registrar.RecordsByCourse(ctx, courseCode), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.registrar.Records(ctx), nil)
}

// Get godoc
// @Summary Get enrollment record
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	record, err := h.registrar.Record(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Report godoc
// @Summary Render enrollment record text
// @Tags Enrollments
// @Produce plain
// @Param id path string true "Enrollment ID"
// @Success 200 {string} string
// @Router /enrollments/{id}/report [get]
func (h *EnrollmentHandler) Report(c *gin.Context) {
	record, err := h.registrar.Record(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.String(http.StatusOK, record.Report())
}
