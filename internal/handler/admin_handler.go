package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-records-api/internal/service"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
	"github.com/noah-isme/campus-records-api/pkg/response"
)

// AdminHandler exposes import, export and backup operations.
type AdminHandler struct {
	importer *service.ImportService
	exporter *service.ExportService
	backups  *service.BackupService
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(importer *service.ImportService, exporter *service.ExportService, backups *service.BackupService) *AdminHandler {
	return &AdminHandler{importer: importer, exporter: exporter, backups: backups}
}

func readUpload(c *gin.Context) ([]byte, error) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close() //nolint:errcheck
		return io.ReadAll(file)
	}
	// Raw CSV body is accepted too.
	return io.ReadAll(c.Request.Body)
}

// ImportStudents godoc
// @Summary Import students from CSV
// @Tags Admin
// @Accept mpfd
// @Produce json
// @Param file formData file false "CSV file"
// @Success 200 {object} response.Envelope
// @Router /admin/import/students [post]
func (h *AdminHandler) ImportStudents(c *gin.Context) {
	raw, err := readUpload(c)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cannot read upload"))
		return
	}
	report, err := h.importer.ImportStudents(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// ImportCourses godoc
// @Summary Import courses from CSV
// @Tags Admin
// @Accept mpfd
// @Produce json
// @Param file formData file false "CSV file"
// @Success 200 {object} response.Envelope
// @Router /admin/import/courses [post]
func (h *AdminHandler) ImportCourses(c *gin.Context) {
	raw, err := readUpload(c)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "cannot read upload"))
		return
	}
	report, err := h.importer.ImportCourses(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Export snapshot to CSV files
// @Tags Admin
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/export [post]
func (h *AdminHandler) Export(c *gin.Context) {
	result, err := h.exporter.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListExports godoc
// @Summary List exported files
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/export [get]
func (h *AdminHandler) ListExports(c *gin.Context) {
	files, err := h.exporter.ListExports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, files, nil)
}

// TranscriptPDF godoc
// @Summary Download student transcript PDF
// @Tags Admin
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Success 200 {file} binary
// @Router /admin/export/transcript/{id} [get]
func (h *AdminHandler) TranscriptPDF(c *gin.Context) {
	pdf, err := h.exporter.TranscriptPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=transcript_"+c.Param("id")+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// CatalogPDF godoc
// @Summary Download course catalog PDF
// @Tags Admin
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /admin/export/catalog [get]
func (h *AdminHandler) CatalogPDF(c *gin.Context) {
	pdf, err := h.exporter.CatalogPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=catalog.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// CreateBackup godoc
// @Summary Create ZIP backup of the data directory
// @Tags Admin
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/backups [post]
func (h *AdminHandler) CreateBackup(c *gin.Context) {
	result, err := h.backups.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListBackups godoc
// @Summary List backup archives
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/backups [get]
func (h *AdminHandler) ListBackups(c *gin.Context) {
	files, err := h.backups.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	total, err := h.backups.TotalSize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, files, nil, map[string]interface{}{"total_size": total})
}

// CleanupBackups godoc
// @Summary Delete backups past the retention window
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/backups/cleanup [post]
func (h *AdminHandler) CleanupBackups(c *gin.Context) {
	deleted, err := h.backups.Cleanup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}
