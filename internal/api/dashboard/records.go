package dashboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/service/license"
	"github.com/toh-yonetim/dashboard/internal/service/training"
)

type issueLicenseRequest struct {
	UserName    string    `json:"user_name" binding:"required,notblank"`
	LicenseType string    `json:"license_type" binding:"required"`
	Duration    formValue `json:"duration"`
}

type createTrainingRequest struct {
	Title        string    `json:"title" binding:"required,notblank"`
	Instructor   string    `json:"instructor" binding:"required,notblank"`
	Participants string    `json:"participants" binding:"required,notblank"`
	Date         string    `json:"date" binding:"required"`
	Time         string    `json:"time" binding:"required"`
	Duration     formValue `json:"duration"`
	Description  string    `json:"description"`
}

type trainingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ongoing completed"`
}

// ListLicenses lists all licenses.
// GET /api/v1/licenses.
func (h *Handler) ListLicenses(c *gin.Context) {
	licenses, err := h.licenses.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "retrieve licenses")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"licenses": licenses,
		"total":    len(licenses),
	})
}

// IssueLicense grants a license.
// POST /api/v1/licenses.
func (h *Handler) IssueLicense(c *gin.Context) {
	var req issueLicenseRequest
	if !h.bind(c, &req) {
		return
	}

	days, fields := parseOptionalDays(req.Duration)
	if fields != nil {
		h.fieldErrorResponse(c, fields)
		return
	}

	issued, err := h.licenses.Issue(c.Request.Context(), license.IssueInput{
		UserName:     req.UserName,
		LicenseType:  req.LicenseType,
		DurationDays: days,
	})
	if err != nil {
		h.handleServiceError(c, err, "issue license")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"license": issued})
}

// RevokeLicense removes a license.
// DELETE /api/v1/licenses/:id.
func (h *Handler) RevokeLicense(c *gin.Context) {
	revoked, err := h.licenses.Revoke(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, "revoke license")
		return
	}
	c.JSON(http.StatusOK, gin.H{"license": revoked})
}

// GetLicenseTypes lists the license kinds.
// GET /api/v1/licenses/types.
func (h *Handler) GetLicenseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": h.licenses.Types()})
}

// ExportLicenses returns the active licenses as text.
// GET /api/v1/licenses/export.
func (h *Handler) ExportLicenses(c *gin.Context) {
	text, err := h.licenses.ActiveListText(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "export licenses")
		return
	}
	textResponse(c, "aktif_lisanslar.txt", text)
}

// ListTrainings lists all trainings.
// GET /api/v1/trainings.
func (h *Handler) ListTrainings(c *gin.Context) {
	trainings, err := h.trainings.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "retrieve trainings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trainings": trainings,
		"total":     len(trainings),
	})
}

// CreateTraining plans a training.
// POST /api/v1/trainings.
func (h *Handler) CreateTraining(c *gin.Context) {
	var req createTrainingRequest
	if !h.bind(c, &req) {
		return
	}

	duration := 0
	if strings.TrimSpace(string(req.Duration)) != "" {
		var err error
		duration, err = eligibility.ParseMinutes("duration", string(req.Duration))
		if err != nil {
			h.handleServiceError(c, err, "create training")
			return
		}
	}

	created, err := h.trainings.Create(c.Request.Context(), training.Input{
		Title:           req.Title,
		Instructor:      req.Instructor,
		Participants:    req.Participants,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		Description:     req.Description,
	})
	if err != nil {
		h.handleServiceError(c, err, "create training")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"training": created})
}

// UpdateTrainingStatus moves a training to ongoing or completed.
// PATCH /api/v1/trainings/:id/status.
func (h *Handler) UpdateTrainingStatus(c *gin.Context) {
	var req trainingStatusRequest
	if !h.bind(c, &req) {
		return
	}

	updated, err := h.trainings.UpdateStatus(c.Request.Context(), c.Param("id"), models.TrainingStatus(req.Status))
	if err != nil {
		h.handleServiceError(c, err, "update training")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"training":     updated,
		"status_label": updated.Status.Label(),
	})
}

// GetTrainingTemplates lists the predefined training titles.
// GET /api/v1/trainings/templates.
func (h *Handler) GetTrainingTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.trainings.Templates()})
}

// ExportTrainings returns the training list as text.
// GET /api/v1/trainings/export.
func (h *Handler) ExportTrainings(c *gin.Context) {
	text, err := h.trainings.ListText(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "export trainings")
		return
	}
	textResponse(c, "egitimler.txt", text)
}
