// Package dashboard provides the REST API behind the management dashboard:
// promotion and salary calculators, accounts, licenses, trainings and profile lookups.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/habbo"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/service/auth"
	"github.com/toh-yonetim/dashboard/internal/service/license"
	"github.com/toh-yonetim/dashboard/internal/service/promotion"
	"github.com/toh-yonetim/dashboard/internal/service/training"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// PromotionService interface for promotion checks.
type PromotionService interface {
	Evaluate(ctx context.Context, req eligibility.PromotionRequest) (eligibility.PromotionResult, error)
	EvaluateBulk(ctx context.Context, in promotion.BulkInput) (*promotion.BulkResult, error)
}

// SalaryService interface for salary ratings.
type SalaryService interface {
	Evaluate(ctx context.Context, subject string, req eligibility.SalaryRequest) (eligibility.SalaryRatingResult, error)
}

// AuthService interface for accounts and sessions.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.Account, error)
	Login(ctx context.Context, login, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentAccount(ctx context.Context, token string) (*models.Account, error)
	AccountCount(ctx context.Context) (int64, error)
}

// LicenseService interface for license operations.
type LicenseService interface {
	Types() []string
	Issue(ctx context.Context, in license.IssueInput) (*models.License, error)
	Revoke(ctx context.Context, id string) (*models.License, error)
	List(ctx context.Context) ([]models.License, error)
	ActiveListText(ctx context.Context) (string, error)
	ActiveCount(ctx context.Context) (int64, error)
}

// TrainingService interface for training operations.
type TrainingService interface {
	Templates() []string
	Create(ctx context.Context, in training.Input) (*models.Training, error)
	UpdateStatus(ctx context.Context, id string, status models.TrainingStatus) (*models.Training, error)
	List(ctx context.Context) ([]models.Training, error)
	ListText(ctx context.Context) (string, error)
	PlannedCount(ctx context.Context) (int64, error)
}

// ProfileService interface for public profile lookups.
type ProfileService interface {
	GetUserProfile(ctx context.Context, name string) (*habbo.Profile, error)
	GetUserGroups(ctx context.Context, name string) []habbo.Group
	GetUserBadges(ctx context.Context, name string) []habbo.Badge
	AvatarURL(name string) string
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Services groups the handler dependencies.
type Services struct {
	Tables    *eligibility.Tables
	Promotion PromotionService
	Salary    SalaryService
	Auth      AuthService
	Licenses  LicenseService
	Trainings TrainingService
	Profiles  ProfileService
	Health    map[string]HealthCheck
}

// Handler handles dashboard API requests.
type Handler struct {
	tables    *eligibility.Tables
	promotion PromotionService
	salary    SalaryService
	auth      AuthService
	licenses  LicenseService
	trainings TrainingService
	profiles  ProfileService
	health    map[string]HealthCheck
	log       *logger.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(s Services, log *logger.Logger) *Handler {
	registerValidations()

	return &Handler{
		tables:    s.Tables,
		promotion: s.Promotion,
		salary:    s.Salary,
		auth:      s.Auth,
		licenses:  s.Licenses,
		trainings: s.Trainings,
		profiles:  s.Profiles,
		health:    s.Health,
		log:       log,
	}
}

// RegisterRoutes mounts the API under r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")

	api.GET("/catalog/badges", h.GetBadgeCatalog)
	api.GET("/catalog/badges/:category/ranks", h.GetCategoryRanks)

	api.POST("/promotions/evaluate", h.EvaluatePromotion)
	api.POST("/promotions/bulk", h.EvaluateBulkPromotion)
	api.GET("/promotions/bulk/template", h.GetBulkTemplate)

	api.POST("/salary/evaluate", h.EvaluateSalary)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)

	api.GET("/licenses", h.ListLicenses)
	api.POST("/licenses", h.IssueLicense)
	api.DELETE("/licenses/:id", h.RevokeLicense)
	api.GET("/licenses/types", h.GetLicenseTypes)
	api.GET("/licenses/export", h.ExportLicenses)

	api.GET("/trainings", h.ListTrainings)
	api.POST("/trainings", h.CreateTraining)
	api.PATCH("/trainings/:id/status", h.UpdateTrainingStatus)
	api.GET("/trainings/templates", h.GetTrainingTemplates)
	api.GET("/trainings/export", h.ExportTrainings)

	api.GET("/overview", h.GetOverview)
	api.GET("/profiles/:name", h.GetProfile)
}

// Health reports the state of every registered dependency.
// GET /health.
func (h *Handler) Health(c *gin.Context) {
	status := http.StatusOK
	checks := make(map[string]string, len(h.health))

	for name, check := range h.health {
		if err := check(c.Request.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":    state,
		"checks":    checks,
		"timestamp": time.Now().UTC(),
	})
}

// sessionToken extracts the session token from the request headers.
func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("X-Session-Token"))
}

// handleServiceError maps service errors onto HTTP responses.
func (h *Handler) handleServiceError(c *gin.Context, err error, action string) {
	var inputErr *eligibility.InputError
	switch {
	case errors.As(err, &inputErr):
		h.fieldErrorResponse(c, map[string]string{inputErr.Field: inputErr.Reason})
	case errors.Is(err, eligibility.ErrInvalidSelection):
		h.errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrInvalidRegistration),
		errors.Is(err, license.ErrInvalidLicense),
		errors.Is(err, training.ErrInvalidTraining):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrAccountExists),
		errors.Is(err, training.ErrInvalidTransition):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrSessionNotFound):
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, license.ErrLicenseNotFound),
		errors.Is(err, training.ErrTrainingNotFound),
		errors.Is(err, habbo.ErrUserNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Str("action", action).Msg("Request failed")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to "+action)
	}
}

// errorResponse sends a standardized error response.
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}

// fieldErrorResponse sends a 400 naming each invalid field.
func (h *Handler) fieldErrorResponse(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":     "invalid input",
		"fields":    fields,
		"timestamp": time.Now().UTC(),
	})
}

// textResponse sends plain text, as a download when filename is set.
func textResponse(c *gin.Context, filename, body string) {
	if filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
