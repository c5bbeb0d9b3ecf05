//nolint:noctx // Test file uses http.NewRequest for simplicity
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/habbo"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/service/auth"
	"github.com/toh-yonetim/dashboard/internal/service/license"
	"github.com/toh-yonetim/dashboard/internal/service/promotion"
	"github.com/toh-yonetim/dashboard/internal/service/salary"
	"github.com/toh-yonetim/dashboard/internal/service/training"
	"github.com/toh-yonetim/dashboard/pkg/logger"
	"github.com/toh-yonetim/dashboard/test/mocks"
)

// Mock Auth Service
type mockAuthService struct {
	accounts map[string]*models.Account
	sessions map[string]*models.Account
	lastIn   auth.RegisterInput
}

func newMockAuthService() *mockAuthService {
	return &mockAuthService{
		accounts: make(map[string]*models.Account),
		sessions: make(map[string]*models.Account),
	}
}

func (m *mockAuthService) Register(_ context.Context, in auth.RegisterInput) (*models.Account, error) {
	m.lastIn = in
	if _, exists := m.accounts[in.Username]; exists {
		return nil, auth.ErrAccountExists
	}
	account := &models.Account{ID: uint(len(m.accounts) + 1), Username: in.Username, Email: in.Email, Rank: "Stajyer"}
	m.accounts[in.Username] = account
	return account, nil
}

func (m *mockAuthService) Login(_ context.Context, login, password string) (*auth.Session, error) {
	account, exists := m.accounts[login]
	if !exists || password != "secret" {
		return nil, auth.ErrInvalidCredentials
	}
	token := "token-" + login
	m.sessions[token] = account
	return &auth.Session{Token: token, ExpiresAt: time.Now().Add(time.Hour), Account: account}, nil
}

func (m *mockAuthService) Logout(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *mockAuthService) CurrentAccount(_ context.Context, token string) (*models.Account, error) {
	account, exists := m.sessions[token]
	if !exists {
		return nil, auth.ErrSessionNotFound
	}
	return account, nil
}

func (m *mockAuthService) AccountCount(_ context.Context) (int64, error) {
	return int64(len(m.accounts)), nil
}

// Mock License Service
type mockLicenseService struct {
	licenses []models.License
	lastIn   license.IssueInput
	listErr  error
}

func (m *mockLicenseService) Types() []string {
	return models.LicenseTypes
}

func (m *mockLicenseService) Issue(_ context.Context, in license.IssueInput) (*models.License, error) {
	m.lastIn = in
	if !models.IsLicenseType(in.LicenseType) {
		return nil, fmt.Errorf("%w: unknown license type %q", license.ErrInvalidLicense, in.LicenseType)
	}
	l := models.License{
		PublicID:    fmt.Sprintf("lic-%d", len(m.licenses)+1),
		UserName:    in.UserName,
		LicenseType: in.LicenseType,
		Status:      models.LicenseActive,
	}
	m.licenses = append(m.licenses, l)
	return &l, nil
}

func (m *mockLicenseService) Revoke(_ context.Context, id string) (*models.License, error) {
	for i, l := range m.licenses {
		if l.PublicID == id {
			m.licenses = append(m.licenses[:i], m.licenses[i+1:]...)
			return &l, nil
		}
	}
	return nil, license.ErrLicenseNotFound
}

func (m *mockLicenseService) List(_ context.Context) ([]models.License, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.licenses, nil
}

func (m *mockLicenseService) ActiveListText(_ context.Context) (string, error) {
	lines := make([]string, 0, len(m.licenses))
	for _, l := range m.licenses {
		lines = append(lines, l.UserName+" - "+l.LicenseType)
	}
	return strings.Join(lines, "\n"), nil
}

func (m *mockLicenseService) ActiveCount(_ context.Context) (int64, error) {
	return int64(len(m.licenses)), nil
}

// Mock Training Service
type mockTrainingService struct {
	trainings map[string]*models.Training
	lastIn    training.Input
}

func newMockTrainingService() *mockTrainingService {
	return &mockTrainingService{trainings: make(map[string]*models.Training)}
}

func (m *mockTrainingService) Templates() []string {
	return models.TrainingTemplates
}

func (m *mockTrainingService) Create(_ context.Context, in training.Input) (*models.Training, error) {
	m.lastIn = in
	t := &models.Training{
		PublicID:        fmt.Sprintf("tr-%d", len(m.trainings)+1),
		Title:           in.Title,
		Instructor:      in.Instructor,
		DurationMinutes: in.DurationMinutes,
		Status:          models.TrainingPlanned,
	}
	m.trainings[t.PublicID] = t
	return t, nil
}

func (m *mockTrainingService) UpdateStatus(_ context.Context, id string, status models.TrainingStatus) (*models.Training, error) {
	t, exists := m.trainings[id]
	if !exists {
		return nil, training.ErrTrainingNotFound
	}
	if t.Status == models.TrainingCompleted {
		return nil, training.ErrInvalidTransition
	}
	t.Status = status
	return t, nil
}

func (m *mockTrainingService) List(_ context.Context) ([]models.Training, error) {
	out := make([]models.Training, 0, len(m.trainings))
	for _, t := range m.trainings {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTrainingService) ListText(_ context.Context) (string, error) {
	return "Temel Güvenlik Eğitimi - ali", nil
}

func (m *mockTrainingService) PlannedCount(_ context.Context) (int64, error) {
	return int64(len(m.trainings)), nil
}

// Mock Profile Service
type mockProfileService struct {
	profiles map[string]*habbo.Profile
}

func (m *mockProfileService) GetUserProfile(_ context.Context, name string) (*habbo.Profile, error) {
	p, exists := m.profiles[name]
	if !exists {
		return nil, habbo.ErrUserNotFound
	}
	return p, nil
}

func (m *mockProfileService) GetUserGroups(_ context.Context, _ string) []habbo.Group {
	return []habbo.Group{{ID: "g-1", Name: "TÖH"}}
}

func (m *mockProfileService) GetUserBadges(_ context.Context, _ string) []habbo.Badge {
	return []habbo.Badge{}
}

func (m *mockProfileService) AvatarURL(name string) string {
	return "https://imaging.test/avatar?user=" + name
}

type testDeps struct {
	notifier  *mocks.MockNotifier
	auth      *mockAuthService
	licenses  *mockLicenseService
	trainings *mockTrainingService
	profiles  *mockProfileService
}

// Test Setup
func setupTestHandler(health map[string]HealthCheck) (*Handler, *testDeps) {
	log := logger.New("debug", "text", "stdout")
	tables := eligibility.Default()

	deps := &testDeps{
		notifier:  &mocks.MockNotifier{},
		auth:      newMockAuthService(),
		licenses:  &mockLicenseService{},
		trainings: newMockTrainingService(),
		profiles:  &mockProfileService{profiles: map[string]*habbo.Profile{"ali": {Name: "ali", Motto: "TÖH"}}},
	}

	handler := NewHandler(Services{
		Tables:    tables,
		Promotion: promotion.NewService(tables, deps.notifier, log),
		Salary:    salary.NewService(tables, deps.notifier, log),
		Auth:      deps.auth,
		Licenses:  deps.licenses,
		Trainings: deps.trainings,
		Profiles:  deps.profiles,
		Health:    health,
	}, log)

	return handler, deps
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// Tests

func TestHealth(t *testing.T) {
	handler, _ := setupTestHandler(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
}

func TestHealth_Unhealthy(t *testing.T) {
	handler, _ := setupTestHandler(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	response := decode(t, w)
	assert.Equal(t, "unhealthy", response["status"])
	checks := response["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "connection refused", checks["redis"])
}

func TestGetBadgeCatalog(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/catalog/badges", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(len(eligibility.Default().Categories())), response["total"])
}

func TestGetCategoryRanks(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/catalog/badges/memurlar/ranks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	ranks := response["ranks"].([]interface{})
	assert.Len(t, ranks, 4)
	assert.Equal(t, "Stajyer", ranks[0].(map[string]interface{})["name"])

	w = doJSON(router, "GET", "/api/v1/catalog/badges/unknown/ranks", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvaluatePromotion_Success(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/evaluate", map[string]interface{}{
		"subject_name":   "ali",
		"worked_minutes": 120,
		"category":       "memurlar",
		"target_rank":    "Memur",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, true, response["success"])
	assert.Contains(t, response["message"], "ali")
	assert.Len(t, deps.notifier.Logs(), 1)
}

func TestEvaluatePromotion_Shortfall(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/evaluate", map[string]interface{}{
		"subject_name":   "ali",
		"worked_minutes": "100",
		"category":       "memurlar",
		"target_rank":    "Memur",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, float64(20), response["shortfall_minutes"])
}

func TestEvaluatePromotion_MissingFields(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/evaluate", map[string]interface{}{
		"subject_name": "  ",
		"category":     "memurlar",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	fields := response["fields"].(map[string]interface{})
	assert.Equal(t, "is required", fields["subject_name"])
	assert.Equal(t, "is required", fields["worked_minutes"])
	assert.Equal(t, "is required", fields["target_rank"])
	assert.Empty(t, deps.notifier.Logs())
}

func TestEvaluatePromotion_NegativeMinutes(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/evaluate", map[string]interface{}{
		"subject_name":   "ali",
		"worked_minutes": -5,
		"category":       "memurlar",
		"target_rank":    "Memur",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "worked_minutes")
}

func TestEvaluatePromotion_UnknownRank(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/evaluate", map[string]interface{}{
		"subject_name":   "ali",
		"worked_minutes": 500,
		"category":       "memurlar",
		"target_rank":    "Kaptan",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEvaluatePromotion_MalformedBody(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	req, _ := http.NewRequest("POST", "/api/v1/promotions/evaluate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	assert.Equal(t, "invalid request body", response["error"])
}

func TestEvaluateBulkPromotion(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/bulk", map[string]interface{}{
		"user_list":      "ali\n\n  veli  \nayse",
		"worked_minutes": 360,
		"category":       "memurlar",
		"rank":           "Kıdemli Memur",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	results := response["results"].([]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, "veli", results[1].(map[string]interface{})["subject_name"])
	assert.Equal(t, float64(3), response["success_count"])
	assert.Equal(t, float64(0), response["fail_count"])
	assert.Len(t, strings.Split(response["successful_text"].(string), "\n"), 3)

	last := deps.notifier.Last()
	assert.Contains(t, last.Title, "Toplu Terfi")
}

func TestEvaluateBulkPromotion_UnknownCategory(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/promotions/bulk", map[string]interface{}{
		"user_list":      "ali",
		"worked_minutes": 10,
		"category":       "yok",
		"rank":           "Memur",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetBulkTemplate(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/promotions/bulk/template", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), promotion.TemplateFileName)
	assert.Equal(t, promotion.BulkTemplate(), w.Body.String())
}

func TestEvaluateSalary(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/salary/evaluate", map[string]interface{}{
		"user_name":        "ali",
		"work_hours":       "20",
		"extra_work_hours": 5,
		"afk_minutes":      "",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	result := response["result"].(map[string]interface{})
	assert.Equal(t, float64(3), result["base_rating"])
	assert.Equal(t, float64(2), result["bonus_rating"])
	assert.Equal(t, float64(5), result["total_rating"])
	assert.Equal(t, "ali > Maaş Rozeti: 3, Ek Maaş Rozeti: 2, Toplam: 5", response["copy_text"])
	assert.Len(t, deps.notifier.Logs(), 1)
}

func TestEvaluateSalary_InvalidNumbers(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/salary/evaluate", map[string]interface{}{
		"user_name":   "ali",
		"work_hours":  "abc",
		"afk_minutes": "-3",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "work_hours")
	assert.Contains(t, fields, "afk_minutes")
	assert.Empty(t, deps.notifier.Logs())
}

func TestRegisterAndLogin(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"full_name":      "Ali Veli",
		"username":       "ali",
		"email":          "ali@example.com",
		"password":       "secret",
		"habbo_username": "ali",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ali@example.com", deps.auth.lastIn.Email)

	w = doJSON(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"full_name":      "Ali Veli",
		"username":       "ali",
		"email":          "ali2@example.com",
		"password":       "secret",
		"habbo_username": "ali",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "ali",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "ali",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	req, _ := http.NewRequest("GET", "/api/v1/auth/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)

	req, _ = http.NewRequest("POST", "/api/v1/auth/logout", http.NoBody)
	req.Header.Set("X-Session-Token", token)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)

	req, _ = http.NewRequest("GET", "/api/v1/auth/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	me = httptest.NewRecorder()
	router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}

func TestRegister_InvalidEmail(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"full_name":      "Ali Veli",
		"username":       "ali",
		"email":          "not-an-email",
		"password":       "secret",
		"habbo_username": "ali",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestLicenses(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/licenses", map[string]interface{}{
		"user_name":    "ali",
		"license_type": models.LicenseTypes[0],
		"duration":     "15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 15, deps.licenses.lastIn.DurationDays)

	w = doJSON(router, "POST", "/api/v1/licenses", map[string]interface{}{
		"user_name":    "veli",
		"license_type": models.LicenseTypes[1],
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, deps.licenses.lastIn.DurationDays)

	w = doJSON(router, "GET", "/api/v1/licenses", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = doJSON(router, "GET", "/api/v1/licenses/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ali - "+models.LicenseTypes[0])

	w = doJSON(router, "DELETE", "/api/v1/licenses/lic-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/v1/licenses/lic-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueLicense_Invalid(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/licenses", map[string]interface{}{
		"user_name":    "ali",
		"license_type": models.LicenseTypes[0],
		"duration":     "iki",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "duration")

	w = doJSON(router, "POST", "/api/v1/licenses", map[string]interface{}{
		"user_name":    "ali",
		"license_type": "Uçuş Lisansı",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLicenses_Error(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)
	deps.licenses.listErr = errors.New("database closed")

	w := doJSON(router, "GET", "/api/v1/licenses", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to retrieve licenses", decode(t, w)["error"])
}

func TestGetLicenseTypes(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/licenses/types", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["types"], len(models.LicenseTypes))
}

func TestTrainings(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/trainings", map[string]interface{}{
		"title":        models.TrainingTemplates[0],
		"instructor":   "ali",
		"participants": "veli\nayse",
		"date":         "2026-10-20",
		"time":         "20:00",
		"duration":     90,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 90, deps.trainings.lastIn.DurationMinutes)

	w = doJSON(router, "PATCH", "/api/v1/trainings/tr-1/status", map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tamamlandı", decode(t, w)["status_label"])

	w = doJSON(router, "PATCH", "/api/v1/trainings/tr-1/status", map[string]interface{}{"status": "ongoing"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, "PATCH", "/api/v1/trainings/tr-9/status", map[string]interface{}{"status": "ongoing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "PATCH", "/api/v1/trainings/tr-1/status", map[string]interface{}{"status": "planned"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Equal(t, "must be one of: ongoing completed", fields["status"])

	w = doJSON(router, "GET", "/api/v1/trainings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestCreateTraining_DefaultDuration(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/trainings", map[string]interface{}{
		"title":        "Özel Eğitim",
		"instructor":   "ali",
		"participants": "veli",
		"date":         "2026-10-20",
		"time":         "20:00",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, deps.trainings.lastIn.DurationMinutes)
}

func TestCreateTraining_InvalidDuration(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "POST", "/api/v1/trainings", map[string]interface{}{
		"title":        "Özel Eğitim",
		"instructor":   "ali",
		"participants": "veli",
		"date":         "2026-10-20",
		"time":         "20:00",
		"duration":     "1.5",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "duration")
}

func TestTrainingExports(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/trainings/templates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["templates"], len(models.TrainingTemplates))

	w = doJSON(router, "GET", "/api/v1/trainings/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Temel Güvenlik Eğitimi - ali", w.Body.String())
}

func TestGetOverview(t *testing.T) {
	handler, deps := setupTestHandler(nil)
	router := setupRouter(handler)
	deps.auth.accounts["ali"] = &models.Account{ID: 1, Username: "ali"}
	deps.licenses.licenses = []models.License{{PublicID: "lic-1"}, {PublicID: "lic-2"}}

	w := doJSON(router, "GET", "/api/v1/overview", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(1), response["accounts"])
	assert.Equal(t, float64(2), response["active_licenses"])
	assert.Equal(t, float64(0), response["planned_trainings"])
	assert.Equal(t, float64(5), response["badge_categories"])
}

func TestGetProfile(t *testing.T) {
	handler, _ := setupTestHandler(nil)
	router := setupRouter(handler)

	w := doJSON(router, "GET", "/api/v1/profiles/ali", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "https://imaging.test/avatar?user=ali", response["avatar"])
	assert.Len(t, response["groups"], 1)
	assert.Len(t, response["badges"], 0)

	w = doJSON(router, "GET", "/api/v1/profiles/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
