// Package license issues, revokes and expires member licenses.
package license

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toh-yonetim/dashboard/internal/discord"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/repository"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// DefaultDurationDays is used when an issue request gives no duration.
const DefaultDurationDays = 30

const dateLayout = "02.01.2006"

// Errors returned by the service.
var (
	ErrInvalidLicense  = errors.New("geçersiz lisans bilgisi")
	ErrLicenseNotFound = errors.New("lisans bulunamadı")
)

// Repository interface for license persistence.
type Repository interface {
	Create(license *models.License) error
	GetByPublicID(publicID string) (*models.License, error)
	List(status models.LicenseStatus) ([]models.License, error)
	Delete(publicID string) error
	ExpireBefore(now time.Time) ([]models.License, error)
	CountByStatus(status models.LicenseStatus) (int64, error)
}

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// IssueInput is the license form.
type IssueInput struct {
	UserName     string
	LicenseType  string
	DurationDays int
}

// Service handles licenses.
type Service struct {
	repo     Repository
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	log      *logger.Logger
}

// NewService creates a new license service. Dates are shown in loc.
func NewService(repo Repository, notifier Notifier, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

// Types returns the license kinds that can be issued.
func (s *Service) Types() []string {
	return append([]string(nil), models.LicenseTypes...)
}

// Issue grants a license valid for the requested number of days.
func (s *Service) Issue(_ context.Context, in IssueInput) (*models.License, error) {
	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrInvalidLicense)
	}
	if !models.IsLicenseType(in.LicenseType) {
		return nil, fmt.Errorf("%w: unknown license type %q", ErrInvalidLicense, in.LicenseType)
	}
	days := in.DurationDays
	if days < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidLicense)
	}
	if days == 0 {
		days = DefaultDurationDays
	}

	issued := s.now()
	license := &models.License{
		PublicID:    uuid.NewString(),
		UserName:    userName,
		LicenseType: in.LicenseType,
		IssueDate:   issued,
		ExpiryDate:  issued.AddDate(0, 0, days),
		Status:      models.LicenseActive,
	}
	if err := s.repo.Create(license); err != nil {
		return nil, err
	}
	metrics.RecordLicenseIssued(license.LicenseType)

	s.log.Info().
		Str("license_id", license.PublicID).
		Str("user", license.UserName).
		Str("type", license.LicenseType).
		Int("days", days).
		Msg("License issued")

	s.notifier.Notify(discord.Log{
		Title:       "📜 Lisans Verildi",
		Description: fmt.Sprintf("%s kullanıcısına yeni lisans verildi", license.UserName),
		Color:       discord.ColorGreen,
		Fields: []discord.Field{
			{Name: "Lisans Türü", Value: license.LicenseType, Inline: true},
			{Name: "Geçerlilik Süresi", Value: strconv.Itoa(days) + " gün", Inline: true},
			{Name: "Son Geçerlilik", Value: s.formatDate(license.ExpiryDate), Inline: true},
		},
		Username: license.UserName,
	})

	return license, nil
}

// Revoke removes a license.
func (s *Service) Revoke(_ context.Context, id string) (*models.License, error) {
	license, err := s.repo.GetByPublicID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLicenseNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	metrics.RecordLicenseRevoked(license.LicenseType)

	s.log.Info().Str("license_id", id).Str("user", license.UserName).Msg("License revoked")

	s.notifier.Notify(discord.Log{
		Title:       "🚫 Lisans İptal Edildi",
		Description: fmt.Sprintf("%s kullanıcısının lisansı iptal edildi", license.UserName),
		Color:       discord.ColorRed,
		Fields: []discord.Field{
			{Name: "Lisans Türü", Value: license.LicenseType, Inline: true},
			{Name: "İptal Tarihi", Value: s.formatDate(s.now()), Inline: true},
		},
		Username: license.UserName,
	})

	return license, nil
}

// List returns all licenses in issue order.
func (s *Service) List(_ context.Context) ([]models.License, error) {
	return s.repo.List("")
}

// ActiveListText renders active licenses one per line.
func (s *Service) ActiveListText(_ context.Context) (string, error) {
	active, err := s.repo.List(models.LicenseActive)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(active))
	for i, l := range active {
		lines[i] = fmt.Sprintf("%s - %s (%s tarihine kadar geçerli)", l.UserName, l.LicenseType, s.formatDate(l.ExpiryDate))
	}
	return strings.Join(lines, "\n"), nil
}

// ExpireDue marks every active license whose expiry has passed at now as expired.
func (s *Service) ExpireDue(_ context.Context, now time.Time) ([]models.License, error) {
	expired, err := s.repo.ExpireBefore(now)
	if err != nil {
		return nil, err
	}
	if len(expired) > 0 {
		metrics.AddLicensesExpired(len(expired))
		s.log.Info().Int("count", len(expired)).Msg("Licenses expired")
	}
	return expired, nil
}

// ActiveCount returns the number of active licenses.
func (s *Service) ActiveCount(_ context.Context) (int64, error) {
	return s.repo.CountByStatus(models.LicenseActive)
}

func (s *Service) formatDate(t time.Time) string {
	return t.In(s.loc).Format(dateLayout)
}
