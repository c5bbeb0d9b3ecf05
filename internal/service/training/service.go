// Package training plans training sessions and tracks their progress.
package training

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

// DefaultDurationMinutes is used when a training gives no duration.
const DefaultDurationMinutes = 60

const (
	dateLayout  = "02.01.2006"
	timeLayout  = "15:04"
	inputLayout = "2006-01-02 15:04"
)

// Errors returned by the service.
var (
	ErrInvalidTraining   = errors.New("geçersiz eğitim bilgisi")
	ErrTrainingNotFound  = errors.New("eğitim bulunamadı")
	ErrInvalidTransition = errors.New("geçersiz durum değişikliği")
)

// Repository interface for training persistence.
type Repository interface {
	Create(training *models.Training) error
	GetByPublicID(publicID string) (*models.Training, error)
	List() ([]models.Training, error)
	UpdateStatus(publicID string, from, to models.TrainingStatus) error
	CountByStatus(status models.TrainingStatus) (int64, error)
}

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// Input is the training form. Date is YYYY-MM-DD and Time is HH:MM, both in the
// service location.
type Input struct {
	Title           string
	Instructor      string
	Participants    string
	Date            string
	Time            string
	DurationMinutes int
	Description     string
}

// Service handles trainings.
type Service struct {
	repo     Repository
	notifier Notifier
	loc      *time.Location
	log      *logger.Logger
}

// NewService creates a new training service.
func NewService(repo Repository, notifier Notifier, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, notifier: notifier, loc: loc, log: log}
}

// Templates returns the predefined training titles.
func (s *Service) Templates() []string {
	return append([]string(nil), models.TrainingTemplates...)
}

// Create plans a new training.
func (s *Service) Create(_ context.Context, in Input) (*models.Training, error) {
	title := strings.TrimSpace(in.Title)
	instructor := strings.TrimSpace(in.Instructor)
	participants := splitLines(in.Participants)

	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTraining)
	case instructor == "":
		return nil, fmt.Errorf("%w: instructor is required", ErrInvalidTraining)
	case len(participants) == 0:
		return nil, fmt.Errorf("%w: participants is required", ErrInvalidTraining)
	case strings.TrimSpace(in.Date) == "":
		return nil, fmt.Errorf("%w: date is required", ErrInvalidTraining)
	case strings.TrimSpace(in.Time) == "":
		return nil, fmt.Errorf("%w: time is required", ErrInvalidTraining)
	case in.DurationMinutes < 0:
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidTraining)
	}

	at, err := time.ParseInLocation(inputLayout, strings.TrimSpace(in.Date)+" "+strings.TrimSpace(in.Time), s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date or time", ErrInvalidTraining)
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}

	training := &models.Training{
		PublicID:        uuid.NewString(),
		Title:           title,
		Instructor:      instructor,
		Participants:    participants,
		Date:            at,
		DurationMinutes: duration,
		Status:          models.TrainingPlanned,
		Description:     strings.TrimSpace(in.Description),
	}
	if err := s.repo.Create(training); err != nil {
		return nil, err
	}
	metrics.RecordTrainingPlanned()

	s.log.Info().
		Str("training_id", training.PublicID).
		Str("title", training.Title).
		Int("participants", len(participants)).
		Msg("Training planned")

	description := training.Description
	if description == "" {
		description = "Belirtilmemiş"
	}
	s.notifier.Notify(discord.Log{
		Title:       "🎓 Eğitim Planlandı",
		Description: "Yeni eğitim planlandı: " + training.Title,
		Color:       discord.ColorBlue,
		Fields: []discord.Field{
			{Name: "Eğitmen", Value: training.Instructor, Inline: true},
			{Name: "Katılımcı Sayısı", Value: strconv.Itoa(len(participants)), Inline: true},
			{Name: "Tarih", Value: at.Format(dateLayout), Inline: true},
			{Name: "Saat", Value: at.Format(timeLayout), Inline: true},
			{Name: "Süre", Value: strconv.Itoa(duration) + " dakika", Inline: true},
			{Name: "Açıklama", Value: description, Inline: false},
		},
	})

	return training, nil
}

// UpdateStatus moves a training forward. Completed trainings cannot change.
func (s *Service) UpdateStatus(_ context.Context, id string, status models.TrainingStatus) (*models.Training, error) {
	if status != models.TrainingOngoing && status != models.TrainingCompleted {
		return nil, fmt.Errorf("%w: cannot set status %q", ErrInvalidTransition, status)
	}

	training, err := s.repo.GetByPublicID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTrainingNotFound
	}
	if err != nil {
		return nil, err
	}
	if training.Status == models.TrainingCompleted || training.Status == status {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, training.Status, status)
	}

	if err := s.repo.UpdateStatus(id, training.Status, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, id)
		}
		return nil, err
	}
	training.Status = status
	metrics.RecordTrainingStatus(string(status))

	s.log.Info().Str("training_id", id).Str("status", string(status)).Msg("Training status updated")

	color := discord.ColorOrange
	if status == models.TrainingCompleted {
		color = discord.ColorGreen
	}
	s.notifier.Notify(discord.Log{
		Title:       "📚 Eğitim Durumu Güncellendi",
		Description: training.Title + " eğitiminin durumu güncellendi",
		Color:       color,
		Fields: []discord.Field{
			{Name: "Durum", Value: status.Label(), Inline: true},
			{Name: "Eğitmen", Value: training.Instructor, Inline: true},
			{Name: "Katılımcı Sayısı", Value: strconv.Itoa(len(training.Participants)), Inline: true},
		},
	})

	return training, nil
}

// List returns all trainings in creation order.
func (s *Service) List(_ context.Context) ([]models.Training, error) {
	return s.repo.List()
}

// ListText renders every training on its own line.
func (s *Service) ListText(ctx context.Context) (string, error) {
	trainings, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, len(trainings))
	for i, t := range trainings {
		at := t.Date.In(s.loc)
		lines[i] = fmt.Sprintf("%s - %s - %s %s (%d katılımcı)",
			t.Title, t.Instructor, at.Format(dateLayout), at.Format(timeLayout), len(t.Participants))
	}
	return strings.Join(lines, "\n"), nil
}

// PlannedCount returns the number of trainings not yet started.
func (s *Service) PlannedCount(_ context.Context) (int64, error) {
	return s.repo.CountByStatus(models.TrainingPlanned)
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if v := strings.TrimSpace(line); v != "" {
			out = append(out, v)
		}
	}
	return out
}
