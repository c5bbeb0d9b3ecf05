// Package salary computes salary badge ratings and logs them.
package salary

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/toh-yonetim/dashboard/internal/discord"
	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// Service handles salary rating requests.
type Service struct {
	evaluator *eligibility.SalaryEvaluator
	notifier  Notifier
	log       *logger.Logger
}

// NewService creates a new salary service.
func NewService(tables *eligibility.Tables, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		evaluator: eligibility.NewSalaryEvaluator(tables),
		notifier:  notifier,
		log:       log,
	}
}

// Evaluate rates the request for subject and sends the salary log.
func (s *Service) Evaluate(_ context.Context, subject string, req eligibility.SalaryRequest) (eligibility.SalaryRatingResult, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return eligibility.SalaryRatingResult{}, &eligibility.InputError{Field: "userName", Reason: "is required"}
	}

	res, err := s.evaluator.Evaluate(req)
	if err != nil {
		return res, err
	}
	metrics.RecordSalaryRating(res.TotalRating, res.AFKPenalty)

	s.log.Info().
		Str("subject", subject).
		Float64("worked_hours", req.WorkedHours).
		Float64("bonus_hours", req.BonusHours).
		Float64("afk_minutes", req.AFKMinutes).
		Int("total", res.TotalRating).
		Msg("Salary rating calculated")

	s.notifier.Notify(discord.Log{
		Title:       "💰 Maaş Rozeti Hesaplandı",
		Description: fmt.Sprintf("%s için maaş rozeti hesaplandı", subject),
		Color:       discord.ColorGold,
		Fields: []discord.Field{
			{Name: "Çalışma Saati", Value: formatNumber(req.WorkedHours) + " saat", Inline: true},
			{Name: "Ek Çalışma", Value: formatNumber(req.BonusHours) + " saat", Inline: true},
			{Name: "AFK Süresi", Value: formatNumber(req.AFKMinutes) + " dakika", Inline: true},
			{Name: "Maaş Rozeti", Value: strconv.Itoa(res.BaseRating), Inline: true},
			{Name: "Ek Maaş Rozeti", Value: strconv.Itoa(res.BonusRating), Inline: true},
			{Name: "Toplam", Value: strconv.Itoa(res.TotalRating), Inline: true},
		},
		Username: subject,
	})

	return res, nil
}

// CopyText formats the result as the one-line text members paste into reports.
func CopyText(subject string, res eligibility.SalaryRatingResult) string {
	return fmt.Sprintf("%s > Maaş Rozeti: %d, Ek Maaş Rozeti: %d, Toplam: %d",
		strings.TrimSpace(subject), res.BaseRating, res.BonusRating, res.TotalRating)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
