// Package promotion provides single and bulk promotion checks with action logging.
package promotion

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

// TemplateFileName is the download name of the bulk user list template.
const TemplateFileName = "toplu_terfi_sablonu.txt"

const bulkTemplate = "kullanici1\nkullanici2\nkullanici3\n"

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// BulkInput is the bulk promotion form: one subject name per line sharing a
// single configuration.
type BulkInput struct {
	UserList      string
	WorkedMinutes int
	Category      string
	Rank          string
}

// BulkResult holds the per-subject outcomes in input order.
type BulkResult struct {
	Items        []eligibility.BatchItem `json:"items"`
	SuccessCount int                     `json:"success_count"`
	FailCount    int                     `json:"fail_count"`
}

// Service runs promotion checks.
type Service struct {
	tables    *eligibility.Tables
	evaluator *eligibility.PromotionEvaluator
	notifier  Notifier
	log       *logger.Logger
}

// NewService creates a new promotion service.
func NewService(tables *eligibility.Tables, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		tables:    tables,
		evaluator: eligibility.NewPromotionEvaluator(tables),
		notifier:  notifier,
		log:       log,
	}
}

// Evaluate checks a single promotion and logs the outcome.
func (s *Service) Evaluate(_ context.Context, req eligibility.PromotionRequest) (eligibility.PromotionResult, error) {
	res, err := s.evaluator.Evaluate(req)
	if err != nil {
		metrics.RecordPromotionError(req.Category)
		return res, err
	}
	metrics.RecordPromotion(req.Category, res.Success)

	s.log.Info().
		Str("subject", req.SubjectName).
		Str("category", req.Category).
		Str("rank", req.TargetRank).
		Int("worked_minutes", req.WorkedMinutes).
		Bool("success", res.Success).
		Msg("Promotion evaluated")

	color, title := discord.ColorGreen, "📈 Terfi Onaylandı"
	if !res.Success {
		color, title = discord.ColorRed, "📉 Terfi Reddedildi"
	}
	s.notifier.Notify(discord.Log{
		Title:       title,
		Description: res.Message,
		Color:       color,
		Fields: []discord.Field{
			{Name: "Rozet", Value: s.categoryName(req.Category), Inline: true},
			{Name: "Rütbe", Value: req.TargetRank, Inline: true},
			{Name: "Çalışma Süresi", Value: fmt.Sprintf("%d dakika", req.WorkedMinutes), Inline: true},
		},
		Username: req.SubjectName,
	})

	return res, nil
}

// EvaluateBulk checks every listed subject against the shared configuration.
// Items are returned in list order; a failing subject never stops the others.
func (s *Service) EvaluateBulk(_ context.Context, in BulkInput) (*BulkResult, error) {
	subjects := SplitUserList(in.UserList)
	if len(subjects) == 0 {
		return nil, &eligibility.InputError{Field: "userList", Reason: "must contain at least one name"}
	}
	if in.WorkedMinutes < 0 {
		return nil, &eligibility.InputError{
			Field:  "workedMinutes",
			Value:  strconv.Itoa(in.WorkedMinutes),
			Reason: "must not be negative",
		}
	}
	if _, err := s.tables.ThresholdMinutes(in.Category, in.Rank); err != nil {
		metrics.RecordPromotionError(in.Category)
		return nil, fmt.Errorf("%w: %w", eligibility.ErrInvalidSelection, err)
	}

	items := s.evaluator.EvaluateBatch(eligibility.BulkRequests(subjects, in.Category, in.Rank, in.WorkedMinutes))

	result := &BulkResult{Items: items}
	for _, item := range items {
		if item.Err == nil && item.Result.Success {
			result.SuccessCount++
		} else {
			result.FailCount++
		}
		if item.Err != nil {
			metrics.RecordPromotionError(in.Category)
		} else {
			metrics.RecordPromotion(in.Category, item.Result.Success)
		}
	}
	metrics.ObserveBulkPromotionSize(len(items))

	s.log.Info().
		Int("subjects", len(items)).
		Int("success", result.SuccessCount).
		Int("failed", result.FailCount).
		Str("category", in.Category).
		Str("rank", in.Rank).
		Msg("Bulk promotion evaluated")

	s.notifier.Notify(discord.Log{
		Title:       "👥 Toplu Terfi İşlemi",
		Description: fmt.Sprintf("%d kullanıcı için toplu terfi işlemi yapıldı", len(items)),
		Color:       discord.ColorPurple,
		Fields: []discord.Field{
			{Name: "Başarılı", Value: strconv.Itoa(result.SuccessCount), Inline: true},
			{Name: "Başarısız", Value: strconv.Itoa(result.FailCount), Inline: true},
			{Name: "Rozet", Value: s.categoryName(in.Category), Inline: true},
			{Name: "Rütbe", Value: in.Rank, Inline: true},
			{Name: "Çalışma Süresi", Value: fmt.Sprintf("%d dakika", in.WorkedMinutes), Inline: true},
		},
	})

	return result, nil
}

func (s *Service) categoryName(key string) string {
	c, err := s.tables.Category(key)
	if err != nil {
		return key
	}
	return c.Name
}

// SplitUserList splits a newline separated list, trimming names and dropping blank lines.
func SplitUserList(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SuccessfulMessages joins the messages of passing items with newlines.
func SuccessfulMessages(items []eligibility.BatchItem) string {
	var msgs []string
	for _, item := range items {
		if item.Err == nil && item.Result.Success {
			msgs = append(msgs, item.Result.Message)
		}
	}
	return strings.Join(msgs, "\n")
}

// BulkTemplate returns the downloadable user list template.
func BulkTemplate() string {
	return bulkTemplate
}
