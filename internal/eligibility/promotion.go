package eligibility

import "fmt"

// PromotionRequest is one promotion check as submitted from a form.
type PromotionRequest struct {
	SubjectName   string `json:"subject_name"`
	WorkedMinutes int    `json:"worked_minutes"`
	Category      string `json:"category"`
	TargetRank    string `json:"target_rank"`
}

// PromotionResult is the outcome of a promotion check. ShortfallMinutes is set
// only when Success is false.
type PromotionResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RequiredMinutes  int    `json:"required_minutes"`
	ShortfallMinutes int    `json:"shortfall_minutes,omitempty"`
}

// PromotionEvaluator decides whether worked time reaches a rank threshold.
type PromotionEvaluator struct {
	tables *Tables
}

// NewPromotionEvaluator creates an evaluator over tables.
func NewPromotionEvaluator(tables *Tables) *PromotionEvaluator {
	return &PromotionEvaluator{tables: tables}
}

// Evaluate checks a single request. The threshold is inclusive.
func (e *PromotionEvaluator) Evaluate(req PromotionRequest) (PromotionResult, error) {
	if req.WorkedMinutes < 0 {
		return PromotionResult{}, invalidField("workedMinutes", fmt.Sprint(req.WorkedMinutes), "must not be negative")
	}

	required, err := e.tables.ThresholdMinutes(req.Category, req.TargetRank)
	if err != nil {
		return PromotionResult{}, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	category, _ := e.tables.Category(req.Category)

	if req.WorkedMinutes >= required {
		return PromotionResult{
			Success:         true,
			RequiredMinutes: required,
			Message: fmt.Sprintf("%s, %s rozetinde %s rütbesine terfi almaya hak kazandı.",
				req.SubjectName, category.Name, req.TargetRank),
		}, nil
	}

	shortfall := required - req.WorkedMinutes
	return PromotionResult{
		Success:          false,
		RequiredMinutes:  required,
		ShortfallMinutes: shortfall,
		Message: fmt.Sprintf("%s, %s rozetinde %s rütbesi için yeterli süreye sahip değil: %d dakika eksik.",
			req.SubjectName, category.Name, req.TargetRank, shortfall),
	}, nil
}
