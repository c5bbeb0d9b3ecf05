package eligibility

import (
	"fmt"
	"math"
	"strconv"
)

// SalaryRequest carries the salary form inputs.
type SalaryRequest struct {
	WorkedHours float64 `json:"worked_hours"`
	BonusHours  float64 `json:"bonus_hours"`
	AFKMinutes  float64 `json:"afk_minutes"`
}

// SalaryRatingResult is the computed salary badge rating.
type SalaryRatingResult struct {
	BaseRating  int    `json:"base_rating"`
	BonusRating int    `json:"bonus_rating"`
	AFKPenalty  int    `json:"afk_penalty"`
	TotalRating int    `json:"total_rating"`
	TierLabel   string `json:"tier_label"`
	Message     string `json:"message"`
}

// SalaryEvaluator rates worked hours, extra hours and idle time.
type SalaryEvaluator struct {
	tables *Tables
}

// NewSalaryEvaluator creates an evaluator over tables.
func NewSalaryEvaluator(tables *Tables) *SalaryEvaluator {
	return &SalaryEvaluator{tables: tables}
}

// Evaluate computes the rating. Bonus hours are rated on their own table rather
// than added to worked hours.
func (e *SalaryEvaluator) Evaluate(req SalaryRequest) (SalaryRatingResult, error) {
	if err := checkAmount("workedHours", req.WorkedHours); err != nil {
		return SalaryRatingResult{}, err
	}
	if err := checkAmount("bonusHours", req.BonusHours); err != nil {
		return SalaryRatingResult{}, err
	}
	if err := checkAmount("afkMinutes", req.AFKMinutes); err != nil {
		return SalaryRatingResult{}, err
	}

	tier := e.tables.SalaryTierFor(req.WorkedHours)
	bonus := e.tables.BonusTierFor(req.BonusHours).Rating
	penalty := e.tables.AFK().Penalty(req.AFKMinutes)

	total := tier.Rating + bonus - penalty
	if total < 0 {
		total = 0
	}

	res := SalaryRatingResult{
		BaseRating:  tier.Rating,
		BonusRating: bonus,
		AFKPenalty:  penalty,
		TotalRating: total,
		TierLabel:   tier.Label,
	}
	res.Message = salaryMessage(req, res)
	return res, nil
}

func salaryMessage(req SalaryRequest, res SalaryRatingResult) string {
	msg := fmt.Sprintf("%s saat (%s) > Maaş Rozeti: %d, Ek Maaş Rozeti: %d",
		formatAmount(req.WorkedHours), res.TierLabel, res.BaseRating, res.BonusRating)
	if res.AFKPenalty > 0 {
		msg += fmt.Sprintf(", AFK Cezası: -%d (%s dakika)", res.AFKPenalty, formatAmount(req.AFKMinutes))
	}
	return msg + fmt.Sprintf(", Toplam: %d", res.TotalRating)
}

func checkAmount(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return invalidField(field, "", "must be a finite number")
	case v < 0:
		return invalidField(field, formatAmount(v), "must not be negative")
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
