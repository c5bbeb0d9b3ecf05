package eligibility

// BatchItem is the outcome for one request of a batch. Exactly one of Err or
// Result is meaningful.
type BatchItem struct {
	Request PromotionRequest `json:"request"`
	Result  PromotionResult  `json:"result"`
	Err     error            `json:"-"`
}

// EvaluateBatch evaluates every request independently and returns the items in
// input order. A failing item never stops the remaining ones.
func (e *PromotionEvaluator) EvaluateBatch(reqs []PromotionRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		res, err := e.Evaluate(req)
		items[i] = BatchItem{Request: req, Result: res, Err: err}
	}
	return items
}

// BulkRequests builds one request per subject sharing the same configuration.
func BulkRequests(subjects []string, category, rank string, workedMinutes int) []PromotionRequest {
	reqs := make([]PromotionRequest, len(subjects))
	for i, s := range subjects {
		reqs[i] = PromotionRequest{
			SubjectName:   s,
			WorkedMinutes: workedMinutes,
			Category:      category,
			TargetRank:    rank,
		}
	}
	return reqs
}
