package dashboard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/toh-yonetim/dashboard/internal/eligibility"
	"github.com/toh-yonetim/dashboard/internal/service/promotion"
	"github.com/toh-yonetim/dashboard/internal/service/salary"
)

type promotionRequest struct {
	SubjectName   string    `json:"subject_name" binding:"required,notblank"`
	WorkedMinutes formValue `json:"worked_minutes" binding:"required"`
	Category      string    `json:"category" binding:"required"`
	TargetRank    string    `json:"target_rank" binding:"required"`
}

type bulkPromotionRequest struct {
	UserList      string    `json:"user_list" binding:"required,notblank"`
	WorkedMinutes formValue `json:"worked_minutes" binding:"required"`
	Category      string    `json:"category" binding:"required"`
	Rank          string    `json:"rank" binding:"required"`
}

type bulkItemResponse struct {
	SubjectName string `json:"subject_name"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
}

type salaryRequest struct {
	UserName       string    `json:"user_name" binding:"required,notblank"`
	WorkHours      formValue `json:"work_hours" binding:"required"`
	ExtraWorkHours formValue `json:"extra_work_hours"`
	AFKMinutes     formValue `json:"afk_minutes"`
}

// GetBadgeCatalog lists the badge categories and their ranks.
// GET /api/v1/catalog/badges.
func (h *Handler) GetBadgeCatalog(c *gin.Context) {
	categories := h.tables.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetCategoryRanks lists the ranks of one category in promotion order.
// GET /api/v1/catalog/badges/:category/ranks.
func (h *Handler) GetCategoryRanks(c *gin.Context) {
	key := c.Param("category")
	ranks, err := h.tables.RanksFor(key)
	if errors.Is(err, eligibility.ErrUnknownCategory) {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.handleServiceError(c, err, "retrieve ranks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": key,
		"ranks":    ranks,
	})
}

// EvaluatePromotion checks one promotion.
// POST /api/v1/promotions/evaluate.
func (h *Handler) EvaluatePromotion(c *gin.Context) {
	var req promotionRequest
	if !h.bind(c, &req) {
		return
	}

	minutes, err := eligibility.ParseMinutes("worked_minutes", string(req.WorkedMinutes))
	if err != nil {
		h.handleServiceError(c, err, "evaluate promotion")
		return
	}

	res, err := h.promotion.Evaluate(c.Request.Context(), eligibility.PromotionRequest{
		SubjectName:   strings.TrimSpace(req.SubjectName),
		WorkedMinutes: minutes,
		Category:      req.Category,
		TargetRank:    req.TargetRank,
	})
	if err != nil {
		h.handleServiceError(c, err, "evaluate promotion")
		return
	}

	c.JSON(http.StatusOK, res)
}

// EvaluateBulkPromotion checks a newline separated list of subjects.
// POST /api/v1/promotions/bulk.
func (h *Handler) EvaluateBulkPromotion(c *gin.Context) {
	var req bulkPromotionRequest
	if !h.bind(c, &req) {
		return
	}

	minutes, err := eligibility.ParseMinutes("worked_minutes", string(req.WorkedMinutes))
	if err != nil {
		h.handleServiceError(c, err, "evaluate bulk promotion")
		return
	}

	res, err := h.promotion.EvaluateBulk(c.Request.Context(), promotion.BulkInput{
		UserList:      req.UserList,
		WorkedMinutes: minutes,
		Category:      req.Category,
		Rank:          req.Rank,
	})
	if err != nil {
		h.handleServiceError(c, err, "evaluate bulk promotion")
		return
	}

	items := make([]bulkItemResponse, len(res.Items))
	for i, item := range res.Items {
		items[i] = bulkItemResponse{
			SubjectName: item.Request.SubjectName,
			Success:     item.Err == nil && item.Result.Success,
			Message:     item.Result.Message,
		}
		if item.Err != nil {
			items[i].Error = item.Err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":         items,
		"success_count":   res.SuccessCount,
		"fail_count":      res.FailCount,
		"successful_text": promotion.SuccessfulMessages(res.Items),
	})
}

// GetBulkTemplate downloads the bulk user list template.
// GET /api/v1/promotions/bulk/template.
func (h *Handler) GetBulkTemplate(c *gin.Context) {
	textResponse(c, promotion.TemplateFileName, promotion.BulkTemplate())
}

// EvaluateSalary computes a salary badge rating.
// POST /api/v1/salary/evaluate.
func (h *Handler) EvaluateSalary(c *gin.Context) {
	var req salaryRequest
	if !h.bind(c, &req) {
		return
	}

	fields := map[string]string{}
	worked, err := eligibility.ParseHours("work_hours", string(req.WorkHours))
	collectFieldError(fields, err)
	extra, err := eligibility.ParseOptionalHours("extra_work_hours", string(req.ExtraWorkHours))
	collectFieldError(fields, err)
	afk, err := eligibility.ParseOptionalHours("afk_minutes", string(req.AFKMinutes))
	collectFieldError(fields, err)
	if len(fields) > 0 {
		h.fieldErrorResponse(c, fields)
		return
	}

	res, err := h.salary.Evaluate(c.Request.Context(), req.UserName, eligibility.SalaryRequest{
		WorkedHours: worked,
		BonusHours:  extra,
		AFKMinutes:  afk,
	})
	if err != nil {
		h.handleServiceError(c, err, "evaluate salary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    res,
		"copy_text": salary.CopyText(req.UserName, res),
	})
}

func collectFieldError(fields map[string]string, err error) {
	var inputErr *eligibility.InputError
	if errors.As(err, &inputErr) {
		fields[inputErr.Field] = inputErr.Reason
	}
}
