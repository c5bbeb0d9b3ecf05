package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetOverview returns the dashboard counters.
// GET /api/v1/overview.
func (h *Handler) GetOverview(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := h.auth.AccountCount(ctx)
	if err != nil {
		h.handleServiceError(c, err, "retrieve overview")
		return
	}
	activeLicenses, err := h.licenses.ActiveCount(ctx)
	if err != nil {
		h.handleServiceError(c, err, "retrieve overview")
		return
	}
	plannedTrainings, err := h.trainings.PlannedCount(ctx)
	if err != nil {
		h.handleServiceError(c, err, "retrieve overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts":          accounts,
		"active_licenses":   activeLicenses,
		"planned_trainings": plannedTrainings,
		"badge_categories":  len(h.tables.Categories()),
		"generated_at":      time.Now().UTC(),
	})
}

// GetProfile returns the public profile with groups and badges.
// GET /api/v1/profiles/:name.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	profile, err := h.profiles.GetUserProfile(ctx, name)
	if err != nil {
		h.handleServiceError(c, err, "retrieve profile")
		return
	}

	h.log.Debug().Str("name", name).Msg("Retrieved profile")

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"avatar":  h.profiles.AvatarURL(profile.Name),
		"groups":  h.profiles.GetUserGroups(ctx, name),
		"badges":  h.profiles.GetUserBadges(ctx, name),
	})
}
