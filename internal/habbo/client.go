// Package habbo provides a client for the public Habbo profile API.
package habbo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/toh-yonetim/dashboard/internal/cache"
	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// ErrUserNotFound is returned when the API has no user with the given name.
var ErrUserNotFound = errors.New("kullanıcı bulunamadı")

// Profile is the public profile of a Habbo user.
type Profile struct {
	UniqueID       string  `json:"uniqueId"`
	Name           string  `json:"name"`
	FigureString   string  `json:"figureString"`
	Motto          string  `json:"motto"`
	MemberSince    string  `json:"memberSince"`
	ProfileVisible bool    `json:"profileVisible"`
	Online         bool    `json:"online"`
	LastAccessTime string  `json:"lastAccessTime,omitempty"`
	CurrentLevel   int     `json:"currentLevel,omitempty"`
	SelectedBadges []Badge `json:"selectedBadges,omitempty"`
}

// Group is a group the user belongs to.
type Group struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	RoomID          string `json:"roomId,omitempty"`
	BadgeCode       string `json:"badgeCode"`
	PrimaryColour   string `json:"primaryColour,omitempty"`
	SecondaryColour string `json:"secondaryColour,omitempty"`
	IsAdmin         bool   `json:"isAdmin"`
}

// Badge is a badge owned by the user.
type Badge struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Client handles profile API requests.
type Client struct {
	baseURL    string
	imagingURL string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	log        *logger.Logger
}

// NewClient creates a new profile API client. c may be nil to disable caching.
func NewClient(cfg *config.HabboConfig, c cache.Cache, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		imagingURL: cfg.ImagingURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		cacheTTL:   cfg.CacheDuration(),
		log:        log.Component("habbo"),
	}
}

func profileCacheKey(name string) string {
	return "habbo:profile:" + strings.ToLower(name)
}

// GetUserProfile fetches a user's public profile.
func (c *Client) GetUserProfile(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNotFound
	}

	if p := c.cachedProfile(ctx, name); p != nil {
		metrics.RecordProfileLookup("cache", "hit")
		return p, nil
	}

	var profile Profile
	err := c.getJSON(ctx, "/users?"+url.Values{"name": {name}}.Encode(), &profile)
	if err != nil {
		status := "error"
		if errors.Is(err, ErrUserNotFound) {
			status = "not_found"
		}
		metrics.RecordProfileLookup("api", status)
		return nil, err
	}
	metrics.RecordProfileLookup("api", "ok")

	if c.cache != nil && c.cacheTTL > 0 {
		if data, err := json.Marshal(profile); err == nil {
			if err := c.cache.Set(ctx, profileCacheKey(name), data, c.cacheTTL); err != nil {
				c.log.Warn().Err(err).Str("name", name).Msg("Failed to cache profile")
			}
		}
	}

	return &profile, nil
}

func (c *Client) cachedProfile(ctx context.Context, name string) *Profile {
	if c.cache == nil {
		return nil
	}

	raw, err := c.cache.Get(ctx, profileCacheKey(name))
	if err != nil {
		c.log.Warn().Err(err).Str("name", name).Msg("Failed to read profile cache")
		return nil
	}
	if raw == "" {
		return nil
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

// GetUserGroups lists the user's groups. Lookup failures yield an empty list.
func (c *Client) GetUserGroups(ctx context.Context, name string) []Group {
	groups := []Group{}
	if err := c.getUserResource(ctx, name, "groups", &groups); err != nil {
		c.log.Warn().Err(err).Str("name", name).Msg("Failed to fetch groups")
		return []Group{}
	}
	return groups
}

// GetUserBadges lists the user's badges. Lookup failures yield an empty list.
func (c *Client) GetUserBadges(ctx context.Context, name string) []Badge {
	badges := []Badge{}
	if err := c.getUserResource(ctx, name, "badges", &badges); err != nil {
		c.log.Warn().Err(err).Str("name", name).Msg("Failed to fetch badges")
		return []Badge{}
	}
	return badges
}

func (c *Client) getUserResource(ctx context.Context, name, resource string, out interface{}) error {
	profile, err := c.GetUserProfile(ctx, name)
	if err != nil {
		return err
	}
	return c.getJSON(ctx, fmt.Sprintf("/users/%s/%s", url.PathEscape(profile.UniqueID), resource), out)
}

// AvatarURL returns the full-body avatar image URL for name.
func (c *Client) AvatarURL(name string) string {
	q := url.Values{}
	q.Set("user", name)
	q.Set("direction", "2")
	q.Set("head_direction", "3")
	q.Set("size", "l")
	return c.imagingURL + "?" + q.Encode()
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call profile API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
