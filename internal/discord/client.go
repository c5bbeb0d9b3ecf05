// Package discord provides the webhook client that posts action logs to Discord.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// Embed colors used by the dashboard logs.
const (
	ColorDefault = 0xc8102e
	ColorGreen   = 0x00ff00
	ColorRed     = 0xff0000
	ColorBlue    = 0x0099ff
	ColorOrange  = 0xffa500
	ColorLogout  = 0xff9900
	ColorGold    = 0xffd700
	ColorPurple  = 0x9932cc
)

// UserFieldName is the field added when a log names the acting user.
const UserFieldName = "Kullanıcı"

// Message represents a Discord webhook payload.
type Message struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// Embed represents a rich embed.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Footer represents an embed footer.
type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Field represents an embed field.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Log is one action log entry. Color zero means ColorDefault.
type Log struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Username    string
}

// Client handles Discord webhook notifications.
type Client struct {
	webhookURL string
	enabled    bool
	username   string
	avatarURL  string
	footer     string
	timeout    time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
	now        func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewClient creates a new Discord client.
func NewClient(cfg *config.DiscordConfig, log *logger.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := time.Duration(cfg.SendTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		webhookURL: cfg.WebhookURL,
		enabled:    cfg.Enabled,
		username:   cfg.Username,
		avatarURL:  cfg.AvatarURL,
		footer:     cfg.Footer,
		timeout:    timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, burst),
		log:        log.Component("discord"),
		now:        time.Now,
	}
}

// Enabled reports whether logs are delivered.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Build converts a log entry into the webhook payload.
func (c *Client) Build(l Log) *Message {
	color := l.Color
	if color == 0 {
		color = ColorDefault
	}

	fields := make([]Field, 0, len(l.Fields)+1)
	fields = append(fields, l.Fields...)
	if l.Username != "" {
		fields = append(fields, Field{Name: UserFieldName, Value: l.Username, Inline: true})
	}

	embed := Embed{
		Title:       l.Title,
		Description: l.Description,
		Color:       color,
		Timestamp:   c.now().UTC().Format(time.RFC3339),
		Fields:      fields,
	}
	if c.footer != "" {
		embed.Footer = &Footer{Text: c.footer, IconURL: c.avatarURL}
	}

	return &Message{
		Username:  c.username,
		AvatarURL: c.avatarURL,
		Embeds:    []Embed{embed},
	}
}

// Send delivers a log entry and waits for the result.
func (c *Client) Send(ctx context.Context, l Log) error {
	if !c.enabled {
		c.log.Debug().Str("title", l.Title).Msg("Discord is disabled, skipping log")
		return nil
	}

	err := c.SendMessage(ctx, c.Build(l))
	if err != nil {
		metrics.RecordWebhookDelivery("failed")
		return err
	}
	metrics.RecordWebhookDelivery("sent")
	return nil
}

// SendMessage posts a raw payload.
func (c *Client) SendMessage(ctx context.Context, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord returned status %d", resp.StatusCode)
	}

	c.log.Debug().Int("embeds", len(msg.Embeds)).Msg("Sent message to Discord")
	return nil
}

// Notify delivers a log entry in the background. Failures are logged, never returned.
func (c *Client) Notify(l Log) {
	if !c.enabled {
		c.log.Debug().Str("title", l.Title).Msg("Discord is disabled, skipping log")
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Warn().Str("title", l.Title).Msg("Discord client closed, dropping log")
		metrics.RecordWebhookDelivery("dropped")
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		if err := c.Send(context.Background(), l); err != nil {
			c.log.Warn().Err(err).Str("title", l.Title).Msg("Failed to deliver Discord log")
		}
	}()
}

// Close stops accepting new logs and waits for in-flight deliveries.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}
