package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

type recorder struct {
	mu       sync.Mutex
	messages []Message
	status   int
}

func (r *recorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		var msg Message
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&msg))

		r.mu.Lock()
		r.messages = append(r.messages, msg)
		status := r.status
		r.mu.Unlock()

		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
	}
}

func (r *recorder) received() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

func newTestClient(t *testing.T, url string, enabled bool) *Client {
	t.Helper()

	c := NewClient(&config.DiscordConfig{
		WebhookURL:  url,
		Enabled:     enabled,
		Username:    "TÖH Bot",
		AvatarURL:   "https://example.com/icon.gif",
		Footer:      "TÖH Yönetim Sistemi",
		SendTimeout: 2,
	}, logger.Nop())
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestBuild(t *testing.T) {
	c := newTestClient(t, "http://unused", true)

	msg := c.Build(Log{
		Title:    "🔐 Giriş Yapıldı",
		Fields:   []Field{{Name: "Rütbe", Value: "Memur", Inline: true}},
		Username: "ali",
	})

	assert.Equal(t, "TÖH Bot", msg.Username)
	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Equal(t, ColorDefault, embed.Color)
	assert.Equal(t, "2026-01-02T03:04:05Z", embed.Timestamp)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "TÖH Yönetim Sistemi", embed.Footer.Text)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, UserFieldName, embed.Fields[1].Name)
	assert.Equal(t, "ali", embed.Fields[1].Value)
}

func TestBuild_NoUsernameField(t *testing.T) {
	c := newTestClient(t, "http://unused", true)

	msg := c.Build(Log{Title: "x", Color: ColorGold})

	assert.Equal(t, ColorGold, msg.Embeds[0].Color)
	assert.Empty(t, msg.Embeds[0].Fields)
}

func TestSend(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv.URL, true)
	before := testutil.ToFloat64(metrics.WebhookDeliveriesTotal.WithLabelValues("sent"))

	err := c.Send(context.Background(), Log{Title: "💰 Maaş Rozeti Hesaplandı", Color: ColorGold})
	require.NoError(t, err)

	got := rec.received()
	require.Len(t, got, 1)
	assert.Equal(t, "💰 Maaş Rozeti Hesaplandı", got[0].Embeds[0].Title)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WebhookDeliveriesTotal.WithLabelValues("sent")))
}

func TestSend_ErrorStatus(t *testing.T) {
	rec := &recorder{status: http.StatusBadRequest}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv.URL, true)
	err := c.Send(context.Background(), Log{Title: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSend_Disabled(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv.URL, false)
	assert.NoError(t, c.Send(context.Background(), Log{Title: "x"}))
	c.Notify(Log{Title: "y"})
	c.Close()

	assert.Empty(t, rec.received())
}

func TestNotify_CloseWaitsForDelivery(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv.URL, true)
	c.Notify(Log{Title: "one"})
	c.Notify(Log{Title: "two"})
	c.Close()

	assert.Len(t, rec.received(), 2)
}

func TestNotify_FailureIsSwallowed(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", true)
	before := testutil.ToFloat64(metrics.WebhookDeliveriesTotal.WithLabelValues("failed"))

	c.Notify(Log{Title: "lost"})
	c.Close()

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WebhookDeliveriesTotal.WithLabelValues("failed")))
}

func TestNotify_AfterClose(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	c := newTestClient(t, srv.URL, true)
	c.Close()
	c.Notify(Log{Title: "late"})

	assert.Empty(t, rec.received())
}
