package habbo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/pkg/logger"
	"github.com/toh-yonetim/dashboard/test/mocks"
)

type fakeAPI struct {
	profileCalls atomic.Int32
	failGroups   bool
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		f.profileCalls.Add(1)
		if r.URL.Query().Get("name") != "ali.veli" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uniqueId":"hhtr-123","name":"ali.veli","motto":"TÖH","profileVisible":true}`))
	})
	mux.HandleFunc("/users/hhtr-123/groups", func(w http.ResponseWriter, r *http.Request) {
		if f.failGroups {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"g-1","name":"TÖH","badgeCode":"b01","isAdmin":false}]`))
	})
	mux.HandleFunc("/users/hhtr-123/badges", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"code":"ACH_1","name":"Badge"}]`))
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) (*Client, *mocks.MockCache) {
	t.Helper()

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := mocks.NewMockCache()
	client := NewClient(&config.HabboConfig{
		BaseURL:    srv.URL + "/",
		ImagingURL: "https://www.habbo.com.tr/habbo-imaging/avatarimage",
		Timeout:    2,
		CacheTTL:   60,
	}, c, logger.Nop())
	return client, c
}

func TestGetUserProfile(t *testing.T) {
	api := &fakeAPI{}
	client, _ := newTestClient(t, api)

	p, err := client.GetUserProfile(context.Background(), "ali.veli")
	require.NoError(t, err)
	assert.Equal(t, "hhtr-123", p.UniqueID)
	assert.Equal(t, "TÖH", p.Motto)
}

func TestGetUserProfile_Cached(t *testing.T) {
	api := &fakeAPI{}
	client, c := newTestClient(t, api)
	ctx := context.Background()

	_, err := client.GetUserProfile(ctx, "ali.veli")
	require.NoError(t, err)
	_, err = client.GetUserProfile(ctx, "ali.veli")
	require.NoError(t, err)

	assert.Equal(t, int32(1), api.profileCalls.Load())
	assert.Positive(t, c.TTL(profileCacheKey("ali.veli")))
}

func TestGetUserProfile_NotFound(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{})

	_, err := client.GetUserProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUserProfile(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserGroupsAndBadges(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{})
	ctx := context.Background()

	groups := client.GetUserGroups(ctx, "ali.veli")
	require.Len(t, groups, 1)
	assert.Equal(t, "TÖH", groups[0].Name)

	badges := client.GetUserBadges(ctx, "ali.veli")
	require.Len(t, badges, 1)
	assert.Equal(t, "ACH_1", badges[0].Code)
}

func TestGetUserGroups_ErrorsYieldEmpty(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{failGroups: true})
	ctx := context.Background()

	groups := client.GetUserGroups(ctx, "ali.veli")
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	badges := client.GetUserBadges(ctx, "nobody")
	assert.NotNil(t, badges)
	assert.Empty(t, badges)
}

func TestAvatarURL(t *testing.T) {
	client, _ := newTestClient(t, &fakeAPI{})

	assert.Equal(t,
		"https://www.habbo.com.tr/habbo-imaging/avatarimage?direction=2&head_direction=3&size=l&user=ali.veli",
		client.AvatarURL("ali.veli"))
}
