package twitch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StreamerSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHelix 同一个假服务器既发 token 又答 Helix 请求
func newTestHelix(t *testing.T, helix http.HandlerFunc) (*Client, func()) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/", helix)
	server := httptest.NewServer(mux)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.PlatformConfig{
		BaseURL:      server.URL,
		AuthURL:      server.URL + "/oauth2/token",
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      5,
	}, logger)
	return client, server.Close
}

func TestGetStreamsByGamePagination(t *testing.T) {
	pages := 0
	client, closeFn := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "id", r.Header.Get("Client-Id"))
		require.Equal(t, "ko", r.URL.Query().Get("language"))

		pages++
		switch r.URL.Query().Get("after") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{
					{"user_id": "1", "user_login": "one", "viewer_count": 100},
					{"user_id": "2", "user_login": "two", "viewer_count": 50},
				},
				"pagination": map[string]string{"cursor": "page2"},
			})
		case "page2":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{
					{"user_id": "3", "user_login": "three", "viewer_count": 10},
				},
				"pagination": map[string]string{},
			})
		default:
			t.Fatalf("未预期的游标: %s", r.URL.Query().Get("after"))
		}
	})
	defer closeFn()

	streams, err := client.GetStreamsByGame(context.Background(), "21779", "ko", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, pages, "应翻到尾页")
	require.Len(t, streams, 3)
	assert.Equal(t, "3", streams[2].UserID)
}

func TestGetStreamsByGameLimitTrim(t *testing.T) {
	client, closeFn := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"user_id": "1", "viewer_count": 3},
				{"user_id": "2", "viewer_count": 2},
				{"user_id": "3", "viewer_count": 1},
			},
			"pagination": map[string]string{"cursor": "more"},
		})
	})
	defer closeFn()

	streams, err := client.GetStreamsByGame(context.Background(), "21779", "ko", 2)
	require.NoError(t, err)
	assert.Len(t, streams, 2, "超出 limit 的部分应被截掉")
}

func TestFetchLiveStatusSynthesizesOffline(t *testing.T) {
	client, closeFn := newTestHelix(t, func(w http.ResponseWriter, r *http.Request) {
		// 只有 user_id=1 在播
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{{
				"user_id":       "1",
				"title":         "한국어 방송",
				"game_name":     "League of Legends",
				"viewer_count":  1234,
				"thumbnail_url": "https://img.example/t.jpg",
				"started_at":    "2024-06-01T10:00:00Z",
			}},
			"pagination": map[string]string{},
		})
	})
	defer closeFn()

	statuses, err := client.FetchLiveStatus(context.Background(), []string{"1", "2", "3"})
	require.NoError(t, err)
	require.Len(t, statuses, 3, "请求里的每个 ID 都要有键")

	live := statuses["1"]
	assert.True(t, live.IsLive)
	require.NotNil(t, live.ViewerCount)
	assert.Equal(t, 1234, *live.ViewerCount)
	require.NotNil(t, live.Title)
	assert.Equal(t, "한국어 방송", *live.Title)

	for _, id := range []string{"2", "3"} {
		off := statuses[id]
		assert.False(t, off.IsLive)
		assert.Nil(t, off.ViewerCount)
		assert.Nil(t, off.Title)
		assert.Nil(t, off.GameName)
		assert.Nil(t, off.ThumbnailURL)
		assert.Nil(t, off.StartedAt)
	}
}
