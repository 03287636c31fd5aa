package chzzk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StreamerSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChzzk(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.PlatformConfig{
		BaseURL:      server.URL,
		ClientID:     "cid",
		ClientSecret: "csecret",
		Timeout:      5,
	}, logger)
	return client, server.Close
}

func TestGetLivesCompositeCursor(t *testing.T) {
	pages := 0
	client, closeFn := newTestChzzk(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "cid", r.Header.Get("x-naver-client-id"))
		require.Equal(t, "https://chzzk.naver.com/", r.Header.Get("Referer"))

		pages++
		q := r.URL.Query()
		if q.Get("concurrentUserCount") == "" {
			// 第一页：带 next 游标
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 200,
				"content": map[string]interface{}{
					"page": map[string]interface{}{
						"next": map[string]interface{}{"concurrentUserCount": 50, "liveId": 777},
					},
					"data": []map[string]interface{}{
						{"liveId": 1, "concurrentUserCount": 100, "liveCategory": "lol", "channel": map[string]string{"channelId": "aaa", "channelName": "채널A"}},
						{"liveId": 2, "concurrentUserCount": 50, "liveCategory": "valorant", "channel": map[string]string{"channelId": "bbb", "channelName": "채널B"}},
					},
				},
			})
			return
		}
		// 第二页：校验游标原样回传，尾页 next 为 null
		require.Equal(t, "50", q.Get("concurrentUserCount"))
		require.Equal(t, "777", q.Get("liveId"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 200,
			"content": map[string]interface{}{
				"page": map[string]interface{}{"next": nil},
				"data": []map[string]interface{}{
					{"liveId": 3, "concurrentUserCount": 10, "channel": map[string]string{"channelId": "ccc", "channelName": "채널C"}},
				},
			},
		})
	})
	defer closeFn()

	lives, err := client.GetLives(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	require.Len(t, lives, 3)
	assert.Equal(t, "ccc", lives[2].Channel.ChannelID)
}

func TestGetLivesUpstreamError(t *testing.T) {
	client, closeFn := newTestChzzk(t, func(w http.ResponseWriter, r *http.Request) {
		msg := "잘못된 요청"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 400, "message": msg})
	})
	defer closeFn()

	_, err := client.GetLives(context.Background(), 10)
	assert.Error(t, err)
}

func TestFetchLiveStatus(t *testing.T) {
	client, closeFn := newTestChzzk(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/channels/live-one/"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 200,
				"content": map[string]interface{}{
					"status":              "OPEN",
					"liveTitle":           "롤 방송",
					"concurrentUserCount": 321,
					"openDate":            "2024-06-01 19:00:00",
					"liveCategory":        map[string]string{"categoryName": "League of Legends"},
					"thumbnail":           map[string]string{"thumbnailImageUrl": "https://img.example/c.jpg"},
				},
			})
		case strings.Contains(r.URL.Path, "/channels/off-one/"):
			// 未开播：content 为 null
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": 200, "content": nil})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	defer closeFn()

	statuses, err := client.FetchLiveStatus(context.Background(), []string{"live-one", "off-one", "bad-one"})
	require.NoError(t, err, "单频道失败不应拖垮整批")
	require.Len(t, statuses, 3)

	live := statuses["live-one"]
	assert.True(t, live.IsLive)
	require.NotNil(t, live.ViewerCount)
	assert.Equal(t, 321, *live.ViewerCount)
	require.NotNil(t, live.GameName)
	assert.Equal(t, "League of Legends", *live.GameName)

	off := statuses["off-one"]
	assert.False(t, off.IsLive)
	assert.Empty(t, off.Error)

	bad := statuses["bad-one"]
	assert.False(t, bad.IsLive)
	assert.Equal(t, "조회 실패", bad.Error)
}
