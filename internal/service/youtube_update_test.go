package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/youtube"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newYoutubeUpdateFixture 假上游：UCok 正常、UCshrunk 订阅数跌破下限。
// 存量刷新不做游戏分类检查，/videos 不应被请求。
func newYoutubeUpdateFixture(t *testing.T) (*YoutubeUpdateService, *fakeYoutubeRepo, func()) {
	t.Helper()
	recent := time.Now().AddDate(0, 0, -3).Format(time.RFC3339)
	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		var item map[string]interface{}
		switch r.URL.Query().Get("id") {
		case "UCok":
			item = map[string]interface{}{
				"id": "UCok",
				"snippet": map[string]interface{}{
					"description": "갱신된 소개",
					"thumbnails":  map[string]interface{}{"high": map[string]string{"url": "https://img/ok-new.jpg"}},
				},
				"statistics":     map[string]interface{}{"subscriberCount": "7777", "hiddenSubscriberCount": false},
				"contentDetails": map[string]interface{}{"relatedPlaylists": map[string]string{"uploads": "UUok"}},
			}
		case "UCshrunk":
			item = map[string]interface{}{
				"id":         "UCshrunk",
				"statistics": map[string]interface{}{"subscriberCount": "500", "hiddenSubscriberCount": false},
			}
		default:
			t.Fatalf("意外的频道查询: %s", r.URL.Query().Get("id"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []map[string]interface{}{item}})
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{{
				"contentDetails": map[string]string{"videoId": "vid9"},
				"snippet":        map[string]interface{}{"publishedAt": recent},
			}},
		})
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("存量刷新不应检查视频分类")
	})
	server := httptest.NewServer(mux)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := youtube.NewClient(&config.PlatformConfig{BaseURL: server.URL, APIKey: "k", Timeout: 5}, logger)

	repo := newFakeYoutubeRepo()
	repo.refreshList = []*model.YoutubeStreamer{
		{ID: "uuid-ok", YoutubeChannelID: "UCok", Name: "정상 채널", Description: "예전 소개", ProfileImageURL: "https://img/ok-old.jpg"},
		{ID: "uuid-shrunk", YoutubeChannelID: "UCshrunk", Name: "줄어든 채널"},
	}

	cfg := &config.DiscoveryConfig{MinSubscribers: 1000, MaxUploadDays: 30}
	return NewYoutubeUpdateService(client, repo, cfg, logger), repo, server.Close
}

func TestYoutubeUpdateRun(t *testing.T) {
	svc, repo, closeFn := newYoutubeUpdateFixture(t)
	defer closeFn()

	result, err := svc.Run(context.Background(), YoutubeUpdateOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Candidates)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)

	updated := repo.updates["uuid-ok"]
	require.NotNil(t, updated)
	assert.Equal(t, "갱신된 소개", updated.Description)
	assert.Equal(t, "https://img/ok-new.jpg", updated.ProfileImageURL)
	assert.EqualValues(t, 7777, updated.Subscribers)
	require.NotNil(t, updated.LatestUploadedAt)

	assert.NotContains(t, repo.updates, "uuid-shrunk", "重查不合格的保持原数据")
}

func TestYoutubeUpdateOptionsPassedToRepo(t *testing.T) {
	svc, repo, closeFn := newYoutubeUpdateFixture(t)
	defer closeFn()

	_, err := svc.Run(context.Background(), YoutubeUpdateOptions{
		Categories: []string{"롤", "피파"},
		Limit:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"롤", "피파"}, repo.refreshArgs.categories)
	assert.Equal(t, 1, repo.refreshArgs.limit)
}
