package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StreamerSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKoreanText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"纯韩文", "게임 방송", true},
		{"纯英文", "gaming channel", false},
		{"空串", "", false},
		// 10 个字符里 2 个韩文，占比恰好 0.2，不算韩语频道
		{"恰好百分之二十", "한국abcdefgh", false},
		// 10 个字符里 3 个韩文，超线
		{"超过百分之二十", "한국어abcdefg", true},
		{"韩文混数字", "롤 스트리머 2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKoreanText(tt.text))
		})
	}
}

func TestWithinUploadWindow(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		uploadedAt time.Time
		want       bool
	}{
		{"昨天上传", now.AddDate(0, 0, -1), true},
		// 恰好满 30 天仍算活跃
		{"恰好30天", now.Add(-30 * 24 * time.Hour), true},
		{"超过30天", now.Add(-30*24*time.Hour - time.Minute), false},
		{"远古上传", now.AddDate(0, -6, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinUploadWindow(tt.uploadedAt, now, 30))
		})
	}
}

// fakeYoutubeUpstream 可调参数的假 YouTube API，按 path 分发
type fakeYoutubeUpstream struct {
	subscriberCount  string
	hiddenSubscriber bool
	uploadedAt       string
	videoCategoryID  string
}

func (f *fakeYoutubeUpstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"items": []map[string]interface{}{{
				"id": "UCtest",
				"snippet": map[string]interface{}{
					"title":       "테스트 채널",
					"description": "한국어 게임 방송",
					"thumbnails": map[string]interface{}{
						"high": map[string]string{"url": "https://img.example/high.jpg"},
					},
				},
				"statistics": map[string]interface{}{
					"subscriberCount":       f.subscriberCount,
					"hiddenSubscriberCount": f.hiddenSubscriber,
				},
				"contentDetails": map[string]interface{}{
					"relatedPlaylists": map[string]string{"uploads": "UUtest"},
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"items": []map[string]interface{}{{
				"contentDetails": map[string]string{"videoId": "vid123"},
				"snippet": map[string]interface{}{
					"publishedAt": f.uploadedAt,
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"items": []map[string]interface{}{{
				"id": "vid123",
				"snippet": map[string]interface{}{
					"categoryId": f.videoCategoryID,
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func newTestClient(t *testing.T, upstream *fakeYoutubeUpstream) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(upstream.handler())
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewClient(&config.PlatformConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5,
	}, logger)
	return client, server.Close
}

func TestCheckChannel(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -3).Format(time.RFC3339)

	tests := []struct {
		name     string
		upstream fakeYoutubeUpstream
		accepted bool
	}{
		{
			"合格频道",
			fakeYoutubeUpstream{subscriberCount: "1000", uploadedAt: recent, videoCategoryID: GamingCategoryID},
			true,
		},
		{
			"订阅数恰好下限",
			fakeYoutubeUpstream{subscriberCount: "1000", uploadedAt: recent, videoCategoryID: GamingCategoryID},
			true,
		},
		{
			"订阅数差一",
			fakeYoutubeUpstream{subscriberCount: "999", uploadedAt: recent, videoCategoryID: GamingCategoryID},
			false,
		},
		{
			"订阅数未公开",
			fakeYoutubeUpstream{subscriberCount: "50000", hiddenSubscriber: true, uploadedAt: recent, videoCategoryID: GamingCategoryID},
			false,
		},
		{
			"超过30天未上传",
			fakeYoutubeUpstream{subscriberCount: "5000", uploadedAt: now.Add(-31 * 24 * time.Hour).Format(time.RFC3339), videoCategoryID: GamingCategoryID},
			false,
		},
		{
			"恰好30天上传",
			fakeYoutubeUpstream{subscriberCount: "5000", uploadedAt: now.Add(-30 * 24 * time.Hour).Format(time.RFC3339), videoCategoryID: GamingCategoryID},
			true,
		},
		{
			"最新视频非游戏分类",
			fakeYoutubeUpstream{subscriberCount: "5000", uploadedAt: recent, videoCategoryID: "10"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := tt.upstream
			client, closeFn := newTestClient(t, &upstream)
			defer closeFn()

			check, err := client.CheckChannel(context.Background(), "UCtest", CheckChannelOptions{Now: now})
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, check.Accepted, "reason: %s", check.Reason)
			if tt.accepted {
				assert.Positive(t, check.Subscribers, "订阅数应回填")
			}
		})
	}
}

func TestCheckChannelAcceptedFields(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	uploadedAt := now.AddDate(0, 0, -3)
	upstream := &fakeYoutubeUpstream{
		subscriberCount: "12345",
		uploadedAt:      uploadedAt.Format(time.RFC3339),
		videoCategoryID: GamingCategoryID,
	}
	client, closeFn := newTestClient(t, upstream)
	defer closeFn()

	check, err := client.CheckChannel(context.Background(), "UCtest", CheckChannelOptions{Now: now})
	require.NoError(t, err)
	require.True(t, check.Accepted)
	assert.EqualValues(t, 12345, check.Subscribers)
	assert.True(t, check.LatestUploadedAt.Equal(uploadedAt))
	assert.Equal(t, "https://img.example/high.jpg", check.ProfileImageURL)
	assert.Equal(t, "vid123", check.VideoID)
}
