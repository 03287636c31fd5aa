package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CronSecret: "s3cret"},
		Platforms: map[string]config.PlatformConfig{
			"twitch": {BaseURL: "http://twitch.invalid"},
			"chzzk":  {BaseURL: "http://chzzk.invalid"},
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLiveStatusEmptyBatchRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLiveStatusHandler(testConfig(), testLogger())
	r := gin.New()
	r.POST("/api/twitch/live-status", h.TwitchLiveStatus)
	r.POST("/api/chzzk/live-status", h.ChzzkLiveStatus)

	tests := []struct {
		path string
		body string
	}{
		{"/api/twitch/live-status", `{"twitchIds": []}`},
		{"/api/twitch/live-status", `{}`},
		{"/api/twitch/live-status", `not json`},
		{"/api/chzzk/live-status", `{"chzzkIds": []}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", tt.body)
	}
}

type stubStatusProvider struct{}

func (stubStatusProvider) FetchLiveStatus(_ context.Context, ids []string) (map[string]model.StreamStatus, error) {
	out := make(map[string]model.StreamStatus, len(ids))
	for _, id := range ids {
		out[id] = model.OfflineStatus()
	}
	return out, nil
}

// 后台清理任务调用的入口：两个平台缓存的过期条目一起清
func TestLiveStatusHandlerPurgeExpired(t *testing.T) {
	logger := testLogger()
	ttl := time.Millisecond
	h := &LiveStatusHandler{
		twitchStatus: service.NewLiveStatusService(stubStatusProvider{}, ttl, logger),
		chzzkStatus:  service.NewLiveStatusService(stubStatusProvider{}, ttl, logger),
		logger:       logger,
	}

	_, _, err := h.twitchStatus.GetStatuses(context.Background(), []string{"100"})
	require.NoError(t, err)
	_, _, err = h.chzzkStatus.GetStatuses(context.Background(), []string{"abc"})
	require.NoError(t, err)

	time.Sleep(5 * ttl)
	assert.Equal(t, 2, h.PurgeExpired())
	assert.Zero(t, h.PurgeExpired())
}

func TestCronTokenGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &CronHandler{cfg: testConfig(), logger: testLogger()}
	r := gin.New()
	r.GET("/api/cron/ping", h.RequireToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"缺少token", "", http.StatusUnauthorized},
		{"token错误", "?token=wrong", http.StatusUnauthorized},
		{"token正确", "?token=s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/cron/ping"+tt.query, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCronTokenGateDisabledWhenUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Server.CronSecret = ""
	h := &CronHandler{cfg: cfg, logger: testLogger()}
	r := gin.New()
	r.GET("/api/cron/ping", h.RequireToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cron/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "密钥未配置时放行")
}
