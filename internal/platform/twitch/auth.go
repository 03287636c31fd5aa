package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
)

// tokenSafety 提前这么久刷新 token，避免边界过期
const tokenSafety = 5 * time.Minute

// TokenSource client-credentials token 的缓存与刷新。
// Token 失败是系统性问题，直接把错误抛给上层中止本次任务。
type TokenSource struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
	nowFunc func() time.Time // 测试注入用
}

func NewTokenSource(cfg *config.PlatformConfig, httpClient *http.Client) *TokenSource {
	return &TokenSource{
		cfg:        cfg,
		httpClient: httpClient,
		nowFunc:    time.Now,
	}
}

// Token 返回有效的 access token，缓存未到刷新线时直接复用
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.nowFunc()
	if t.token != "" && now.Before(t.expires) {
		return t.token, nil
	}

	if t.cfg.ClientID == "" || t.cfg.ClientSecret == "" {
		return "", fmt.Errorf("Twitch 认证信息未配置")
	}

	authURL := t.cfg.AuthURL
	if authURL == "" {
		authURL = "https://id.twitch.tv/oauth2/token"
	}
	form := url.Values{
		"client_id":     {t.cfg.ClientID},
		"client_secret": {t.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Twitch token 请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("Twitch token 发放失败 %d: %s", resp.StatusCode, string(body))
	}

	var token model.TwitchToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("Twitch token 解析失败: %w", err)
	}

	t.token = token.AccessToken
	t.expires = now.Add(time.Duration(token.ExpiresIn)*time.Second - tokenSafety)
	return t.token, nil
}
