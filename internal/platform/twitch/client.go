package twitch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"StreamerSync/internal/config"
	"StreamerSync/internal/interfaces"
	"StreamerSync/internal/model"
	"StreamerSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// userBatchLimit Helix /users 和 /streams 的 ID 参数单次上限
const userBatchLimit = 100

// Client Twitch Helix API 客户端，bearer token + Client-Id 头认证
type Client struct {
	cfg         *config.PlatformConfig
	httpClient  *http.Client
	tokenSource *TokenSource
	logger      *logrus.Logger
}

func NewClient(cfg *config.PlatformConfig, logger *logrus.Logger) *Client {
	httpClient := httpclient.NewHTTPClient(cfg, logger)
	return &Client{
		cfg:         cfg,
		httpClient:  httpClient,
		tokenSource: NewTokenSource(cfg, httpClient),
		logger:      logger,
	}
}

// call 附带认证头的 GET；token 失败原样上抛（系统性错误，中止整次任务）
func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return err
	}
	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Client-Id":     c.cfg.ClientID,
	}
	if err := httpclient.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+endpoint, params, headers, out); err != nil {
		return fmt.Errorf("Twitch API 调用失败 %s: %w", endpoint, err)
	}
	return nil
}

// fetchAllPages 按 cursor 翻页取满 limit 条（limit<=0 表示取到没有下一页为止）
func fetchAllPages[T any](ctx context.Context, c *Client, endpoint string, params url.Values, limit int) ([]T, error) {
	var results []T
	cursor := ""
	for {
		query := url.Values{}
		for k, vs := range params {
			query[k] = vs
		}
		if cursor != "" {
			query.Set("after", cursor)
		}

		var resp model.TwitchListResponse[T]
		if err := c.call(ctx, endpoint, query, &resp); err != nil {
			return nil, err
		}
		results = append(results, resp.Data...)

		cursor = resp.Pagination.Cursor
		if cursor == "" || len(resp.Data) == 0 {
			break
		}
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetTopGames 当前热门游戏前 n 个
func (c *Client) GetTopGames(ctx context.Context, n int) ([]model.TwitchGame, error) {
	if n <= 0 {
		n = 20
	}
	first := n
	if first > 100 {
		first = 100
	}
	return fetchAllPages[model.TwitchGame](ctx, c, "/games/top", url.Values{
		"first": {strconv.Itoa(first)},
	}, n)
}

// GetStreamsByGame 指定游戏、指定语言的在播流，按观众数降序
func (c *Client) GetStreamsByGame(ctx context.Context, gameID, language string, limit int) ([]model.TwitchStream, error) {
	first := limit
	if first <= 0 || first > 100 {
		first = 100
	}
	return fetchAllPages[model.TwitchStream](ctx, c, "/streams", url.Values{
		"game_id":  {gameID},
		"language": {language},
		"first":    {strconv.Itoa(first)},
	}, limit)
}

// GetStreamsByLanguage 指定语言的全部在播流（顶流扫全量用）
func (c *Client) GetStreamsByLanguage(ctx context.Context, language string, limit int) ([]model.TwitchStream, error) {
	first := limit
	if first <= 0 || first > 100 {
		first = 100
	}
	return fetchAllPages[model.TwitchStream](ctx, c, "/streams", url.Values{
		"language": {language},
		"first":    {strconv.Itoa(first)},
	}, limit)
}

// GetUsersByIDs 批量取用户详情，按 100 个一批分块
func (c *Client) GetUsersByIDs(ctx context.Context, userIDs []string) ([]model.TwitchUser, error) {
	var users []model.TwitchUser
	for _, chunk := range interfaces.ChunkSlice(userIDs, userBatchLimit) {
		params := url.Values{"id": chunk}
		var resp model.TwitchListResponse[model.TwitchUser]
		if err := c.call(ctx, "/users", params, &resp); err != nil {
			return nil, err
		}
		users = append(users, resp.Data...)
	}
	return users, nil
}

// GetStreamsByUserIDs 按用户 ID 批量查在播流（直播状态查询用，单批 100）
func (c *Client) GetStreamsByUserIDs(ctx context.Context, userIDs []string) ([]model.TwitchStream, error) {
	var streams []model.TwitchStream
	for _, chunk := range interfaces.ChunkSlice(userIDs, userBatchLimit) {
		params := url.Values{"user_id": chunk}
		var resp model.TwitchListResponse[model.TwitchStream]
		if err := c.call(ctx, "/streams", params, &resp); err != nil {
			return nil, err
		}
		streams = append(streams, resp.Data...)
	}
	return streams, nil
}

// FetchLiveStatus 实现 interfaces.LiveStatusProvider：一次批量 /streams 调用，
// 请求里的每个 ID 都保证有键，查不到的给未开播兜底
func (c *Client) FetchLiveStatus(ctx context.Context, ids []string) (map[string]model.StreamStatus, error) {
	streams, err := c.GetStreamsByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byUserID := make(map[string]model.TwitchStream, len(streams))
	for _, s := range streams {
		byUserID[s.UserID] = s
	}

	result := make(map[string]model.StreamStatus, len(ids))
	for _, id := range ids {
		s, ok := byUserID[id]
		if !ok {
			result[id] = model.OfflineStatus()
			continue
		}
		viewer := s.ViewerCount
		title, game, thumb, started := s.Title, s.GameName, s.ThumbnailURL, s.StartedAt
		result[id] = model.StreamStatus{
			IsLive:       true,
			ViewerCount:  &viewer,
			Title:        &title,
			GameName:     &game,
			ThumbnailURL: &thumb,
			StartedAt:    &started,
		}
	}
	return result, nil
}
