package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// channelBatchLimit /channels 单次最多查询的频道数（平台限制）
const channelBatchLimit = 50

// GamingCategoryID YouTube 视频分类里的"游戏"分类
const GamingCategoryID = "20"

// Client YouTube Data API v3 客户端，API Key 以 query 参数附带
type Client struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.PlatformConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// call 拼 key 参数并发起请求，任何失败统一按抓取失败返回
func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("YouTube API Key 未配置")
	}
	params.Set("key", c.cfg.APIKey)
	if err := httpclient.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+endpoint, params, nil, out); err != nil {
		return fmt.Errorf("YouTube API 调用失败 %s: %w", endpoint, err)
	}
	return nil
}

// SearchChannels 按关键词搜索频道
func (c *Client) SearchChannels(ctx context.Context, query string, maxResults int) ([]model.YoutubeSearchItem, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	var resp model.YoutubeListResponse[model.YoutubeSearchItem]
	err := c.call(ctx, "/search", url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"channel"},
		"maxResults": {strconv.Itoa(maxResults)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetChannels 按 ID 批量查询频道详情（含统计与 brandingSettings），单批上限 50
func (c *Client) GetChannels(ctx context.Context, channelIDs []string) ([]model.YoutubeChannel, error) {
	if len(channelIDs) == 0 {
		return nil, nil
	}
	if len(channelIDs) > channelBatchLimit {
		channelIDs = channelIDs[:channelBatchLimit]
	}
	var resp model.YoutubeListResponse[model.YoutubeChannel]
	err := c.call(ctx, "/channels", url.Values{
		"part": {"contentDetails,statistics,snippet,brandingSettings"},
		"id":   {strings.Join(channelIDs, ",")},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetLatestPlaylistItems 取上传列表里最新的 n 条视频
func (c *Client) GetLatestPlaylistItems(ctx context.Context, playlistID string, n int) ([]model.YoutubePlaylistItem, error) {
	if n <= 0 {
		n = 1
	}
	var resp model.YoutubeListResponse[model.YoutubePlaylistItem]
	err := c.call(ctx, "/playlistItems", url.Values{
		"part":       {"snippet,contentDetails"},
		"playlistId": {playlistID},
		"maxResults": {strconv.Itoa(n)},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetVideo 查询单条视频（取分类用）
func (c *Client) GetVideo(ctx context.Context, videoID string) (*model.YoutubeVideo, error) {
	var resp model.YoutubeListResponse[model.YoutubeVideo]
	err := c.call(ctx, "/videos", url.Values{
		"part": {"snippet"},
		"id":   {videoID},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return &resp.Items[0], nil
}

// IsGameVideo 视频分类是否为游戏
func (c *Client) IsGameVideo(ctx context.Context, videoID string) (bool, error) {
	video, err := c.GetVideo(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video == nil {
		return false, nil
	}
	return video.Snippet.CategoryID == GamingCategoryID, nil
}
