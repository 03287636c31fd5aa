package chzzk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Client Chzzk API 客户端，client-id/secret 静态头认证。
// 非官方接口对 UA/Referer 有校验，缺了会被挡。
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

func (c *Client) headers() map[string]string {
	return map[string]string{
		"x-naver-client-id":     c.cfg.ClientID,
		"x-naver-client-secret": c.cfg.ClientSecret,
		"User-Agent":            "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		"Referer":               "https://chzzk.naver.com/",
	}
}

func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := httpclient.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+endpoint, params, c.headers(), out); err != nil {
		return fmt.Errorf("Chzzk API 调用失败 %s: %w", endpoint, err)
	}
	return nil
}

// GetLives 按观众数降序翻页取当前在播频道，复合游标 concurrentUserCount+liveId。
// 取满 limit 条或翻到尾页为止。
func (c *Client) GetLives(ctx context.Context, limit int) ([]model.ChzzkLive, error) {
	if limit <= 0 {
		limit = 50
	}

	var result []model.ChzzkLive
	var cursor *model.ChzzkLiveCursor
	for len(result) < limit {
		params := url.Values{}
		if cursor != nil {
			params.Set("concurrentUserCount", strconv.Itoa(cursor.ConcurrentUserCount))
			params.Set("liveId", strconv.FormatInt(cursor.LiveID, 10))
		}

		var resp model.ChzzkResponse[model.ChzzkLivesContent]
		if err := c.call(ctx, "/service/v1/lives", params, &resp); err != nil {
			return nil, err
		}
		if resp.Code != 200 || resp.Content == nil {
			msg := ""
			if resp.Message != nil {
				msg = *resp.Message
			}
			return nil, fmt.Errorf("Chzzk 直播列表返回异常 code=%d: %s", resp.Code, msg)
		}

		result = append(result, resp.Content.Data...)
		cursor = resp.Content.Page.Next

		c.logger.Debugf("Chzzk 在播频道已取 %d/%d", len(result), limit)
		if len(resp.Content.Data) == 0 || cursor == nil {
			break
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetLiveDetail 单频道直播详情；未开播时 content 为 null
func (c *Client) GetLiveDetail(ctx context.Context, channelID string) (*model.ChzzkLiveDetail, error) {
	var resp model.ChzzkResponse[model.ChzzkLiveDetail]
	endpoint := fmt.Sprintf("/service/v1/channels/%s/live-detail", channelID)
	if err := c.call(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 200 {
		return nil, nil
	}
	return resp.Content, nil
}

// FetchLiveStatus 实现 interfaces.LiveStatusProvider。Chzzk 没有批量接口，
// 只能逐个串行查询；单个频道失败只影响自身（记为带错误标记的未开播），不拖垮整批。
func (c *Client) FetchLiveStatus(ctx context.Context, ids []string) (map[string]model.StreamStatus, error) {
	result := make(map[string]model.StreamStatus, len(ids))
	for _, channelID := range ids {
		detail, err := c.GetLiveDetail(ctx, channelID)
		if err != nil {
			c.logger.WithError(err).WithField("channel_id", channelID).Warn("Chzzk 单频道直播状态查询失败")
			result[channelID] = model.ErrorStatus("조회 실패")
			continue
		}
		if detail == nil || detail.Status != "OPEN" {
			result[channelID] = model.OfflineStatus()
			continue
		}

		viewer := detail.ConcurrentUserCount
		title, game := detail.LiveTitle, detail.LiveCategory.CategoryName
		thumb, started := detail.Thumbnail.ThumbnailImageURL, detail.OpenDate
		result[channelID] = model.StreamStatus{
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
