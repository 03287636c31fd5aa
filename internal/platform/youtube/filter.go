package youtube

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// IsKoreanText 韩文字符占比严格大于 0.2 才算韩语频道（按 rune 计数）
func IsKoreanText(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	korean := 0
	for _, r := range runes {
		if r >= 0xAC00 && r <= 0xD7AF {
			korean++
		}
	}
	return float64(korean)/float64(len(runes)) > 0.2
}

// ChannelCheck 候选频道的校验结果。Accepted=false 时 Reason 给出拒绝原因，
// 调用方跳过该频道继续处理下一个（拒绝不视为错误）。
type ChannelCheck struct {
	Accepted bool
	Reason   string

	Subscribers      int64
	LatestUploadedAt time.Time
	ProfileImageURL  string
	Description      string
	VideoID          string
	FeaturedVideoID  string
}

// CheckChannelOptions 校验阈值（零值用默认：订阅 1000、上传 30 天）。
// SkipGameCheck 跳过最新视频的游戏分类检查（存量刷新用，发掘时必查）。
type CheckChannelOptions struct {
	MinSubscribers int64
	MaxUploadDays  int
	SkipGameCheck  bool
	Now            time.Time // 测试注入用，零值取 time.Now()
}

// CheckChannel 单频道资格校验：依次检查订阅公开、订阅下限、上传列表、
// 最近上传时间、最新视频是否游戏分类。每条失败都非致命，只给出拒绝原因。
func (c *Client) CheckChannel(ctx context.Context, channelID string, opts CheckChannelOptions) (*ChannelCheck, error) {
	if opts.MinSubscribers <= 0 {
		opts.MinSubscribers = 1000
	}
	if opts.MaxUploadDays <= 0 {
		opts.MaxUploadDays = 30
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	channels, err := c.GetChannels(ctx, []string{channelID})
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return &ChannelCheck{Reason: "频道信息不存在"}, nil
	}
	ch := channels[0]

	if ch.Statistics.HiddenSubscriberCount {
		return &ChannelCheck{Reason: "订阅数未公开"}, nil
	}
	subscribers, _ := strconv.ParseInt(ch.Statistics.SubscriberCount, 10, 64)
	if subscribers < opts.MinSubscribers {
		return &ChannelCheck{Reason: fmt.Sprintf("订阅数不足: %d", subscribers)}, nil
	}

	uploadsPlaylistID := ch.ContentDetails.RelatedPlaylists.Uploads
	if uploadsPlaylistID == "" {
		return &ChannelCheck{Reason: "无上传播放列表"}, nil
	}

	items, err := c.GetLatestPlaylistItems(ctx, uploadsPlaylistID, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &ChannelCheck{Reason: "无上传视频"}, nil
	}
	latest := items[0]
	publishedAt := latest.Snippet.PublishedAt
	if publishedAt == "" {
		return &ChannelCheck{Reason: "无上传日期信息"}, nil
	}
	uploadedAt, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return &ChannelCheck{Reason: "上传日期解析失败"}, nil
	}
	// 恰好满 N 天仍算活跃，严格超过才拒绝
	if !WithinUploadWindow(uploadedAt, now, opts.MaxUploadDays) {
		return &ChannelCheck{Reason: fmt.Sprintf("最近%d天无上传", opts.MaxUploadDays)}, nil
	}

	videoID := latest.ContentDetails.VideoID
	if videoID == "" {
		videoID = latest.Snippet.ResourceID.VideoID
	}
	if videoID != "" && !opts.SkipGameCheck {
		isGame, err := c.IsGameVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if !isGame {
			return &ChannelCheck{Reason: "非游戏频道"}, nil
		}
	}

	featuredVideoID := ch.BrandingSettings.Channel.UnsubscribedTrailer
	if featuredVideoID == "" {
		featuredVideoID = videoID
	}

	return &ChannelCheck{
		Accepted:         true,
		Subscribers:      subscribers,
		LatestUploadedAt: uploadedAt,
		ProfileImageURL:  ch.Snippet.Thumbnails.BestURL(),
		Description:      ch.Snippet.Description,
		VideoID:          videoID,
		FeaturedVideoID:  featuredVideoID,
	}, nil
}

// WithinUploadWindow 最近上传是否在 maxDays 天以内（含恰好 maxDays 天）
func WithinUploadWindow(uploadedAt, now time.Time, maxDays int) bool {
	days := now.Sub(uploadedAt).Hours() / 24
	return days <= float64(maxDays)
}
