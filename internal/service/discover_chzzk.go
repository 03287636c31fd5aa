package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/chzzk"
	"StreamerSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ChzzkDiscoverService 从 Chzzk 在播列表发掘主播并入库。Chzzk 本身就是
// 韩语平台，不做语言过滤。
type ChzzkDiscoverService struct {
	client *chzzk.Client
	repo   repository.ChzzkRepository
	cfg    *config.DiscoveryConfig
	logger *logrus.Logger
}

func NewChzzkDiscoverService(client *chzzk.Client, repo repository.ChzzkRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *ChzzkDiscoverService {
	return &ChzzkDiscoverService{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// ChzzkDiscoverOptions 单次发掘的运行参数
type ChzzkDiscoverOptions struct {
	Limit       int
	SkipMapping bool
}

// Run 拉取在播列表（观众数降序）并逐个 upsert。同一频道可能开多路流，
// 批内按频道 ID 去重；跨批去重靠 upsert 幂等，不做 DB 种子。
func (s *ChzzkDiscoverService) Run(ctx context.Context, opts ChzzkDiscoverOptions) (*DiscoverResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.StreamerLimit
	}

	lives, err := s.client.GetLives(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("ChzzkDiscover: 开始发掘，在播频道 %d 个", len(lives))

	result := &DiscoverResult{Searches: 1}
	seen := make(map[string]bool, len(lives))
	for _, live := range lives {
		channelID := live.Channel.ChannelID
		if channelID == "" || seen[channelID] {
			continue
		}
		seen[channelID] = true
		result.Discovered++

		viewer := live.ConcurrentUserCount
		var startedAt *time.Time
		if t, err := time.Parse("2006-01-02 15:04:05", live.OpenDate); err == nil {
			startedAt = &t
		}
		var tags datatypes.JSON
		if len(live.Tags) > 0 {
			if b, err := json.Marshal(live.Tags); err == nil {
				tags = b
			}
		}
		streamer := &model.ChzzkStreamer{
			ChzzkID:         channelID,
			LoginName:       live.Channel.ChannelName,
			DisplayName:     live.Channel.ChannelName,
			ProfileImageURL: live.Channel.ChannelImageURL,
			ChannelURL:      fmt.Sprintf("https://chzzk.naver.com/live/%s", channelID),
			ViewerCount:     &viewer,
			StartedAt:       startedAt,
			Tags:            tags,
		}
		streamerID, err := s.repo.UpsertStreamer(ctx, streamer)
		if err != nil {
			s.logger.WithError(err).WithField("channel_id", channelID).Warn("ChzzkDiscover: 主播入库失败，跳过")
			continue
		}
		result.NewStreamers++

		if opts.SkipMapping || live.LiveCategory == "" {
			continue
		}
		categoryID, err := s.repo.GetOrCreateCategory(ctx, live.LiveCategory, live.LiveCategory, live.LiveCategoryValue)
		if err != nil {
			s.logger.WithError(err).WithField("category", live.LiveCategory).Warn("ChzzkDiscover: 分类入库失败")
			continue
		}
		created, err := s.repo.LinkStreamerCategory(ctx, streamerID, categoryID)
		if err != nil {
			s.logger.WithError(err).WithField("channel_id", channelID).Warn("ChzzkDiscover: 分类映射失败")
			continue
		}
		if created {
			result.Mappings++
		}
	}

	s.logger.Infof("ChzzkDiscover: 完成，发掘 %d 个，入库 %d 个，新映射 %d 条",
		result.Discovered, result.NewStreamers, result.Mappings)
	return result, nil
}
