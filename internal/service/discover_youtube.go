package service

import (
	"context"
	"fmt"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/youtube"
	"StreamerSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// YoutubeDiscoverService 按游戏分类关键词搜索 YouTube 频道，过滤后入库并建映射
type YoutubeDiscoverService struct {
	client *youtube.Client
	repo   repository.YoutubeRepository
	cfg    *config.DiscoveryConfig
	logger *logrus.Logger
}

func NewYoutubeDiscoverService(client *youtube.Client, repo repository.YoutubeRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *YoutubeDiscoverService {
	return &YoutubeDiscoverService{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// YoutubeDiscoverOptions 单次发掘的运行参数
type YoutubeDiscoverOptions struct {
	Games       []string // 只处理这些分类（规范化名），空则处理 DB 里全部分类
	Keywords    []string // 覆盖检索词，空则按分类取 GameKeywords/默认模板
	SkipMapping bool     // 只写主播不建分类映射
}

// DiscoverResult 发掘任务的计数汇总
type DiscoverResult struct {
	Searches     int `json:"searches"`     // 发起的搜索次数
	Discovered   int `json:"discovered"`   // 通过校验的频道数
	NewStreamers int `json:"newStreamers"` // 含新建与刷新的 upsert 数
	Mappings     int `json:"mappings"`     // 新建的分类映射数
}

// Run 逐分类、逐关键词搜索并校验候选频道。搜索或单频道校验失败只记
// 警告跳过，不中断整次任务。已入库的频道 ID 在开跑前做种子去重。
func (s *YoutubeDiscoverService) Run(ctx context.Context, opts YoutubeDiscoverOptions) (*DiscoverResult, error) {
	categories, err := s.resolveCategories(ctx, opts.Games)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		s.logger.Warn("YoutubeDiscover: 无可处理的游戏分类")
		return &DiscoverResult{}, nil
	}

	seen, err := s.repo.ExistingChannelIDs(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("YoutubeDiscover: 开始发掘，分类 %d 个，已有频道 %d 个", len(categories), len(seen))

	result := &DiscoverResult{}
	for _, category := range categories {
		keywords := opts.Keywords
		if len(keywords) == 0 {
			keywords = model.GameKeywords[category.DisplayName]
		}
		if len(keywords) == 0 {
			keywords = model.DefaultKeywordPatterns(category.Name, category.DisplayName)
		}

		for _, keyword := range keywords {
			result.Searches++
			items, err := s.client.SearchChannels(ctx, keyword, s.cfg.SearchResults)
			if err != nil {
				s.logger.WithError(err).WithField("keyword", keyword).Warn("YoutubeDiscover: 搜索失败，跳过该关键词")
				continue
			}

			for _, item := range items {
				channelID := item.ID.ChannelID
				if channelID == "" || seen[channelID] {
					continue
				}
				seen[channelID] = true

				if !youtube.IsKoreanText(item.Snippet.Title + " " + item.Snippet.Description) {
					continue
				}

				check, err := s.client.CheckChannel(ctx, channelID, youtube.CheckChannelOptions{
					MinSubscribers: s.cfg.MinSubscribers,
					MaxUploadDays:  s.cfg.MaxUploadDays,
				})
				if err != nil {
					s.logger.WithError(err).WithField("channel_id", channelID).Warn("YoutubeDiscover: 频道校验失败，跳过")
					continue
				}
				if !check.Accepted {
					s.logger.Debugf("YoutubeDiscover: 跳过 %s（%s）", item.Snippet.Title, check.Reason)
					continue
				}
				result.Discovered++

				uploadedAt := check.LatestUploadedAt
				streamer := &model.YoutubeStreamer{
					YoutubeChannelID: channelID,
					Name:             item.Snippet.Title,
					Description:      check.Description,
					ProfileImageURL:  check.ProfileImageURL,
					ChannelURL:       fmt.Sprintf("https://www.youtube.com/channel/%s", channelID),
					FeaturedVideoID:  check.FeaturedVideoID,
					Subscribers:      check.Subscribers,
					LatestUploadedAt: &uploadedAt,
					IsActive:         true,
				}
				streamerID, err := s.repo.UpsertStreamer(ctx, streamer)
				if err != nil {
					s.logger.WithError(err).WithField("channel_id", channelID).Warn("YoutubeDiscover: 主播入库失败，跳过")
					continue
				}
				result.NewStreamers++

				if !opts.SkipMapping {
					created, err := s.repo.LinkStreamerCategory(ctx, streamerID, category.ID)
					if err != nil {
						s.logger.WithError(err).WithField("channel_id", channelID).Warn("YoutubeDiscover: 分类映射失败")
						continue
					}
					if created {
						result.Mappings++
					}
				}
			}
		}
	}

	s.logger.Infof("YoutubeDiscover: 完成，搜索 %d 次，通过 %d 个，入库 %d 个，新映射 %d 条",
		result.Searches, result.Discovered, result.NewStreamers, result.Mappings)
	return result, nil
}

// resolveCategories 取 DB 里的分类，games 非空时只保留点名的分类
func (s *YoutubeDiscoverService) resolveCategories(ctx context.Context, games []string) ([]*model.YoutubeGameCategory, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return categories, nil
	}

	wanted := make(map[string]bool, len(games))
	for _, g := range games {
		wanted[g] = true
	}
	var filtered []*model.YoutubeGameCategory
	for _, c := range categories {
		if wanted[c.Name] || wanted[c.DisplayName] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
