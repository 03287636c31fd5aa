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

// KeywordLinkService 旧版关键词管线：按 game_type 搜索 YouTube 频道写进
// 扁平 streamers 表，再按 game_type 建主播-关键词映射。新前端不再消费
// 这组表，但 cron 路由仍挂着该任务。
type KeywordLinkService struct {
	client      *youtube.Client
	keywordRepo repository.KeywordRepository
	cfg         *config.DiscoveryConfig
	logger      *logrus.Logger
}

func NewKeywordLinkService(client *youtube.Client, keywordRepo repository.KeywordRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *KeywordLinkService {
	return &KeywordLinkService{
		client:      client,
		keywordRepo: keywordRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// KeywordLinkResult 旧版管线的计数汇总
type KeywordLinkResult struct {
	Saved  int `json:"saved"`  // 写入扁平表的主播数
	Linked int `json:"linked"` // 新建的关键词映射数
}

// Run 先搜索入库再建映射，两阶段顺序执行
func (s *KeywordLinkService) Run(ctx context.Context) (*KeywordLinkResult, error) {
	result := &KeywordLinkResult{}
	if err := s.searchAndSave(ctx, result); err != nil {
		return nil, err
	}
	if err := s.linkStreamersToKeywords(ctx, result); err != nil {
		return nil, err
	}
	s.logger.Infof("KeywordLink: 完成，入库 %d 个，新映射 %d 条", result.Saved, result.Linked)
	return result, nil
}

// searchAndSave 每个 game_type 搜一轮，通过校验的频道以平台原生 ID 写扁平表
func (s *KeywordLinkService) searchAndSave(ctx context.Context, result *KeywordLinkResult) error {
	seen := make(map[string]bool)
	for gameType, keyword := range model.GameTypeToKeyword {
		query := keyword + " 스트리머"
		items, err := s.client.SearchChannels(ctx, query, s.cfg.SearchResults)
		if err != nil {
			s.logger.WithError(err).WithField("game_type", gameType).Warn("KeywordLink: 搜索失败，跳过该类型")
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
				s.logger.WithError(err).WithField("channel_id", channelID).Warn("KeywordLink: 频道校验失败，跳过")
				continue
			}
			if !check.Accepted {
				continue
			}

			uploadedAt := check.LatestUploadedAt
			streamer := &model.Streamer{
				ID:               channelID,
				Name:             item.Snippet.Title,
				Description:      check.Description,
				Platform:         "youtube",
				Gender:           "unknown",
				ProfileImageURL:  check.ProfileImageURL,
				ChannelURL:       fmt.Sprintf("https://www.youtube.com/channel/%s", channelID),
				Subscribers:      check.Subscribers,
				GameType:         gameType,
				LatestUploadedAt: &uploadedAt,
			}
			if err := s.keywordRepo.UpsertFlatStreamer(ctx, streamer); err != nil {
				s.logger.WithError(err).WithField("channel_id", channelID).Warn("KeywordLink: 主播入库失败，跳过")
				continue
			}
			platformRow := &model.StreamerPlatform{
				StreamerID:       streamer.ID,
				Platform:         "youtube",
				PlatformID:       channelID,
				ChannelURL:       streamer.ChannelURL,
				ProfileImageURL:  check.ProfileImageURL,
				Subscribers:      check.Subscribers,
				LatestUploadedAt: &uploadedAt,
			}
			if err := s.keywordRepo.UpsertStreamerPlatform(ctx, platformRow); err != nil {
				s.logger.WithError(err).WithField("channel_id", channelID).Warn("KeywordLink: 平台账号明细入库失败")
			}
			result.Saved++
		}
	}
	return nil
}

// linkStreamersToKeywords 全表扫一遍，game_type 能映射到关键词的建映射
func (s *KeywordLinkService) linkStreamersToKeywords(ctx context.Context, result *KeywordLinkResult) error {
	streamers, err := s.keywordRepo.ListFlatStreamers(ctx)
	if err != nil {
		return err
	}

	// 同名关键词只建一次
	keywordIDs := make(map[string]string)
	for _, streamer := range streamers {
		keywordName, ok := model.GameTypeToKeyword[streamer.GameType]
		if !ok {
			continue
		}

		keywordID, ok := keywordIDs[keywordName]
		if !ok {
			keywordID, err = s.keywordRepo.GetOrCreateKeyword(ctx, keywordName, model.KeywordTypeGameTitle)
			if err != nil {
				s.logger.WithError(err).WithField("keyword", keywordName).Warn("KeywordLink: 关键词入库失败")
				continue
			}
			keywordIDs[keywordName] = keywordID
		}

		created, err := s.keywordRepo.LinkStreamerKeyword(ctx, streamer.ID, keywordID)
		if err != nil {
			s.logger.WithError(err).WithField("streamer_id", streamer.ID).Warn("KeywordLink: 关键词映射失败")
			continue
		}
		if created {
			result.Linked++
		}
	}
	return nil
}
