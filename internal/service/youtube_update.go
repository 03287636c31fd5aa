package service

import (
	"context"

	"StreamerSync/internal/config"
	"StreamerSync/internal/platform/youtube"
	"StreamerSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// YoutubeUpdateService 批量刷新存量 YouTube 主播：按 updated_at 最旧优先
// 逐个重查频道详情并回写。跳过最新视频的游戏分类检查（发掘时已查过）。
type YoutubeUpdateService struct {
	client *youtube.Client
	repo   repository.YoutubeRepository
	cfg    *config.DiscoveryConfig
	logger *logrus.Logger
}

func NewYoutubeUpdateService(client *youtube.Client, repo repository.YoutubeRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *YoutubeUpdateService {
	return &YoutubeUpdateService{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// YoutubeUpdateOptions 单次刷新的运行参数。Categories 非空只刷指定分类
// 下的主播；Limit<=0 不限量。
type YoutubeUpdateOptions struct {
	Categories []string
	Limit      int
}

// UpdateResult 存量刷新的计数汇总
type UpdateResult struct {
	Candidates int `json:"candidates"` // 刷新对象数
	Updated    int `json:"updated"`    // 回写成功数
	Failed     int `json:"failed"`     // 重查不合格或回写失败数
}

// Run 取刷新对象后逐个重查回写，单个失败只记警告继续
func (s *YoutubeUpdateService) Run(ctx context.Context, opts YoutubeUpdateOptions) (*UpdateResult, error) {
	streamers, err := s.repo.ListStreamersForRefresh(ctx, opts.Categories, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("YoutubeUpdate: 刷新对象 %d 个", len(streamers))

	result := &UpdateResult{Candidates: len(streamers)}
	for _, streamer := range streamers {
		check, err := s.client.CheckChannel(ctx, streamer.YoutubeChannelID, youtube.CheckChannelOptions{
			MinSubscribers: s.cfg.MinSubscribers,
			MaxUploadDays:  s.cfg.MaxUploadDays,
			SkipGameCheck:  true,
		})
		if err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeUpdate: 频道重查失败，跳过")
			result.Failed++
			continue
		}
		if !check.Accepted {
			s.logger.Debugf("YoutubeUpdate: %s 不再合格（%s），保持原数据", streamer.Name, check.Reason)
			result.Failed++
			continue
		}

		// 新值为空时保留库里已有的
		description := check.Description
		if description == "" {
			description = streamer.Description
		}
		profileImageURL := check.ProfileImageURL
		if profileImageURL == "" {
			profileImageURL = streamer.ProfileImageURL
		}
		if err := s.repo.UpdateStreamerDetails(ctx, streamer.ID, description, profileImageURL, check.Subscribers, check.LatestUploadedAt); err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeUpdate: 回写失败")
			result.Failed++
			continue
		}
		result.Updated++
	}

	s.logger.Infof("YoutubeUpdate: 完成，对象 %d 个，成功 %d 个，失败 %d 个",
		result.Candidates, result.Updated, result.Failed)
	return result, nil
}
