package service

import (
	"context"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/platform/youtube"
	"StreamerSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// inactiveCheckDays 停更检查窗口：最近上传超过 7 天的活跃主播进入复查名单
const inactiveCheckDays = 7

// YoutubeMaintenanceService 定期维护 YouTube 主播库：停更降活跃、复播回活跃
type YoutubeMaintenanceService struct {
	client *youtube.Client
	repo   repository.YoutubeRepository
	cfg    *config.DiscoveryConfig
	logger *logrus.Logger
}

func NewYoutubeMaintenanceService(client *youtube.Client, repo repository.YoutubeRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *YoutubeMaintenanceService {
	return &YoutubeMaintenanceService{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// MaintenanceResult 维护任务的计数汇总
type MaintenanceResult struct {
	Checked     int `json:"checked"`     // 复查的主播数
	Deactivated int `json:"deactivated"` // 降为非活跃的主播数
	Reactivated int `json:"reactivated"` // 恢复活跃的主播数
	Refreshed   int `json:"refreshed"`   // 回写统计数据的主播数
}

// CheckInactive 复查停更候选：最近上传早于 7 天前的活跃主播，重新走一遍
// 资格校验。仍合格的回写最新订阅数与上传时间；不合格的降为非活跃。
func (s *YoutubeMaintenanceService) CheckInactive(ctx context.Context) (*MaintenanceResult, error) {
	before := time.Now().AddDate(0, 0, -inactiveCheckDays)
	candidates, err := s.repo.ListActiveUploadedBefore(ctx, before)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("YoutubeMaintenance: 停更复查候选 %d 个", len(candidates))

	result := &MaintenanceResult{}
	var deactivate []string
	for _, streamer := range candidates {
		result.Checked++
		check, err := s.client.CheckChannel(ctx, streamer.YoutubeChannelID, youtube.CheckChannelOptions{
			MinSubscribers: s.cfg.MinSubscribers,
			MaxUploadDays:  s.cfg.MaxUploadDays,
		})
		if err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeMaintenance: 频道复查失败，保持现状")
			continue
		}
		if !check.Accepted {
			s.logger.Debugf("YoutubeMaintenance: %s 降为非活跃（%s）", streamer.Name, check.Reason)
			deactivate = append(deactivate, streamer.ID)
			continue
		}
		if err := s.repo.RefreshStreamerStats(ctx, streamer.ID, check.Subscribers, check.LatestUploadedAt); err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeMaintenance: 统计回写失败")
			continue
		}
		result.Refreshed++
	}

	if err := s.repo.SetActive(ctx, deactivate, false); err != nil {
		return nil, err
	}
	result.Deactivated = len(deactivate)
	s.logger.Infof("YoutubeMaintenance: 停更复查完成，复查 %d 个，降活跃 %d 个，回写 %d 个",
		result.Checked, result.Deactivated, result.Refreshed)
	return result, nil
}

// CheckReactive 复查全部非活跃主播，重新合格的恢复活跃并回写统计
func (s *YoutubeMaintenanceService) CheckReactive(ctx context.Context) (*MaintenanceResult, error) {
	candidates, err := s.repo.ListInactive(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("YoutubeMaintenance: 复播复查候选 %d 个", len(candidates))

	result := &MaintenanceResult{}
	var reactivate []string
	for _, streamer := range candidates {
		result.Checked++
		check, err := s.client.CheckChannel(ctx, streamer.YoutubeChannelID, youtube.CheckChannelOptions{
			MinSubscribers: s.cfg.MinSubscribers,
			MaxUploadDays:  s.cfg.MaxUploadDays,
		})
		if err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeMaintenance: 频道复查失败，保持现状")
			continue
		}
		if !check.Accepted {
			continue
		}
		reactivate = append(reactivate, streamer.ID)
		if err := s.repo.RefreshStreamerStats(ctx, streamer.ID, check.Subscribers, check.LatestUploadedAt); err != nil {
			s.logger.WithError(err).WithField("channel_id", streamer.YoutubeChannelID).Warn("YoutubeMaintenance: 统计回写失败")
			continue
		}
		result.Refreshed++
	}

	if err := s.repo.SetActive(ctx, reactivate, true); err != nil {
		return nil, err
	}
	result.Reactivated = len(reactivate)
	s.logger.Infof("YoutubeMaintenance: 复播复查完成，复查 %d 个，回活跃 %d 个",
		result.Checked, result.Reactivated)
	return result, nil
}
