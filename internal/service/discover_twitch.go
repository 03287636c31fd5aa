package service

import (
	"context"
	"fmt"
	"time"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/twitch"
	"StreamerSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// TwitchDiscoverService 从 Twitch 在播流发掘韩语主播并入库
type TwitchDiscoverService struct {
	client *twitch.Client
	repo   repository.TwitchRepository
	cfg    *config.DiscoveryConfig
	logger *logrus.Logger
}

func NewTwitchDiscoverService(client *twitch.Client, repo repository.TwitchRepository, cfg *config.DiscoveryConfig, logger *logrus.Logger) *TwitchDiscoverService {
	return &TwitchDiscoverService{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// TwitchDiscoverOptions 单次发掘的运行参数。GameID 非空只扫单个游戏；
// AllGames 不限游戏、按语言扫全站在播流；默认扫热门游戏前 Top 个。
type TwitchDiscoverOptions struct {
	GameID      string
	AllGames    bool
	Top         int
	Language    string
	Limit       int
	SkipMapping bool
}

// Run 收集在播流、按流聚合去重后批量补全用户详情，逐个 upsert 并建映射。
// 单游戏或单主播失败只记警告继续。
func (s *TwitchDiscoverService) Run(ctx context.Context, opts TwitchDiscoverOptions) (*DiscoverResult, error) {
	language := opts.Language
	if language == "" {
		language = s.cfg.Language
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.StreamerLimit
	}

	games, err := s.resolveGames(ctx, opts)
	if err != nil {
		return nil, err
	}

	// existing 只用来区分新老主播计数；在播主播无论新老都要 upsert，
	// 否则老主播的 viewer_count/started_at 不会刷新
	existing, err := s.repo.ExistingTwitchIDs(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("TwitchDiscover: 开始发掘，游戏 %d 个，语言 %s，已有主播 %d 个", len(games), language, len(existing))

	result := &DiscoverResult{}
	processed := make(map[string]bool)
	if len(games) == 0 {
		// 不限游戏：按语言扫全站在播流，分类取各流自报的 game_id
		streams, err := s.client.GetStreamsByLanguage(ctx, language, limit)
		if err != nil {
			return nil, err
		}
		result.Searches++
		s.ingestStreams(ctx, streams, nil, existing, processed, opts.SkipMapping, result)
	} else {
		for _, game := range games {
			streams, err := s.client.GetStreamsByGame(ctx, game.ID, language, limit)
			if err != nil {
				s.logger.WithError(err).WithField("game", game.Name).Warn("TwitchDiscover: 拉取在播流失败，跳过该游戏")
				continue
			}
			result.Searches++
			g := game
			s.ingestStreams(ctx, streams, &g, existing, processed, opts.SkipMapping, result)
		}
	}

	s.logger.Infof("TwitchDiscover: 完成，扫描 %d 批，发掘 %d 个，入库 %d 个，新映射 %d 条",
		result.Searches, result.Discovered, result.NewStreamers, result.Mappings)
	return result, nil
}

// resolveGames 确定要扫的游戏列表；GameID 指定时只查该游戏（名称未知，占位用 ID）
func (s *TwitchDiscoverService) resolveGames(ctx context.Context, opts TwitchDiscoverOptions) ([]model.TwitchGame, error) {
	if opts.AllGames {
		return nil, nil
	}
	if opts.GameID != "" {
		return []model.TwitchGame{{ID: opts.GameID, Name: opts.GameID}}, nil
	}
	top := opts.Top
	if top <= 0 {
		top = s.cfg.TopGames
	}
	return s.client.GetTopGames(ctx, top)
}

// ingestStreams 把一批在播流灌进库：先在本轮内去重收集用户 ID，批量查详情，
// 再逐个 upsert；existing 只决定 NewStreamers 计数。game 为 nil 时分类取
// 各流自报的 game_id/game_name。
func (s *TwitchDiscoverService) ingestStreams(ctx context.Context, streams []model.TwitchStream, game *model.TwitchGame, existing, processed map[string]bool, skipMapping bool, result *DiscoverResult) {
	var userIDs []string
	streamMap := make(map[string]model.TwitchStream, len(streams))
	for _, stream := range streams {
		if stream.UserID == "" || processed[stream.UserID] {
			continue
		}
		processed[stream.UserID] = true
		userIDs = append(userIDs, stream.UserID)
		streamMap[stream.UserID] = stream
	}
	if len(userIDs) == 0 {
		return
	}

	users, err := s.client.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		s.logger.WithError(err).Warn("TwitchDiscover: 批量查询用户详情失败，跳过该批")
		return
	}

	for _, user := range users {
		stream := streamMap[user.ID]
		result.Discovered++

		viewer := stream.ViewerCount
		var startedAt *time.Time
		if t, err := time.Parse(time.RFC3339, stream.StartedAt); err == nil {
			startedAt = &t
		}
		streamer := &model.TwitchStreamer{
			TwitchID:        user.ID,
			LoginName:       user.Login,
			DisplayName:     user.DisplayName,
			Description:     user.Description,
			ProfileImageURL: user.ProfileImageURL,
			ChannelURL:      fmt.Sprintf("https://www.twitch.tv/%s", user.Login),
			ViewerCount:     &viewer,
			StartedAt:       startedAt,
		}
		streamerID, err := s.repo.UpsertStreamer(ctx, streamer)
		if err != nil {
			s.logger.WithError(err).WithField("twitch_id", user.ID).Warn("TwitchDiscover: 主播入库失败，跳过")
			continue
		}
		if !existing[user.ID] {
			existing[user.ID] = true
			result.NewStreamers++
		}

		if skipMapping {
			continue
		}
		categoryGame := game
		if categoryGame == nil {
			if stream.GameID == "" {
				continue
			}
			categoryGame = &model.TwitchGame{ID: stream.GameID, Name: stream.GameName}
		}
		categoryID, err := s.repo.GetOrCreateCategory(ctx, *categoryGame)
		if err != nil {
			s.logger.WithError(err).WithField("game", categoryGame.Name).Warn("TwitchDiscover: 分类入库失败")
			continue
		}
		created, err := s.repo.LinkStreamerCategory(ctx, streamerID, categoryID)
		if err != nil {
			s.logger.WithError(err).WithField("twitch_id", user.ID).Warn("TwitchDiscover: 分类映射失败")
			continue
		}
		if created {
			result.Mappings++
		}
	}
}
