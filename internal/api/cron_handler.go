package api

import (
	"net/http"

	"StreamerSync/internal/config"
	"StreamerSync/internal/platform/twitch"
	"StreamerSync/internal/platform/youtube"
	"StreamerSync/internal/repository"
	"StreamerSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CronHandler 外部调度器（Vercel cron 之类）触发的采集任务路由，
// 共享密钥经 query 参数 token 校验
type CronHandler struct {
	cfg            *config.Config
	twitchRepo     repository.TwitchRepository
	twitchDiscover *service.TwitchDiscoverService
	keywordLink    *service.KeywordLinkService
	logger         *logrus.Logger
}

func NewCronHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *CronHandler {
	twitchCfg := cfg.Platforms["twitch"]
	youtubeCfg := cfg.Platforms["youtube"]
	twitchRepo := repository.NewTwitchRepository(db)
	youtubeClient := youtube.NewClient(&youtubeCfg, logger)
	return &CronHandler{
		cfg:            cfg,
		twitchRepo:     twitchRepo,
		twitchDiscover: service.NewTwitchDiscoverService(twitch.NewClient(&twitchCfg, logger), twitchRepo, &cfg.Discovery, logger),
		keywordLink:    service.NewKeywordLinkService(youtubeClient, repository.NewKeywordRepository(db), &cfg.Discovery, logger),
		logger:         logger,
	}
}

// RequireToken cron 路由的密钥校验中间件；密钥未配置时放行（本地调试）
func (h *CronHandler) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := h.cfg.Server.CronSecret
		if secret != "" && c.Query("token") != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token 无效"})
			return
		}
		c.Next()
	}
}

// TwitchCollect 清空 Twitch 三表后重新全量采集
// GET /api/cron/twitch-collect?token=xxx
func (h *CronHandler) TwitchCollect(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.twitchRepo.TruncateTables(ctx); err != nil {
		h.logger.WithError(err).Error("TwitchCollect: 清表失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.twitchDiscover.Run(ctx, service.TwitchDiscoverOptions{})
	if err != nil {
		h.logger.WithError(err).Error("TwitchCollect: 采集失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Twitch采集完成", "result": result})
}

// CollectStreamers 旧版关键词管线：搜索入库 + 关键词映射
// GET /api/cron/collect-streamers?token=xxx
func (h *CronHandler) CollectStreamers(c *gin.Context) {
	result, err := h.keywordLink.Run(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("CollectStreamers: 采集失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "关键词采集完成", "result": result})
}
