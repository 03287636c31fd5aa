package api

import (
	"net/http"

	"StreamerSync/internal/config"
	"StreamerSync/internal/platform/chzzk"
	"StreamerSync/internal/platform/twitch"
	"StreamerSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LiveStatusHandler 前端轮询的直播状态接口，每个平台各挂一个带缓存的查询服务
type LiveStatusHandler struct {
	twitchStatus *service.LiveStatusService
	chzzkStatus  *service.LiveStatusService
	logger       *logrus.Logger
}

func NewLiveStatusHandler(cfg *config.Config, logger *logrus.Logger) *LiveStatusHandler {
	twitchCfg := cfg.Platforms["twitch"]
	chzzkCfg := cfg.Platforms["chzzk"]
	return &LiveStatusHandler{
		twitchStatus: service.NewLiveStatusService(twitch.NewClient(&twitchCfg, logger), cfg.LiveStatus.CacheTTL, logger),
		chzzkStatus:  service.NewLiveStatusService(chzzk.NewClient(&chzzkCfg, logger), cfg.LiveStatus.CacheTTL, logger),
		logger:       logger,
	}
}

// PurgeExpired 清掉两个平台缓存里的过期条目，返回清理总数
func (h *LiveStatusHandler) PurgeExpired() int {
	return h.twitchStatus.PurgeExpired() + h.chzzkStatus.PurgeExpired()
}

type twitchLiveStatusRequest struct {
	TwitchIDs []string `json:"twitchIds"`
}

type chzzkLiveStatusRequest struct {
	ChzzkIDs []string `json:"chzzkIds"`
}

// TwitchLiveStatus 批量查询 Twitch 直播状态
// POST /api/twitch/live-status {"twitchIds": ["1234", ...]}
func (h *LiveStatusHandler) TwitchLiveStatus(c *gin.Context) {
	var req twitchLiveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.TwitchIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "twitchIds 不能为空"})
		return
	}

	statuses, _, err := h.twitchStatus.GetStatuses(c.Request.Context(), req.TwitchIDs)
	if err != nil {
		h.logger.WithError(err).Error("TwitchLiveStatus failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// ChzzkLiveStatus 批量查询 Chzzk 直播状态
// POST /api/chzzk/live-status {"chzzkIds": ["abcd...", ...]}
func (h *LiveStatusHandler) ChzzkLiveStatus(c *gin.Context) {
	var req chzzkLiveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ChzzkIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chzzkIds 不能为空"})
		return
	}

	statuses, _, err := h.chzzkStatus.GetStatuses(c.Request.Context(), req.ChzzkIDs)
	if err != nil {
		h.logger.WithError(err).Error("ChzzkLiveStatus failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}
