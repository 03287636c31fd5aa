package api

import (
	"net/http"
	"strconv"

	"StreamerSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogHandler 提供给前端的主播/分类/公告只读接口
type CatalogHandler struct {
	youtubeRepo repository.YoutubeRepository
	twitchRepo  repository.TwitchRepository
	chzzkRepo   repository.ChzzkRepository
	noticeRepo  repository.NoticeRepository
	logger      *logrus.Logger
}

func NewCatalogHandler(db *gorm.DB, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		youtubeRepo: repository.NewYoutubeRepository(db),
		twitchRepo:  repository.NewTwitchRepository(db),
		chzzkRepo:   repository.NewChzzkRepository(db),
		noticeRepo:  repository.NewNoticeRepository(db),
		logger:      logger,
	}
}

// ListStreamers 主播列表接口，按平台分表查询
// GET /api/:platform/streamers?category=롤&page=1&page_size=20
func (h *CatalogHandler) ListStreamers(c *gin.Context) {
	platform := c.Param("platform")
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	ctx := c.Request.Context()
	var (
		data  interface{}
		total int64
		err   error
	)
	switch platform {
	case "youtube":
		data, total, err = h.youtubeRepo.ListStreamers(ctx, category, page, pageSize)
	case "twitch":
		data, total, err = h.twitchRepo.ListStreamers(ctx, category, page, pageSize)
	case "chzzk":
		data, total, err = h.chzzkRepo.ListStreamers(ctx, category, page, pageSize)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知平台: " + platform})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("platform", platform).Error("ListStreamers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListCategories 游戏分类列表接口
// GET /api/:platform/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	platform := c.Param("platform")

	ctx := c.Request.Context()
	var (
		data interface{}
		err  error
	)
	switch platform {
	case "youtube":
		data, err = h.youtubeRepo.ListCategories(ctx)
	case "twitch":
		data, err = h.twitchRepo.ListCategories(ctx)
	case "chzzk":
		data, err = h.chzzkRepo.ListCategories(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知平台: " + platform})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("platform", platform).Error("ListCategories failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// ListNotices 公告列表接口
// GET /api/notices
func (h *CatalogHandler) ListNotices(c *gin.Context) {
	notices, err := h.noticeRepo.ListNotices(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListNotices failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notices})
}

// Health 健康检查
// GET /api/health
func (h *CatalogHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
