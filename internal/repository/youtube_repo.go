package repository

import (
	"context"
	"time"

	"StreamerSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// YoutubeRepository YouTube 主播/分类/映射仓储
type YoutubeRepository interface {
	// ListCategories 按 sort_order 升序取全部游戏分类
	ListCategories(ctx context.Context) ([]*model.YoutubeGameCategory, error)
	// ExistingChannelIDs 取全部已入库的频道原生 ID（发掘前做去重种子）
	ExistingChannelIDs(ctx context.Context) (map[string]bool, error)
	// UpsertStreamer 以 youtube_channel_id 为冲突键 upsert，返回代理主键
	UpsertStreamer(ctx context.Context, s *model.YoutubeStreamer) (string, error)
	// LinkStreamerCategory 幂等建立主播-分类映射，返回是否新建
	LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error)
	// ListActiveUploadedBefore 活跃但最近上传早于 before 的主播（停更检查用）
	ListActiveUploadedBefore(ctx context.Context, before time.Time) ([]*model.YoutubeStreamer, error)
	// SetActive 批量改活跃标记
	SetActive(ctx context.Context, ids []string, active bool) error
	// ListInactive 全部非活跃主播（复播检查用）
	ListInactive(ctx context.Context) ([]*model.YoutubeStreamer, error)
	// RefreshStreamerStats 回写订阅数与最近上传时间
	RefreshStreamerStats(ctx context.Context, id string, subscribers int64, latestUploadedAt time.Time) error
	// ListStreamersForRefresh 按 updated_at 升序取存量主播（最久未刷新的在前）；
	// categoryNames 非空时只取映射到这些分类的，limit<=0 不限量
	ListStreamersForRefresh(ctx context.Context, categoryNames []string, limit int) ([]*model.YoutubeStreamer, error)
	// UpdateStreamerDetails 回写单行的简介、头像、订阅数与最近上传时间
	UpdateStreamerDetails(ctx context.Context, id, description, profileImageURL string, subscribers int64, latestUploadedAt time.Time) error
	// ListStreamers 分页查询（前端目录接口），categoryName 为空不过滤
	ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.YoutubeStreamer, int64, error)
	// TruncateTables 清空三张表：映射 → 主播 → 分类（外键顺序）
	TruncateTables(ctx context.Context) error
}

type youtubeRepository struct {
	db *gorm.DB
}

func NewYoutubeRepository(db *gorm.DB) YoutubeRepository {
	return &youtubeRepository{db: db}
}

func (r *youtubeRepository) ListCategories(ctx context.Context) ([]*model.YoutubeGameCategory, error) {
	var categories []*model.YoutubeGameCategory
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *youtubeRepository) ExistingChannelIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.YoutubeStreamer{}).
		Pluck("youtube_channel_id", &ids).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

// UpsertStreamer 冲突时只刷新可变字段，created_at 保持首次插入值
func (r *youtubeRepository) UpsertStreamer(ctx context.Context, s *model.YoutubeStreamer) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "youtube_channel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "profile_image_url", "channel_url",
			"featured_video_id", "subscribers", "latest_uploaded_at", "updated_at",
		}),
	}).Create(s).Error; err != nil {
		return "", err
	}

	// 冲突路径下 s.ID 是本次新生成的 uuid，需按自然键读回已有行的代理主键
	var row model.YoutubeStreamer
	if err := r.db.WithContext(ctx).Select("id").
		Where("youtube_channel_id = ?", s.YoutubeChannelID).
		First(&row).Error; err != nil {
		return "", err
	}
	s.ID = row.ID
	return row.ID, nil
}

// LinkStreamerCategory OnConflict DoNothing，天然幂等，并发下也不会出重复映射
func (r *youtubeRepository) LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error) {
	link := &model.YoutubeStreamerCategory{
		ID:         uuid.NewString(),
		StreamerID: streamerID,
		CategoryID: categoryID,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "streamer_id"}, {Name: "category_id"}},
		DoNothing: true,
	}).Create(link)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *youtubeRepository) ListActiveUploadedBefore(ctx context.Context, before time.Time) ([]*model.YoutubeStreamer, error) {
	var streamers []*model.YoutubeStreamer
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND latest_uploaded_at < ?", true, before).
		Find(&streamers).Error; err != nil {
		return nil, err
	}
	return streamers, nil
}

func (r *youtubeRepository) SetActive(ctx context.Context, ids []string, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.YoutubeStreamer{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()}).Error
}

func (r *youtubeRepository) ListInactive(ctx context.Context) ([]*model.YoutubeStreamer, error) {
	var streamers []*model.YoutubeStreamer
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", false).
		Find(&streamers).Error; err != nil {
		return nil, err
	}
	return streamers, nil
}

func (r *youtubeRepository) RefreshStreamerStats(ctx context.Context, id string, subscribers int64, latestUploadedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.YoutubeStreamer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"subscribers":        subscribers,
			"latest_uploaded_at": latestUploadedAt,
			"updated_at":         time.Now(),
		}).Error
}

func (r *youtubeRepository) ListStreamersForRefresh(ctx context.Context, categoryNames []string, limit int) ([]*model.YoutubeStreamer, error) {
	db := r.db.WithContext(ctx).Model(&model.YoutubeStreamer{})
	if len(categoryNames) > 0 {
		db = db.Joins("JOIN youtube_streamer_categories ysc ON ysc.streamer_id = youtube_streamers.id").
			Joins("JOIN youtube_game_categories ygc ON ygc.id = ysc.category_id").
			Where("ygc.name IN ?", categoryNames).
			Distinct("youtube_streamers.*")
	}
	db = db.Order("youtube_streamers.updated_at ASC NULLS FIRST")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var streamers []*model.YoutubeStreamer
	if err := db.Find(&streamers).Error; err != nil {
		return nil, err
	}
	return streamers, nil
}

func (r *youtubeRepository) UpdateStreamerDetails(ctx context.Context, id, description, profileImageURL string, subscribers int64, latestUploadedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.YoutubeStreamer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"description":        description,
			"profile_image_url":  profileImageURL,
			"subscribers":        subscribers,
			"latest_uploaded_at": latestUploadedAt,
			"updated_at":         time.Now(),
		}).Error
}

func (r *youtubeRepository) ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.YoutubeStreamer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.YoutubeStreamer{}).Where("is_active = ?", true)
	if categoryName != "" {
		db = db.Joins("JOIN youtube_streamer_categories ysc ON ysc.streamer_id = youtube_streamers.id").
			Joins("JOIN youtube_game_categories ygc ON ygc.id = ysc.category_id").
			Where("ygc.name = ?", categoryName)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var streamers []*model.YoutubeStreamer
	if err := db.Order("subscribers DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&streamers).Error; err != nil {
		return nil, 0, err
	}
	return streamers, total, nil
}

func (r *youtubeRepository) TruncateTables(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.YoutubeStreamerCategory{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&model.YoutubeStreamer{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&model.YoutubeGameCategory{}).Error
}
