package repository

import (
	"context"
	"strings"
	"time"
	"unicode"

	"StreamerSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChzzkRepository Chzzk 主播/分类/映射仓储
type ChzzkRepository interface {
	UpsertStreamer(ctx context.Context, s *model.ChzzkStreamer) (string, error)
	// GetOrCreateCategory 分类来自直播间自报的 liveCategory/liveCategoryValue
	GetOrCreateCategory(ctx context.Context, gameID, name, displayName string) (string, error)
	LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error)
	ListCategories(ctx context.Context) ([]*model.ChzzkGameCategory, error)
	ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.ChzzkStreamer, int64, error)
	TruncateTables(ctx context.Context) error
}

type chzzkRepository struct {
	db *gorm.DB
}

func NewChzzkRepository(db *gorm.DB) ChzzkRepository {
	return &chzzkRepository{db: db}
}

func (r *chzzkRepository) UpsertStreamer(ctx context.Context, s *model.ChzzkStreamer) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chzzk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"login_name", "display_name", "description", "profile_image_url",
			"channel_url", "viewer_count", "started_at", "tags", "updated_at",
		}),
	}).Create(s).Error; err != nil {
		return "", err
	}

	var row model.ChzzkStreamer
	if err := r.db.WithContext(ctx).Select("id").
		Where("chzzk_id = ?", s.ChzzkID).
		First(&row).Error; err != nil {
		return "", err
	}
	s.ID = row.ID
	return row.ID, nil
}

// NormalizeCategoryName 分类规范化名：小写并去掉所有空白（含制表符、NBSP 等）
func NormalizeCategoryName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
}

func (r *chzzkRepository) GetOrCreateCategory(ctx context.Context, gameID, name, displayName string) (string, error) {
	var existing model.ChzzkGameCategory
	err := r.db.WithContext(ctx).Select("id").
		Where("chzzk_game_id = ?", gameID).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	if displayName == "" {
		displayName = name
	}
	category := &model.ChzzkGameCategory{
		ID:          uuid.NewString(),
		ChzzkGameID: gameID,
		Name:        NormalizeCategoryName(name),
		DisplayName: displayName,
		SortOrder:   0,
		CreatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chzzk_game_id"}},
		DoNothing: true,
	}).Create(category).Error; err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Select("id").
		Where("chzzk_game_id = ?", gameID).
		First(&existing).Error; err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (r *chzzkRepository) LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error) {
	link := &model.ChzzkStreamerCategory{
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

func (r *chzzkRepository) ListCategories(ctx context.Context) ([]*model.ChzzkGameCategory, error) {
	var categories []*model.ChzzkGameCategory
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *chzzkRepository) ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.ChzzkStreamer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.ChzzkStreamer{})
	if categoryName != "" {
		db = db.Joins("JOIN chzzk_streamer_categories csc ON csc.streamer_id = chzzk_streamers.id").
			Joins("JOIN chzzk_game_categories cgc ON cgc.id = csc.category_id").
			Where("cgc.name = ?", NormalizeCategoryName(categoryName))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var streamers []*model.ChzzkStreamer
	if err := db.Order("viewer_count DESC NULLS LAST").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&streamers).Error; err != nil {
		return nil, 0, err
	}
	return streamers, total, nil
}

func (r *chzzkRepository) TruncateTables(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.ChzzkStreamerCategory{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&model.ChzzkStreamer{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&model.ChzzkGameCategory{}).Error
}
