package repository

import (
	"context"
	"time"

	"StreamerSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TwitchRepository Twitch 主播/分类/映射仓储
type TwitchRepository interface {
	ExistingTwitchIDs(ctx context.Context) (map[string]bool, error)
	UpsertStreamer(ctx context.Context, s *model.TwitchStreamer) (string, error)
	// GetOrCreateCategory 按 twitch_game_id 查分类，不存在则以 sort_order=0 新建
	GetOrCreateCategory(ctx context.Context, game model.TwitchGame) (string, error)
	LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error)
	ListCategories(ctx context.Context) ([]*model.TwitchGameCategory, error)
	ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.TwitchStreamer, int64, error)
	TruncateTables(ctx context.Context) error
}

type twitchRepository struct {
	db *gorm.DB
}

func NewTwitchRepository(db *gorm.DB) TwitchRepository {
	return &twitchRepository{db: db}
}

func (r *twitchRepository) ExistingTwitchIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.TwitchStreamer{}).
		Pluck("twitch_id", &ids).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

func (r *twitchRepository) UpsertStreamer(ctx context.Context, s *model.TwitchStreamer) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "twitch_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"login_name", "display_name", "description", "profile_image_url",
			"channel_url", "viewer_count", "started_at", "updated_at",
		}),
	}).Create(s).Error; err != nil {
		return "", err
	}

	var row model.TwitchStreamer
	if err := r.db.WithContext(ctx).Select("id").
		Where("twitch_id = ?", s.TwitchID).
		First(&row).Error; err != nil {
		return "", err
	}
	s.ID = row.ID
	return row.ID, nil
}

func (r *twitchRepository) GetOrCreateCategory(ctx context.Context, game model.TwitchGame) (string, error) {
	var existing model.TwitchGameCategory
	err := r.db.WithContext(ctx).Select("id").
		Where("twitch_game_id = ?", game.ID).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	category := &model.TwitchGameCategory{
		ID:           uuid.NewString(),
		TwitchGameID: game.ID,
		Name:         game.Name,
		DisplayName:  game.Name,
		BoxArtURL:    game.BoxArtURL,
		SortOrder:    0,
		CreatedAt:    time.Now(),
	}
	// 并发建同一分类时落到冲突分支，再读一次拿已有行
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "twitch_game_id"}},
		DoNothing: true,
	}).Create(category).Error; err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Select("id").
		Where("twitch_game_id = ?", game.ID).
		First(&existing).Error; err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (r *twitchRepository) LinkStreamerCategory(ctx context.Context, streamerID, categoryID string) (bool, error) {
	link := &model.TwitchStreamerCategory{
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

func (r *twitchRepository) ListCategories(ctx context.Context) ([]*model.TwitchGameCategory, error) {
	var categories []*model.TwitchGameCategory
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *twitchRepository) ListStreamers(ctx context.Context, categoryName string, page, pageSize int) ([]*model.TwitchStreamer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.TwitchStreamer{})
	if categoryName != "" {
		db = db.Joins("JOIN twitch_streamer_categories tsc ON tsc.streamer_id = twitch_streamers.id").
			Joins("JOIN twitch_game_categories tgc ON tgc.id = tsc.category_id").
			Where("tgc.name = ?", categoryName)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var streamers []*model.TwitchStreamer
	if err := db.Order("viewer_count DESC NULLS LAST").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&streamers).Error; err != nil {
		return nil, 0, err
	}
	return streamers, total, nil
}

func (r *twitchRepository) TruncateTables(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.TwitchStreamerCategory{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&model.TwitchStreamer{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&model.TwitchGameCategory{}).Error
}
