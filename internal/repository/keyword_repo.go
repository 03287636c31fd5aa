package repository

import (
	"context"
	"time"

	"StreamerSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeywordRepository 旧版扁平模型（streamers/keywords/streamer_keywords）仓储，
// 关键词管线仍在 cron 路径上使用
type KeywordRepository interface {
	// UpsertFlatStreamer 以平台原生 ID 直接做主键的旧表 upsert
	UpsertFlatStreamer(ctx context.Context, s *model.Streamer) error
	// ListFlatStreamers 取全部旧表主播（id + game_type 即可）
	ListFlatStreamers(ctx context.Context) ([]*model.Streamer, error)
	// UpsertStreamerPlatform 维护主播的平台账号明细，冲突键 (streamer_id, platform)
	UpsertStreamerPlatform(ctx context.Context, p *model.StreamerPlatform) error
	// GetOrCreateKeyword 按名称取关键词，不存在则以给定类型新建
	GetOrCreateKeyword(ctx context.Context, name, keywordType string) (string, error)
	// LinkStreamerKeyword 幂等建立主播-关键词映射
	LinkStreamerKeyword(ctx context.Context, streamerID, keywordID string) (bool, error)
}

type keywordRepository struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) UpsertFlatStreamer(ctx context.Context, s *model.Streamer) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "profile_image_url", "channel_url",
			"subscribers", "game_type", "latest_uploaded_at", "updated_at",
		}),
	}).Create(s).Error
}

func (r *keywordRepository) ListFlatStreamers(ctx context.Context) ([]*model.Streamer, error) {
	var streamers []*model.Streamer
	if err := r.db.WithContext(ctx).Find(&streamers).Error; err != nil {
		return nil, err
	}
	return streamers, nil
}

func (r *keywordRepository) UpsertStreamerPlatform(ctx context.Context, p *model.StreamerPlatform) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "streamer_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platform_id", "channel_url", "profile_image_url",
			"subscribers", "latest_uploaded_at", "updated_at",
		}),
	}).Create(p).Error
}

func (r *keywordRepository) GetOrCreateKeyword(ctx context.Context, name, keywordType string) (string, error) {
	var existing model.Keyword
	err := r.db.WithContext(ctx).Select("id").
		Where("name = ?", name).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	keyword := &model.Keyword{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      keywordType,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(keyword).Error; err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Select("id").
		Where("name = ?", name).
		First(&existing).Error; err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (r *keywordRepository) LinkStreamerKeyword(ctx context.Context, streamerID, keywordID string) (bool, error) {
	link := &model.StreamerKeyword{
		ID:         uuid.NewString(),
		StreamerID: streamerID,
		KeywordID:  keywordID,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "streamer_id"}, {Name: "keyword_id"}},
		DoNothing: true,
	}).Create(link)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
