package repository

import (
	"context"

	"StreamerSync/internal/model"

	"gorm.io/gorm"
)

// NoticeRepository 公告仓储（前端只读）
type NoticeRepository interface {
	// ListNotices 置顶公告在前，其余按创建时间倒序
	ListNotices(ctx context.Context) ([]*model.Notice, error)
}

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) ListNotices(ctx context.Context) ([]*model.Notice, error) {
	var notices []*model.Notice
	if err := r.db.WithContext(ctx).
		Order("important DESC, created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}
