package interfaces

import (
	"context"

	"StreamerSync/internal/model"
)

// LiveStatusProvider 按平台原生 ID 批量查询直播状态。
// 返回的 map 必须覆盖请求里的每一个 ID：查不到直播的 ID 给未开播兜底记录。
type LiveStatusProvider interface {
	FetchLiveStatus(ctx context.Context, ids []string) (map[string]model.StreamStatus, error)
}
