package model

// StreamStatus 单个频道的直播状态。未开播时 IsLive=false 且其余字段为空，
// 调用方无需探测字段是否存在（带平台标记的统一结构，替代前端的散装 union）。
type StreamStatus struct {
	IsLive       bool    `json:"isLive"`
	ViewerCount  *int    `json:"viewerCount"`
	Title        *string `json:"title"`
	GameName     *string `json:"gameName"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	StartedAt    *string `json:"startedAt"`
	// Error 仅在单频道查询失败时置位（Chzzk 逐个查询的场景），不影响批次内其他频道
	Error string `json:"error,omitempty"`
}

// OfflineStatus 未开播的兜底记录：批次里查不到直播的 ID 也要有键
func OfflineStatus() StreamStatus {
	return StreamStatus{IsLive: false}
}

// ErrorStatus 单频道查询失败的兜底记录
func ErrorStatus(msg string) StreamStatus {
	return StreamStatus{IsLive: false, Error: msg}
}
