package model

// ChzzkChannel 直播列表里内嵌的频道信息
type ChzzkChannel struct {
	ChannelID       string `json:"channelId"`
	ChannelName     string `json:"channelName"`
	ChannelImageURL string `json:"channelImageUrl"`
	VerifiedMark    bool   `json:"verifiedMark"`
}

// ChzzkLive /service/v1/lives 返回的单条直播
type ChzzkLive struct {
	LiveID                   int64        `json:"liveId"`
	LiveTitle                string       `json:"liveTitle"`
	LiveImageURL             string       `json:"liveImageUrl"`
	DefaultThumbnailImageURL string       `json:"defaultThumbnailImageUrl"`
	ConcurrentUserCount      int          `json:"concurrentUserCount"`
	AccumulateCount          int          `json:"accumulateCount"`
	OpenDate                 string       `json:"openDate"`
	Adult                    bool         `json:"adult"`
	Tags                     []string     `json:"tags"`
	CategoryType             string       `json:"categoryType"`
	LiveCategory             string       `json:"liveCategory"`
	LiveCategoryValue        string       `json:"liveCategoryValue"`
	Channel                  ChzzkChannel `json:"channel"`
}

// ChzzkLiveCursor 复合分页游标：观众数 + liveId
type ChzzkLiveCursor struct {
	ConcurrentUserCount int   `json:"concurrentUserCount"`
	LiveID              int64 `json:"liveId"`
}

// ChzzkLivesContent /service/v1/lives 的 content 字段
type ChzzkLivesContent struct {
	Size int `json:"size"`
	Page struct {
		Next *ChzzkLiveCursor `json:"next"`
	} `json:"page"`
	Data []ChzzkLive `json:"data"`
}

// ChzzkLiveDetail /service/v1/channels/{id}/live-detail 的 content 字段，
// 未开播时整个 content 为 null
type ChzzkLiveDetail struct {
	Status              string `json:"status"` // OPEN/CLOSE
	LiveTitle           string `json:"liveTitle"`
	ConcurrentUserCount int    `json:"concurrentUserCount"`
	OpenDate            string `json:"openDate"`
	LiveCategory        struct {
		CategoryName string `json:"categoryName"`
	} `json:"liveCategory"`
	Thumbnail struct {
		ThumbnailImageURL string `json:"thumbnailImageUrl"`
	} `json:"thumbnail"`
}

// ChzzkResponse Chzzk API 统一的 code/message/content 外壳
type ChzzkResponse[T any] struct {
	Code    int     `json:"code"`
	Message *string `json:"message"`
	Content *T      `json:"content"`
}
