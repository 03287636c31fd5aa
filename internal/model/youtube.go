package model

// YoutubeThumbnails 各档缩略图（接口可能只回部分档位）
type YoutubeThumbnails struct {
	Default *YoutubeThumbnail `json:"default"`
	Medium  *YoutubeThumbnail `json:"medium"`
	High    *YoutubeThumbnail `json:"high"`
}

type YoutubeThumbnail struct {
	URL string `json:"url"`
}

// BestURL 按 high > medium > default 取最清晰的一档
func (t YoutubeThumbnails) BestURL() string {
	switch {
	case t.High != nil && t.High.URL != "":
		return t.High.URL
	case t.Medium != nil && t.Medium.URL != "":
		return t.Medium.URL
	case t.Default != nil:
		return t.Default.URL
	default:
		return ""
	}
}

// YoutubeSearchItem /search 返回的频道条目
type YoutubeSearchItem struct {
	ID struct {
		Kind      string `json:"kind"`
		ChannelID string `json:"channelId"`
	} `json:"id"`
	Snippet YoutubeSnippet `json:"snippet"`
}

type YoutubeSnippet struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PublishedAt string            `json:"publishedAt"`
	Thumbnails  YoutubeThumbnails `json:"thumbnails"`
	ResourceID  struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
	CategoryID string `json:"categoryId"`
}

// YoutubeChannel /channels 返回的频道详情
type YoutubeChannel struct {
	ID         string         `json:"id"`
	Snippet    YoutubeSnippet `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		VideoCount            string `json:"videoCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
	BrandingSettings struct {
		Channel struct {
			UnsubscribedTrailer string `json:"unsubscribedTrailer"`
		} `json:"channel"`
	} `json:"brandingSettings"`
}

// YoutubePlaylistItem /playlistItems 返回的视频条目
type YoutubePlaylistItem struct {
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
	Snippet YoutubeSnippet `json:"snippet"`
}

// YoutubeVideo /videos 返回的视频详情（只用 categoryId）
type YoutubeVideo struct {
	ID      string         `json:"id"`
	Snippet YoutubeSnippet `json:"snippet"`
}

// YoutubeListResponse YouTube Data API 统一的 list 响应外壳
type YoutubeListResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults   int `json:"totalResults"`
		ResultsPerPage int `json:"resultsPerPage"`
	} `json:"pageInfo"`
}
