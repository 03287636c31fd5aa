package model

import (
	"time"

	"gorm.io/datatypes"
)

// ========== 每个平台一组同构三表：主播表 + 游戏分类表 + 映射表 ==========
// 主键统一用 uuid 代理键，平台原生 ID 建唯一索引，upsert 以原生 ID 为冲突键。

type YoutubeStreamer struct {
	ID               string     `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	YoutubeChannelID string     `gorm:"column:youtube_channel_id;type:varchar(64);uniqueIndex;not null;comment:YouTube频道ID"`
	Name             string     `gorm:"column:name;type:varchar(128);not null;comment:频道名"`
	Description      string     `gorm:"column:description;type:text;comment:频道简介"`
	ProfileImageURL  string     `gorm:"column:profile_image_url;type:varchar(512);comment:头像URL"`
	ChannelURL       string     `gorm:"column:channel_url;type:varchar(256);comment:频道URL"`
	FeaturedVideoID  string     `gorm:"column:featured_video_id;type:varchar(32);comment:代表视频ID（无频道预告片时取最新视频）"`
	Subscribers      int64      `gorm:"column:subscribers;type:bigint;default:0;comment:订阅数"`
	LatestUploadedAt *time.Time `gorm:"column:latest_uploaded_at;type:timestamp;comment:最近上传时间"`
	IsActive         bool       `gorm:"column:is_active;type:boolean;default:true;comment:是否活跃"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type YoutubeGameCategory struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	Name        string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:规范化名称"`
	DisplayName string    `gorm:"column:display_name;type:varchar(64);not null;comment:展示名称"`
	SortOrder   int       `gorm:"column:sort_order;type:int;default:0;comment:排序权重"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

type YoutubeStreamerCategory struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	StreamerID string `gorm:"column:streamer_id;type:uuid;not null;uniqueIndex:uk_yt_streamer_category;comment:主播ID"`
	CategoryID string `gorm:"column:category_id;type:uuid;not null;uniqueIndex:uk_yt_streamer_category;comment:分类ID"`
}

type TwitchStreamer struct {
	ID              string     `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	TwitchID        string     `gorm:"column:twitch_id;type:varchar(64);uniqueIndex;not null;comment:Twitch用户ID"`
	LoginName       string     `gorm:"column:login_name;type:varchar(64);not null;comment:登录名"`
	DisplayName     string     `gorm:"column:display_name;type:varchar(128);not null;comment:展示名"`
	Description     string     `gorm:"column:description;type:text;comment:简介"`
	ProfileImageURL string     `gorm:"column:profile_image_url;type:varchar(512);comment:头像URL"`
	ChannelURL      string     `gorm:"column:channel_url;type:varchar(256);comment:频道URL"`
	ViewerCount     *int       `gorm:"column:viewer_count;type:int;comment:当前观众数（未开播为空）"`
	StartedAt       *time.Time `gorm:"column:started_at;type:timestamp;comment:开播时间"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type TwitchGameCategory struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	TwitchGameID string    `gorm:"column:twitch_game_id;type:varchar(64);uniqueIndex;not null;comment:Twitch游戏ID"`
	Name         string    `gorm:"column:name;type:varchar(128);not null;comment:规范化名称"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(128);not null;comment:展示名称"`
	BoxArtURL    string    `gorm:"column:box_art_url;type:varchar(512);comment:封面图URL"`
	SortOrder    int       `gorm:"column:sort_order;type:int;default:0;comment:排序权重"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

type TwitchStreamerCategory struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	StreamerID string `gorm:"column:streamer_id;type:uuid;not null;uniqueIndex:uk_tw_streamer_category;comment:主播ID"`
	CategoryID string `gorm:"column:category_id;type:uuid;not null;uniqueIndex:uk_tw_streamer_category;comment:分类ID"`
}

type ChzzkStreamer struct {
	ID              string         `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	ChzzkID         string         `gorm:"column:chzzk_id;type:varchar(64);uniqueIndex;not null;comment:Chzzk频道ID"`
	LoginName       string         `gorm:"column:login_name;type:varchar(128);not null;comment:登录名"`
	DisplayName     string         `gorm:"column:display_name;type:varchar(128);not null;comment:展示名"`
	Description     string         `gorm:"column:description;type:text;comment:简介"`
	ProfileImageURL string         `gorm:"column:profile_image_url;type:varchar(512);comment:头像URL"`
	ChannelURL      string         `gorm:"column:channel_url;type:varchar(256);comment:频道URL"`
	ViewerCount     *int           `gorm:"column:viewer_count;type:int;comment:当前观众数"`
	StartedAt       *time.Time     `gorm:"column:started_at;type:timestamp;comment:开播时间"`
	Tags            datatypes.JSON `gorm:"column:tags;type:jsonb;comment:直播标签"`
	CreatedAt       time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type ChzzkGameCategory struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	ChzzkGameID string    `gorm:"column:chzzk_game_id;type:varchar(128);uniqueIndex;not null;comment:Chzzk分类ID"`
	Name        string    `gorm:"column:name;type:varchar(128);not null;comment:规范化名称"`
	DisplayName string    `gorm:"column:display_name;type:varchar(128);not null;comment:展示名称"`
	SortOrder   int       `gorm:"column:sort_order;type:int;default:0;comment:排序权重"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

type ChzzkStreamerCategory struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	StreamerID string `gorm:"column:streamer_id;type:uuid;not null;uniqueIndex:uk_cz_streamer_category;comment:主播ID"`
	CategoryID string `gorm:"column:category_id;type:uuid;not null;uniqueIndex:uk_cz_streamer_category;comment:分类ID"`
}

// ========== 旧版扁平模型（关键词管线仍在用） ==========

type Streamer struct {
	ID               string     `gorm:"column:id;type:varchar(64);primaryKey;comment:平台原生ID直接做主键（旧表结构）"`
	Name             string     `gorm:"column:name;type:varchar(128);not null;comment:频道名"`
	Description      string     `gorm:"column:description;type:text;comment:简介"`
	Platform         string     `gorm:"column:platform;type:varchar(16);not null;comment:平台标识：youtube/twitch/chzzk"`
	Gender           string     `gorm:"column:gender;type:varchar(16);default:unknown;comment:性别（未知）"`
	ProfileImageURL  string     `gorm:"column:profile_image_url;type:varchar(512);comment:头像URL"`
	ChannelURL       string     `gorm:"column:channel_url;type:varchar(256);comment:频道URL"`
	Subscribers      int64      `gorm:"column:subscribers;type:bigint;default:0;comment:订阅数"`
	GameType         string     `gorm:"column:game_type;type:varchar(32);comment:游戏类型"`
	LatestUploadedAt *time.Time `gorm:"column:latest_uploaded_at;type:timestamp;comment:最近上传时间"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// StreamerPlatform 旧版主播的平台账号明细（一个主播可挂多个平台账号）
type StreamerPlatform struct {
	ID               string     `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	StreamerID       string     `gorm:"column:streamer_id;type:varchar(64);not null;uniqueIndex:uk_streamer_platform;comment:主播ID"`
	Platform         string     `gorm:"column:platform;type:varchar(16);not null;uniqueIndex:uk_streamer_platform;comment:平台标识"`
	PlatformID       string     `gorm:"column:platform_id;type:varchar(64);not null;comment:平台原生ID"`
	ChannelURL       string     `gorm:"column:channel_url;type:varchar(256);comment:频道URL"`
	ProfileImageURL  string     `gorm:"column:profile_image_url;type:varchar(512);comment:头像URL"`
	Subscribers      int64      `gorm:"column:subscribers;type:bigint;default:0;comment:订阅数"`
	LatestUploadedAt *time.Time `gorm:"column:latest_uploaded_at;type:timestamp;comment:最近上传时间"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type Keyword struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:关键词"`
	Type      string    `gorm:"column:type;type:varchar(32);not null;comment:类型判别：game_title 等"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

type StreamerKeyword struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	StreamerID string `gorm:"column:streamer_id;type:varchar(64);not null;uniqueIndex:uk_streamer_keyword;comment:主播ID"`
	KeywordID  string `gorm:"column:keyword_id;type:uuid;not null;uniqueIndex:uk_streamer_keyword;comment:关键词ID"`
}

// Notice 公告（前端只读）
type Notice struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey;comment:代理主键"`
	Title     string    `gorm:"column:title;type:varchar(256);not null;comment:标题"`
	Content   string    `gorm:"column:content;type:text;comment:正文"`
	Important bool      `gorm:"column:important;type:boolean;default:false;comment:是否置顶"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (YoutubeStreamer) TableName() string         { return "youtube_streamers" }
func (YoutubeGameCategory) TableName() string     { return "youtube_game_categories" }
func (YoutubeStreamerCategory) TableName() string { return "youtube_streamer_categories" }
func (TwitchStreamer) TableName() string          { return "twitch_streamers" }
func (TwitchGameCategory) TableName() string      { return "twitch_game_categories" }
func (TwitchStreamerCategory) TableName() string  { return "twitch_streamer_categories" }
func (ChzzkStreamer) TableName() string           { return "chzzk_streamers" }
func (ChzzkGameCategory) TableName() string       { return "chzzk_game_categories" }
func (ChzzkStreamerCategory) TableName() string   { return "chzzk_streamer_categories" }
func (Streamer) TableName() string                { return "streamers" }
func (StreamerPlatform) TableName() string        { return "streamer_platforms" }
func (Keyword) TableName() string                 { return "keywords" }
func (StreamerKeyword) TableName() string         { return "streamer_keywords" }
func (Notice) TableName() string                  { return "notices" }
