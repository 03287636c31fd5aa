package model

// GameKeywords 各游戏分类的搜索关键词（YouTube 发掘用，韩语检索词）
var GameKeywords = map[string][]string{
	"롤":      {"롤 스트리머", "리그오브레전드 방송", "롤 유튜버"},
	"배틀그라운드": {"배그 스트리머", "배틀그라운드 방송", "PUBG 유튜버"},
	"발로란트":   {"발로란트 스트리머", "발로 유튜버", "발로란트 방송"},
	"마인크래프트": {"마크 스트리머", "마인크래프트 방송", "마크 유튜버"},
	"로스트아크":  {"로아 스트리머", "로스트아크 방송", "로아 유튜버"},
}

// DefaultKeywordPatterns DB 里新增而 GameKeywords 未覆盖的分类，按固定模板生成检索词
func DefaultKeywordPatterns(name, displayName string) []string {
	return []string{
		name + " 스트리머",
		name + " 방송",
		name + " 유튜버",
		displayName + " streamer",
	}
}

// GameTypeToKeyword 旧版关键词管线：game_type → 关键词名
var GameTypeToKeyword = map[string]string{
	"종겜":     "게임 방송",
	"롤":      "LOL",
	"피파":     "피파",
	"발로란트":   "발로란트",
	"배틀그라운드": "배틀그라운드",
	"오버워치":   "오버워치",
	"스타크래프트": "스타크래프트",
	"서든어택":   "서든어택",
	"GTA":    "GTA",
	"마인크래프트": "마인크래프트",
	"모바일게임":  "모바일게임",
	"디아블로":   "디아블로",
}

// GameTypeToTwitchGameID 常用游戏的 Twitch 游戏 ID
var GameTypeToTwitchGameID = map[string]string{
	"롤":      "21779",
	"배틀그라운드": "493057",
	"발로란트":   "516575",
	"마인크래프트": "27471",
	"로스트아크":  "102007682",
}

// KeywordTypeGameTitle keywords.type 的判别值
const KeywordTypeGameTitle = "game_title"
