package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"StreamerSync/internal/interfaces"
	"StreamerSync/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// LiveStatusService 直播状态查询的缓存壳。同一批 ID（排序后逗号拼接做键）
// 在 TTL 内直接回缓存，未命中时经 singleflight 收拢并发请求，上游只打一次。
type LiveStatusService struct {
	provider interfaces.LiveStatusProvider
	ttl      time.Duration
	logger   *logrus.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group

	nowFunc func() time.Time // 测试注入用
}

type cacheEntry struct {
	statuses map[string]model.StreamStatus
	storedAt time.Time
}

func NewLiveStatusService(provider interfaces.LiveStatusProvider, ttl time.Duration, logger *logrus.Logger) *LiveStatusService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LiveStatusService{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
		cache:    make(map[string]cacheEntry),
		nowFunc:  time.Now,
	}
}

// cacheKey 对 ID 排序后拼接，同一集合不同顺序命中同一条缓存
func cacheKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// GetStatuses 查询一批频道的直播状态，返回值第二个布尔表示是否命中缓存
func (s *LiveStatusService) GetStatuses(ctx context.Context, ids []string) (map[string]model.StreamStatus, bool, error) {
	key := cacheKey(ids)
	now := s.nowFunc()

	s.mu.Lock()
	entry, ok := s.cache[key]
	if ok && now.Sub(entry.storedAt) < s.ttl {
		s.mu.Unlock()
		s.logger.Debugf("LiveStatus: 缓存命中，%d 个频道", len(ids))
		return entry.statuses, true, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		statuses, err := s.provider.FetchLiveStatus(ctx, ids)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = cacheEntry{statuses: statuses, storedAt: s.nowFunc()}
		s.mu.Unlock()
		return statuses, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(map[string]model.StreamStatus), false, nil
}

// PurgeExpired 清掉过期条目，写入侧不主动淘汰，由 server 的后台任务周期调用
func (s *LiveStatusService) PurgeExpired() int {
	now := s.nowFunc()
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for key, entry := range s.cache {
		if now.Sub(entry.storedAt) >= s.ttl {
			delete(s.cache, key)
			purged++
		}
	}
	return purged
}
