package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/twitch"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTwitchRepo 内存版 TwitchRepository
type fakeTwitchRepo struct {
	existing   map[string]bool
	streamers  map[string]*model.TwitchStreamer
	categories map[string]string
	links      map[string]bool
}

func newFakeTwitchRepo() *fakeTwitchRepo {
	return &fakeTwitchRepo{
		existing:   make(map[string]bool),
		streamers:  make(map[string]*model.TwitchStreamer),
		categories: make(map[string]string),
		links:      make(map[string]bool),
	}
}

func (f *fakeTwitchRepo) ExistingTwitchIDs(context.Context) (map[string]bool, error) {
	seeds := make(map[string]bool, len(f.existing))
	for id := range f.existing {
		seeds[id] = true
	}
	return seeds, nil
}

func (f *fakeTwitchRepo) UpsertStreamer(_ context.Context, s *model.TwitchStreamer) (string, error) {
	if s.ID == "" {
		s.ID = "uuid-" + s.TwitchID
	}
	f.streamers[s.TwitchID] = s
	return s.ID, nil
}

func (f *fakeTwitchRepo) GetOrCreateCategory(_ context.Context, game model.TwitchGame) (string, error) {
	if id, ok := f.categories[game.ID]; ok {
		return id, nil
	}
	id := "cat-" + game.ID
	f.categories[game.ID] = id
	return id, nil
}

func (f *fakeTwitchRepo) LinkStreamerCategory(_ context.Context, streamerID, categoryID string) (bool, error) {
	key := streamerID + "/" + categoryID
	if f.links[key] {
		return false, nil
	}
	f.links[key] = true
	return true, nil
}

func (f *fakeTwitchRepo) ListCategories(context.Context) ([]*model.TwitchGameCategory, error) {
	return nil, nil
}

func (f *fakeTwitchRepo) ListStreamers(context.Context, string, int, int) ([]*model.TwitchStreamer, int64, error) {
	return nil, 0, nil
}

func (f *fakeTwitchRepo) TruncateTables(context.Context) error { return nil }

func newTwitchDiscoverFixture(t *testing.T) (*TwitchDiscoverService, *fakeTwitchRepo, func()) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/games/top", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data":       []map[string]string{{"id": "21779", "name": "League of Legends", "box_art_url": "https://img/lol.jpg"}},
			"pagination": map[string]string{},
		})
	})
	mux.HandleFunc("/streams", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ko", r.URL.Query().Get("language"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"user_id": "100", "user_login": "known", "game_id": "21779", "viewer_count": 900, "started_at": "2024-06-01T10:00:00Z"},
				{"user_id": "200", "user_login": "fresh", "game_id": "21779", "viewer_count": 500, "started_at": "2024-06-01T11:00:00Z"},
			},
			"pagination": map[string]string{},
		})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, []string{"100", "200"}, r.URL.Query()["id"], "老主播也要查详情刷新")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{
					"id": "100", "login": "known", "display_name": "Known",
					"description": "한국어 방송", "profile_image_url": "https://img/known.jpg",
				},
				{
					"id": "200", "login": "fresh", "display_name": "Fresh",
					"description": "한국어 방송", "profile_image_url": "https://img/fresh.jpg",
				},
			},
			"pagination": map[string]string{},
		})
	})
	server := httptest.NewServer(mux)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := twitch.NewClient(&config.PlatformConfig{
		BaseURL:      server.URL,
		AuthURL:      server.URL + "/oauth2/token",
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      5,
	}, logger)

	repo := newFakeTwitchRepo()
	repo.existing["100"] = true
	cfg := &config.DiscoveryConfig{Language: "ko", TopGames: 5, StreamerLimit: 100}
	return NewTwitchDiscoverService(client, repo, cfg, logger), repo, server.Close
}

func TestTwitchDiscoverRun(t *testing.T) {
	svc, repo, closeFn := newTwitchDiscoverFixture(t)
	defer closeFn()

	result, err := svc.Run(context.Background(), TwitchDiscoverOptions{Top: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Searches)
	assert.Equal(t, 2, result.Discovered)
	assert.Equal(t, 1, result.NewStreamers, "老主播不计入新增")
	assert.Equal(t, 2, result.Mappings)

	s := repo.streamers["200"]
	require.NotNil(t, s)
	assert.Equal(t, "fresh", s.LoginName)
	assert.Equal(t, "https://www.twitch.tv/fresh", s.ChannelURL)
	require.NotNil(t, s.ViewerCount)
	assert.Equal(t, 500, *s.ViewerCount)
	require.NotNil(t, s.StartedAt)

	assert.Contains(t, repo.categories, "21779")
}

// 已入库且正在播的主播同样要 upsert，刷新 viewer_count/started_at
func TestTwitchDiscoverRefreshesExistingStreamer(t *testing.T) {
	svc, repo, closeFn := newTwitchDiscoverFixture(t)
	defer closeFn()

	result, err := svc.Run(context.Background(), TwitchDiscoverOptions{Top: 1})
	require.NoError(t, err)

	s := repo.streamers["100"]
	require.NotNil(t, s, "老主播也应被写入")
	assert.Equal(t, "known", s.LoginName)
	require.NotNil(t, s.ViewerCount)
	assert.Equal(t, 900, *s.ViewerCount)
	require.NotNil(t, s.StartedAt)
	assert.Equal(t, 1, result.NewStreamers)
}

func TestTwitchDiscoverSkipMapping(t *testing.T) {
	svc, repo, closeFn := newTwitchDiscoverFixture(t)
	defer closeFn()

	result, err := svc.Run(context.Background(), TwitchDiscoverOptions{Top: 1, SkipMapping: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.NewStreamers)
	assert.Len(t, repo.streamers, 2)
	assert.Zero(t, result.Mappings)
	assert.Empty(t, repo.links)
	assert.Empty(t, repo.categories)
}
