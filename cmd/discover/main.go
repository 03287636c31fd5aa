package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v4/stdlib"

	"StreamerSync/internal/config"
	"StreamerSync/internal/model"
	"StreamerSync/internal/platform/chzzk"
	"StreamerSync/internal/platform/twitch"
	"StreamerSync/internal/platform/youtube"
	"StreamerSync/internal/repository"
	"StreamerSync/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// app 一次性采集任务的命令行入口，与 server 共用配置与仓储
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *logrus.Logger
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)

	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("连接PostgreSQL失败: %w", err)
	}
	return &app{cfg: cfg, db: db, logger: logrusLogger}, nil
}

func splitFlag(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	cliApp := &cli.App{
		Name:  "discover",
		Usage: "韩语游戏主播采集任务",
		Commands: []*cli.Command{
			{
				Name:  "youtube",
				Usage: "按分类关键词搜索 YouTube 频道并入库",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "game", Usage: "只处理指定分类，逗号分隔"},
					&cli.StringFlag{Name: "keywords", Usage: "覆盖检索词，逗号分隔"},
					&cli.BoolFlag{Name: "skip-mapping", Usage: "只写主播不建分类映射"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					youtubeCfg := a.cfg.Platforms["youtube"]
					svc := service.NewYoutubeDiscoverService(
						youtube.NewClient(&youtubeCfg, a.logger),
						repository.NewYoutubeRepository(a.db),
						&a.cfg.Discovery, a.logger)
					_, err = svc.Run(c.Context, service.YoutubeDiscoverOptions{
						Games:       splitFlag(c.String("game")),
						Keywords:    splitFlag(c.String("keywords")),
						SkipMapping: c.Bool("skip-mapping"),
					})
					return err
				},
			},
			{
				Name:  "twitch",
				Usage: "从 Twitch 在播流采集主播",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "game", Usage: "只扫指定游戏（Twitch 游戏 ID 或 롤/발로란트 等常用名）"},
					&cli.BoolFlag{Name: "all-games", Usage: "不限游戏，按语言扫全站在播流"},
					&cli.IntFlag{Name: "top", Usage: "热门游戏数量（默认取配置）"},
					&cli.StringFlag{Name: "language", Usage: "直播语言过滤（默认 ko）"},
					&cli.IntFlag{Name: "limit", Usage: "单批主播数量上限"},
					&cli.BoolFlag{Name: "skip-mapping", Usage: "只写主播不建分类映射"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					gameID := c.String("game")
					if mapped, ok := model.GameTypeToTwitchGameID[gameID]; ok {
						gameID = mapped
					}
					twitchCfg := a.cfg.Platforms["twitch"]
					svc := service.NewTwitchDiscoverService(
						twitch.NewClient(&twitchCfg, a.logger),
						repository.NewTwitchRepository(a.db),
						&a.cfg.Discovery, a.logger)
					_, err = svc.Run(c.Context, service.TwitchDiscoverOptions{
						GameID:      gameID,
						AllGames:    c.Bool("all-games"),
						Top:         c.Int("top"),
						Language:    c.String("language"),
						Limit:       c.Int("limit"),
						SkipMapping: c.Bool("skip-mapping"),
					})
					return err
				},
			},
			{
				Name:  "chzzk",
				Usage: "从 Chzzk 在播列表采集主播",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "单批主播数量上限"},
					&cli.BoolFlag{Name: "skip-mapping", Usage: "只写主播不建分类映射"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					chzzkCfg := a.cfg.Platforms["chzzk"]
					svc := service.NewChzzkDiscoverService(
						chzzk.NewClient(&chzzkCfg, a.logger),
						repository.NewChzzkRepository(a.db),
						&a.cfg.Discovery, a.logger)
					_, err = svc.Run(c.Context, service.ChzzkDiscoverOptions{
						Limit:       c.Int("limit"),
						SkipMapping: c.Bool("skip-mapping"),
					})
					return err
				},
			},
			{
				Name:  "youtube-update",
				Usage: "批量刷新存量 YouTube 主播信息（最久未更新的优先）",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "处理的主播数量上限"},
					&cli.StringFlag{Name: "category", Usage: "只刷指定分类下的主播，逗号分隔"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					youtubeCfg := a.cfg.Platforms["youtube"]
					svc := service.NewYoutubeUpdateService(
						youtube.NewClient(&youtubeCfg, a.logger),
						repository.NewYoutubeRepository(a.db),
						&a.cfg.Discovery, a.logger)
					_, err = svc.Run(c.Context, service.YoutubeUpdateOptions{
						Categories: splitFlag(c.String("category")),
						Limit:      c.Int("limit"),
					})
					return err
				},
			},
			{
				Name:  "youtube-maintain",
				Usage: "YouTube 主播库维护：停更降活跃 / 复播回活跃",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "check-inactive-only", Usage: "只跑停更检查"},
					&cli.BoolFlag{Name: "check-reactive-only", Usage: "只跑复播检查"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					youtubeCfg := a.cfg.Platforms["youtube"]
					svc := service.NewYoutubeMaintenanceService(
						youtube.NewClient(&youtubeCfg, a.logger),
						repository.NewYoutubeRepository(a.db),
						&a.cfg.Discovery, a.logger)
					if !c.Bool("check-reactive-only") {
						if _, err := svc.CheckInactive(c.Context); err != nil {
							return err
						}
					}
					if !c.Bool("check-inactive-only") {
						if _, err := svc.CheckReactive(c.Context); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "link-keywords",
				Usage: "旧版关键词管线：搜索入库 + 关键词映射",
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					youtubeCfg := a.cfg.Platforms["youtube"]
					svc := service.NewKeywordLinkService(
						youtube.NewClient(&youtubeCfg, a.logger),
						repository.NewKeywordRepository(a.db),
						&a.cfg.Discovery, a.logger)
					_, err = svc.Run(c.Context)
					return err
				},
			},
			{
				Name:  "truncate",
				Usage: "清空指定平台的三张表（映射 → 主播 → 分类）",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "platform", Required: true, Usage: "youtube/twitch/chzzk"},
				},
				Action: func(c *cli.Context) error {
					a, err := newApp()
					if err != nil {
						return err
					}
					switch platform := c.String("platform"); platform {
					case "youtube":
						return repository.NewYoutubeRepository(a.db).TruncateTables(c.Context)
					case "twitch":
						return repository.NewTwitchRepository(a.db).TruncateTables(c.Context)
					case "chzzk":
						return repository.NewChzzkRepository(a.db).TruncateTables(c.Context)
					default:
						return fmt.Errorf("未知平台: %s", platform)
					}
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
