package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/app"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/embedded"
)

// parseFlags 读取环境变量配置，命令行参数覆盖同名配置
func parseFlags(args []string) (config.AppConfig, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return config.AppConfig{}, err
	}

	fs := flag.NewFlagSet("nutriquest", flag.ContinueOnError)
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "显示详细日志")
	fs.StringVar(&cfg.Player, "player", cfg.Player, "玩家ID（为空时使用上次的玩家或新建）")
	fs.StringVar(&cfg.SaveBackend, "backend", cfg.SaveBackend, "存档后端: gdata, sqlite, memory")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite 后端的数据库文件")
	fs.StringVar(&cfg.LocationPolicy, "location-policy", cfg.LocationPolicy, "进入建筑步骤的地点匹配: lenient, strict")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "界面语言，如 en, pt-BR")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "覆盖内置教学目录的YAML文件")
	if err := fs.Parse(args); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, cfg.Validate()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run 启动游戏并返回进程退出码
// 存档后端在返回前关闭
func run(args []string) int {
	cfg, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		return 2
	}

	embedded.Init(dataFS)

	appConfig, backend, err := app.Bootstrap(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "关闭存档后端失败: %v\n", err)
		}
	}()

	gameApp, err := app.NewApp(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		return 1
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("NutriQuest")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if appConfig.Settings != nil && appConfig.Settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	runErr := ebiten.RunGame(gameApp)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gameApp.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "保存存档失败: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", runErr)
		return 1
	}
	return 0
}
