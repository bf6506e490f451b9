// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/scenes"
	"github.com/decker502/nutriquest/pkg/tutorial"
	"github.com/decker502/nutriquest/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// PlayerID 要加载的玩家，为空时使用上次的玩家或新建
	PlayerID string
	// Store 存档后端
	Store game.ProgressStore
	// Settings 设备设置，可为 nil
	Settings *game.SettingsManager
	// Strings 界面文本，可为 nil（使用目录原文）
	Strings *game.TutorialStrings
	// Session 会话配置（教学目录、地点匹配策略等）
	Session game.SessionOptions
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	registry                 *game.Registry
	settings                 *game.SettingsManager
	playerID                 string
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// ConfigureLogging 非 verbose 模式下丢弃日志
func ConfigureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	ConfigureLogging(cfg.Verbose)

	if cfg.Store == nil {
		return nil, fmt.Errorf("progress store is required")
	}

	playerID := ResolvePlayerID(cfg.PlayerID, cfg.Store)
	log.Printf("[App] Player: %s (tutorial policy=%s)", playerID, cfg.Session.LocationPolicy)

	registry := game.NewRegistry(cfg.Store, cfg.Session)
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(id string) (game.Scene, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		session, err := registry.Open(ctx, id)
		if err != nil {
			return nil, err
		}
		return scenes.NewTownScene(session, scenes.TownSceneOptions{
			Settings: cfg.Settings,
			Strings:  cfg.Strings,
		})
	})

	if err := sceneManager.LoadPlayer(playerID); err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	return &App{
		sceneManager: sceneManager,
		registry:     registry,
		settings:     cfg.Settings,
		playerID:     playerID,
		verbose:      cfg.Verbose,
	}, nil
}

// ResolvePlayerID 决定要加载的玩家
//
// 优先级：显式指定 → 存档后端记住的上次玩家 → 新建玩家ID
func ResolvePlayerID(requested string, store game.ProgressStore) string {
	if requested != "" {
		return requested
	}
	if provider, ok := store.(game.LastPlayerProvider); ok {
		if last := provider.LastPlayer(); last != "" {
			log.Printf("[App] Resuming last player: %s", last)
			return last
		}
	}
	id := game.NewPlayerID()
	log.Printf("[App] No save found, creating new player %s", id)
	return id
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端没有窗口）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if a.settings != nil {
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 保存当前场景并关闭所有会话
// 窗口关闭或收到退出信号时调用
func (a *App) Shutdown(ctx context.Context) error {
	if !a.sceneManager.SaveCurrent() {
		log.Printf("[App] Warning: failed to save current scene")
	}
	return a.registry.CloseAll(ctx)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// PlayerID 返回当前玩家
func (a *App) PlayerID() string {
	return a.playerID
}

// Tutorial 返回当前玩家的教学状态
func (a *App) Tutorial() (*tutorial.Store, bool) {
	session, ok := a.registry.Get(a.playerID)
	if !ok {
		return nil, false
	}
	return session.Tutorial(), true
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
