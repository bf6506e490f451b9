package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/entities"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/systems"
	"github.com/decker502/nutriquest/pkg/utils"
)

// saveTimeout 退出时保存存档的超时
const saveTimeout = 5 * time.Second

// TownSceneOptions 小镇场景的可选依赖
type TownSceneOptions struct {
	Settings *game.SettingsManager // 可为 nil，此时不记录镜头缩放
	Strings  *game.TutorialStrings // 可为 nil，此时使用目录原文
	Input    systems.InputSource   // 为 nil 时使用 utils.EbitenInput
}

// TownScene 小镇场景
//
// 玩家在小镇里走动，进入市场、厨房和花园，新手引导弹窗显示在左下角。
// 所有游戏事件都通过会话的 EventSink 交给 tutorial.Store。
//
// 系统执行顺序：
//
//	键盘输入 → 教学弹窗（按钮点击）→ 移动 → 进入建筑 → 建筑操作 → 状态栏 → 镜头
type TownScene struct {
	session  *game.Session
	settings *game.SettingsManager

	entityManager *ecs.EntityManager
	playerID      ecs.EntityID

	playerInputSystem    *systems.PlayerInputSystem
	tutorialModalSystem  *systems.TutorialModalSystem
	movementSystem       *systems.MovementSystem
	buildingEntrySystem  *systems.BuildingEntrySystem
	buildingActionSystem *systems.BuildingActionSystem
	hudSystem            *systems.HUDSystem
	cameraSystem         *systems.CameraSystem

	worldRenderSystem *systems.WorldRenderSystem
	modalRenderSystem *systems.TutorialModalRenderSystem
}

// NewTownScene 为玩家会话创建小镇场景
//
// 参数：
//   - session: 已打开的玩家会话
//   - opts: 可选依赖
//
// 返回：
//   - *TownScene: 场景
//   - error: 字体加载或实体创建失败
func NewTownScene(session *game.Session, opts TownSceneOptions) (*TownScene, error) {
	if session == nil {
		return nil, fmt.Errorf("town scene requires a session")
	}

	input := opts.Input
	if input == nil {
		input = utils.NewEbitenInput()
	}

	fonts, err := systems.LoadFonts()
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	playerID := entities.NewPlayerEntity(em, config.PlayerStartX, config.PlayerStartY)
	if _, err := entities.NewTownBuildings(em); err != nil {
		return nil, fmt.Errorf("failed to create town: %w", err)
	}
	zoom := 1.0
	if opts.Settings != nil {
		zoom = opts.Settings.GetSettings().CameraZoom
	}
	entities.NewCameraEntity(em, config.PlayerStartX, config.PlayerStartY, zoom)
	entities.NewTutorialModalEntity(em)
	entities.NewHUDEntity(em)

	tutorialStore := session.Tutorial()
	wallet := session.Wallet()

	scene := &TownScene{
		session:       session,
		settings:      opts.Settings,
		entityManager: em,
		playerID:      playerID,

		playerInputSystem:    systems.NewPlayerInputSystem(em, input, tutorialStore),
		tutorialModalSystem:  systems.NewTutorialModalSystem(em, input, tutorialStore, opts.Strings),
		movementSystem:       systems.NewMovementSystem(em, session.Events(), systems.NewMovementLimiter()),
		buildingEntrySystem:  systems.NewBuildingEntrySystem(em, session.Events()),
		buildingActionSystem: systems.NewBuildingActionSystem(em, input, session.Events(), wallet, opts.Strings),
		hudSystem:            systems.NewHUDSystem(em, wallet, tutorialStore, opts.Strings),
		cameraSystem:         systems.NewCameraSystem(em, input),

		worldRenderSystem: systems.NewWorldRenderSystem(em, fonts),
		modalRenderSystem: systems.NewTutorialModalRenderSystem(em, fonts),
	}

	log.Printf("[TownScene] Created for player %s (tutorial=%s, coins=%d)",
		session.PlayerID(), tutorialStore.State(), wallet.Balance())
	return scene, nil
}

// Update 按固定顺序执行所有系统
func (s *TownScene) Update(deltaTime float64) {
	s.playerInputSystem.Update(deltaTime)
	s.tutorialModalSystem.Update(deltaTime)
	s.movementSystem.Update(deltaTime)
	s.buildingEntrySystem.Update(deltaTime)
	s.buildingActionSystem.Update(deltaTime)
	s.hudSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Draw 先画小镇，再画弹窗和状态栏
func (s *TownScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 32, B: 24, A: 255})
	s.worldRenderSystem.Draw(screen)
	s.modalRenderSystem.Draw(screen)
}

// SaveOnExit 保存玩家存档和镜头缩放
//
// 返回：
//   - bool: 存档是否保存成功（设置保存失败只记录日志）
func (s *TownScene) SaveOnExit() bool {
	if s.settings != nil {
		if cam, ok := s.cameraSystem.Camera(); ok {
			s.settings.SetCameraZoom(cam.Zoom)
		}
		if err := s.settings.Save(); err != nil {
			log.Printf("[TownScene] Warning: failed to save settings: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.session.Save(ctx); err != nil {
		log.Printf("[TownScene] Failed to save player %s: %v", s.session.PlayerID(), err)
		return false
	}
	log.Printf("[TownScene] Saved player %s", s.session.PlayerID())
	return true
}

// Session 返回场景所属的玩家会话
func (s *TownScene) Session() *game.Session {
	return s.session
}

// EntityManager 返回场景的实体管理器
func (s *TownScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
