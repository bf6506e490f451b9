package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 为指定玩家创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(playerID string) (Scene, error)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadPlayer to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// SaveCurrent 如果当前场景实现了 Saveable，则调用 SaveOnExit
//
// 返回：
//   - bool: 保存成功或无需保存时为 true
func (sm *SceneManager) SaveCurrent() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	return saveable.SaveOnExit()
}

// LoadPlayer 为指定玩家创建场景并切换过去
// 切换前会保存当前场景
func (sm *SceneManager) LoadPlayer(playerID string) error {
	log.Printf("[SceneManager] Loading player: %s", playerID)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory is not set")
	}

	newScene, err := sm.sceneFactory(playerID)
	if err != nil {
		return fmt.Errorf("failed to create scene for player %s: %w", playerID, err)
	}

	if !sm.SaveCurrent() {
		log.Printf("[SceneManager] Warning: failed to save previous scene")
	}
	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] Switched to player: %s", playerID)
	return nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
