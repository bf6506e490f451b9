package systems

import (
	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// HUDSystem 同步状态栏：金币、暂停提示、操作消息计时
type HUDSystem struct {
	entityManager *ecs.EntityManager
	purse         Purse
	tutorial      TutorialController
	strings       *game.TutorialStrings

	lastCoins int
	labelled  bool
}

// NewHUDSystem 创建状态栏系统
func NewHUDSystem(em *ecs.EntityManager, purse Purse, tc TutorialController, ts *game.TutorialStrings) *HUDSystem {
	return &HUDSystem{
		entityManager: em,
		purse:         purse,
		tutorial:      tc,
		strings:       ts,
	}
}

// Update 每帧同步
func (s *HUDSystem) Update(deltaTime float64) {
	_, hud, ok := firstComponent[*components.HUDComponent](s.entityManager)
	if !ok {
		return
	}

	if s.purse != nil {
		hud.Coins = s.purse.Balance()
	}
	// 金币变化时才重新格式化
	if !s.labelled || hud.Coins != s.lastCoins {
		hud.CoinsLabel = s.strings.CoinsLabel(hud.Coins)
		s.lastCoins = hud.Coins
		s.labelled = true
	}

	hud.Paused = s.tutorial.State() == tutorial.StatePaused
	if hud.Paused && hud.PausedLabel == "" {
		hud.PausedLabel = s.strings.Text(game.KeyHUDPaused, "Tutorial paused (Esc to resume)")
	}

	if hud.MessageTimer > 0 {
		hud.MessageTimer -= deltaTime
		if hud.MessageTimer <= 0 {
			hud.MessageTimer = 0
			hud.Message = ""
		}
	}
}
