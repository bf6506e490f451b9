package systems

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// PlayerInputSystem 处理键盘输入
//
// 职责：
//   - WASD / 方向键设置玩家速度
//   - Enter / N 上报 next_button（"下一步"按钮的键盘快捷方式）
//   - Tab 切换教学弹窗
//   - Esc 暂停/恢复教学
type PlayerInputSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
	tutorial      TutorialController
}

// NewPlayerInputSystem 创建键盘输入系统
func NewPlayerInputSystem(em *ecs.EntityManager, input InputSource, tc TutorialController) *PlayerInputSystem {
	return &PlayerInputSystem{
		entityManager: em,
		input:         input,
		tutorial:      tc,
	}
}

// Update 读取本帧输入
func (s *PlayerInputSystem) Update(deltaTime float64) {
	if s.input.IsKeyJustPressed(ebiten.KeyEscape) {
		if s.tutorial.State() == tutorial.StatePaused {
			s.tutorial.Resume()
		} else if s.tutorial.Pause() {
			log.Printf("[PlayerInputSystem] Tutorial paused (Esc)")
		}
	}

	if s.input.IsKeyJustPressed(ebiten.KeyTab) {
		s.tutorial.ToggleModal()
	}

	if s.input.IsKeyJustPressed(ebiten.KeyEnter) || s.input.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
		s.input.IsKeyJustPressed(ebiten.KeyN) {
		s.tutorial.Trigger(tutorial.EventNextButton)
	}

	s.updateVelocity()
}

func (s *PlayerInputSystem) updateVelocity() {
	dx, dy := 0.0, 0.0
	if s.input.IsKeyPressed(ebiten.KeyW) || s.input.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if s.input.IsKeyPressed(ebiten.KeyS) || s.input.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	if s.input.IsKeyPressed(ebiten.KeyA) || s.input.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if s.input.IsKeyPressed(ebiten.KeyD) || s.input.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}

	// 斜向移动保持同样的速度
	if dx != 0 && dy != 0 {
		dx /= math.Sqrt2
		dy /= math.Sqrt2
	}

	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		vel.VX = dx * player.Speed
		vel.VY = dy * player.Speed
	}
}
