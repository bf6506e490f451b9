// Package systems 包含小镇场景的各个系统
//
// 系统是教学核心的外部协作者：移动、进入建筑、市场/厨房/花园操作和"下一步"按钮
// 都通过 TutorialController 上报事件，教学是否推进由 tutorial.Store 决定。
package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// InputSource 系统读取输入的接口
// 运行时由 utils.EbitenInput 实现，测试中使用假输入
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	Wheel() (float64, float64)
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
}

// TutorialController 系统对教学状态的访问
// *tutorial.Store 实现了该接口
type TutorialController interface {
	game.EventSink
	ToggleModal()
	Pause() bool
	Resume() bool
	State() tutorial.State
	Snapshot() tutorial.RunState
}

var _ TutorialController = (*tutorial.Store)(nil)

// Purse 玩家钱包
type Purse interface {
	Balance() int
	Spend(amount int) bool
}

// firstComponent 返回拥有组件 T 的第一个实体上的组件
func firstComponent[T any](em *ecs.EntityManager) (ecs.EntityID, T, bool) {
	var zero T
	ids := ecs.GetEntitiesWith1[T](em)
	if len(ids) == 0 {
		return 0, zero, false
	}
	comp, ok := ecs.GetComponent[T](em, ids[0])
	return ids[0], comp, ok
}

// findPlayer 返回玩家实体的组件
func findPlayer(em *ecs.EntityManager) (*components.PlayerComponent, *components.PositionComponent, bool) {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em)
	if len(ids) == 0 {
		return nil, nil, false
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, ids[0])
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
	return player, pos, true
}

func pointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
