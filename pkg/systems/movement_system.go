package systems

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// MovementSystem 移动玩家并上报 movement 事件
//
// 位置每帧都会更新，但 movement 事件经过限流：持续行走时
// 每 config.MovementEventInterval 秒至多上报一次。
// 限流器按游戏时间而不是墙上时间计时，暂停窗口或掉帧不会影响节奏。
type MovementSystem struct {
	entityManager *ecs.EntityManager
	events        game.EventSink
	limiter       *rate.Limiter
	clock         time.Time
}

// NewMovementLimiter 返回默认的 movement 事件限流器
func NewMovementLimiter() *rate.Limiter {
	interval := time.Duration(config.MovementEventInterval * float64(time.Second))
	return rate.NewLimiter(rate.Every(interval), 1)
}

// NewMovementSystem 创建移动系统
//
// 参数：
//   - em: 实体管理器
//   - events: 事件上报目标
//   - limiter: 事件限流器，nil 时使用 NewMovementLimiter
func NewMovementSystem(em *ecs.EntityManager, events game.EventSink, limiter *rate.Limiter) *MovementSystem {
	if limiter == nil {
		limiter = NewMovementLimiter()
	}
	return &MovementSystem{
		entityManager: em,
		events:        events,
		limiter:       limiter,
		clock:         time.Unix(0, 0),
	}
}

// Update 积分速度、限制在世界范围内，发生位移时上报事件
func (s *MovementSystem) Update(deltaTime float64) {
	s.clock = s.clock.Add(time.Duration(deltaTime * float64(time.Second)))

	ids := ecs.GetEntitiesWith3[*components.PlayerComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if !vel.IsMoving() {
			continue
		}

		x, y := config.ClampToWorld(pos.X+vel.VX*deltaTime, pos.Y+vel.VY*deltaTime, player.Size)
		if x == pos.X && y == pos.Y {
			// 顶着边界走不算移动
			continue
		}
		pos.X, pos.Y = x, y

		if s.limiter.AllowN(s.clock, 1) {
			s.events.Trigger(tutorial.EventMovement)
		}
	}
}
