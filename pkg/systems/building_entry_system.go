package systems

import (
	"log"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// BuildingEntrySystem 检测玩家进入建筑
// 只在进入的那一帧上报 enter_building（带建筑ID），在建筑内停留不会重复上报
type BuildingEntrySystem struct {
	entityManager *ecs.EntityManager
	events        game.EventSink
}

// NewBuildingEntrySystem 创建建筑进入检测系统
func NewBuildingEntrySystem(em *ecs.EntityManager, events game.EventSink) *BuildingEntrySystem {
	return &BuildingEntrySystem{
		entityManager: em,
		events:        events,
	}
}

// Update 以玩家中心点判断所在建筑
func (s *BuildingEntrySystem) Update(deltaTime float64) {
	player, pos, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}

	cx, cy := player.Center(pos)
	current := ""
	if building := BuildingAt(s.entityManager, cx, cy); building != nil {
		current = building.ID
	}
	if current == player.CurrentBuilding {
		return
	}

	player.CurrentBuilding = current
	if current == "" {
		return
	}
	log.Printf("[BuildingEntrySystem] Player entered %s", current)
	s.events.TriggerAt(tutorial.EventEnterBuilding, current)
}

// BuildingAt 返回包含世界坐标点的建筑，没有则返回 nil
func BuildingAt(em *ecs.EntityManager, x, y float64) *components.BuildingComponent {
	for _, id := range ecs.GetEntitiesWith2[*components.BuildingComponent, *components.PositionComponent](em) {
		building, _ := ecs.GetComponent[*components.BuildingComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if building.Contains(pos, x, y) {
			return building
		}
	}
	return nil
}

// BuildingByID 按ID查找建筑
func BuildingByID(em *ecs.EntityManager, buildingID string) *components.BuildingComponent {
	if buildingID == "" {
		return nil
	}
	for _, id := range ecs.GetEntitiesWith1[*components.BuildingComponent](em) {
		building, _ := ecs.GetComponent[*components.BuildingComponent](em, id)
		if building.ID == buildingID {
			return building
		}
	}
	return nil
}
