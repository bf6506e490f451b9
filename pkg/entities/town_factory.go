// Package entities 提供小镇场景中各类实体的工厂函数
package entities

import (
	"fmt"
	"log"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体
//
// 参数:
//   - em: 实体管理器
//   - x, y: 出生点（世界坐标，方块左上角）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
func NewPlayerEntity(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	x, y = config.ClampToWorld(x, y, config.PlayerSize)
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Speed: config.PlayerSpeed,
		Size:  config.PlayerSize,
	})
	return id
}

// NewBuildingEntity 根据布局创建建筑实体
//
// 返回:
//   - ecs.EntityID: 建筑实体ID
//   - error: 尺寸非法或类型未知时返回错误
func NewBuildingEntity(em *ecs.EntityManager, layout config.BuildingLayout) (ecs.EntityID, error) {
	if layout.ID == "" {
		return 0, fmt.Errorf("building id cannot be empty")
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return 0, fmt.Errorf("building %s: invalid size %.0fx%.0f", layout.ID, layout.Width, layout.Height)
	}
	switch layout.Kind {
	case components.BuildingKindMarket, components.BuildingKindKitchen, components.BuildingKindGarden:
	default:
		return 0, fmt.Errorf("building %s: unknown kind %q", layout.ID, layout.Kind)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: layout.X, Y: layout.Y})
	ecs.AddComponent(em, id, &components.BuildingComponent{
		ID:     layout.ID,
		Kind:   layout.Kind,
		Label:  layout.Label,
		Width:  layout.Width,
		Height: layout.Height,
	})
	return id, nil
}

// NewTownBuildings 创建 config.TownBuildings 中的全部建筑
func NewTownBuildings(em *ecs.EntityManager) ([]ecs.EntityID, error) {
	layouts := config.TownBuildings()
	ids := make([]ecs.EntityID, 0, len(layouts))
	for _, layout := range layouts {
		id, err := NewBuildingEntity(em, layout)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Printf("[Entities] Created %d town buildings", len(ids))
	return ids, nil
}

// NewCameraEntity 创建镜头实体，初始对准 (x, y)
func NewCameraEntity(em *ecs.EntityManager, x, y, zoom float64) ecs.EntityID {
	if zoom <= 0 {
		zoom = 1.0
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraComponent{
		CenterX: x,
		CenterY: y,
		Zoom:    zoom,
	})
	return id
}

// NewTutorialModalEntity 创建教学弹窗实体（初始隐藏）
func NewTutorialModalEntity(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TutorialModalComponent{})
	return id
}

// NewHUDEntity 创建状态栏实体
func NewHUDEntity(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.HUDComponent{})
	return id
}
