package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// BuildingActionSystem 建筑内的操作（市场、厨房、花园界面）
//
// 玩家在建筑内按 E：
//   - 市场：花 config.FoodPrice 金币买一份食材，上报 purchase_food
//   - 厨房：做一顿饭，上报 cook_meal
//   - 花园：种一颗种子，上报 plant_seed
//
// 做饭不消耗食材，避免玩家在教学中途卡住。
type BuildingActionSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
	events        game.EventSink
	purse         Purse
	strings       *game.TutorialStrings

	groceries int
	meals     int
	plants    int
}

// NewBuildingActionSystem 创建建筑操作系统
//
// 参数：
//   - purse: 玩家钱包，为 nil 时市场无法购买
//   - ts: 界面文本，可为 nil（使用英文）
func NewBuildingActionSystem(em *ecs.EntityManager, input InputSource, events game.EventSink, purse Purse, ts *game.TutorialStrings) *BuildingActionSystem {
	return &BuildingActionSystem{
		entityManager: em,
		input:         input,
		events:        events,
		purse:         purse,
		strings:       ts,
	}
}

// Update 处理 E 键
func (s *BuildingActionSystem) Update(deltaTime float64) {
	player, _, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}
	_, hud, _ := firstComponent[*components.HUDComponent](s.entityManager)

	building := BuildingByID(s.entityManager, player.CurrentBuilding)
	if hud != nil {
		hud.Prompt = ""
		if building != nil {
			hud.Prompt = s.strings.Text(game.KeyActionPrompt, "Press E to interact")
		}
	}

	if building == nil || !s.input.IsKeyJustPressed(ebiten.KeyE) {
		return
	}

	message := s.perform(building)
	if hud != nil && message != "" {
		hud.ShowMessage(message, config.ActionMessageDuration)
	}
}

func (s *BuildingActionSystem) perform(building *components.BuildingComponent) string {
	switch building.Kind {
	case components.BuildingKindMarket:
		if s.purse == nil || !s.purse.Spend(config.FoodPrice) {
			log.Printf("[BuildingActionSystem] Not enough coins to buy food")
			return s.strings.Text(game.KeyActionNotEnoughCoin, "Not enough coins.")
		}
		s.groceries++
		log.Printf("[BuildingActionSystem] Bought food for %d coins (groceries: %d)", config.FoodPrice, s.groceries)
		s.events.TriggerAt(tutorial.EventPurchaseFood, building.ID)
		return s.strings.Text(game.KeyActionPurchaseFood, "You bought a basket of fresh food.")

	case components.BuildingKindKitchen:
		s.meals++
		log.Printf("[BuildingActionSystem] Cooked a meal (meals: %d)", s.meals)
		s.events.TriggerAt(tutorial.EventCookMeal, building.ID)
		return s.strings.Text(game.KeyActionCookMeal, "You cooked a healthy meal.")

	case components.BuildingKindGarden:
		s.plants++
		log.Printf("[BuildingActionSystem] Planted a seed (plants: %d)", s.plants)
		s.events.TriggerAt(tutorial.EventPlantSeed, building.ID)
		return s.strings.Text(game.KeyActionPlantSeed, "You planted a seed.")
	}
	return ""
}

// Groceries 已购买的食材数量
func (s *BuildingActionSystem) Groceries() int { return s.groceries }

// Meals 已做的饭数量
func (s *BuildingActionSystem) Meals() int { return s.meals }

// Plants 已种下的种子数量
func (s *BuildingActionSystem) Plants() int { return s.plants }
