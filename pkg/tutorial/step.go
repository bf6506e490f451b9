package tutorial

import (
	"fmt"
)

// 教学中使用的地点标识，与 BuildingComponent.ID 对应
const (
	LocationMarket  = "market"
	LocationKitchen = "kitchen"
	LocationGarden  = "garden"
)

// Step 教学步骤
// 除 Completed 外，其余字段在一次运行中视为只读目录数据
type Step struct {
	ID      int    // 步骤编号，1..N 连续，决定目录顺序
	Title   string // 标题（展示用，核心不解析）
	Content string // 正文说明
	Task    string // 玩家需要完成的任务描述

	Completed bool // 是否已完成，一次运行中只会从 false 变为 true

	Trigger  EventKind // 推进该步骤的事件类型
	Location string    // 可选：enter_building 步骤要求的地点

	RewardCoins int // 完成时奖励的金币，0 表示无奖励
	RewardExp   int // 经验奖励，目前仅保存在目录中，不发放
}

// StepPatch 对步骤的部分更新，nil 字段保持不变
type StepPatch struct {
	Title       *string
	Content     *string
	Task        *string
	Completed   *bool
	Trigger     *EventKind
	Location    *string
	RewardCoins *int
	RewardExp   *int
}

// DefaultCatalog 返回默认的 9 步新手引导目录（每次调用返回新副本）
//
// 顺序：欢迎 → 移动 → 市场买菜 → 厨房做饭 → 花园种植 → 结束
func DefaultCatalog() []Step {
	return []Step{
		{
			ID:          1,
			Title:       "Welcome to NutriQuest!",
			Content:     "This town is all about healthy food. Let's take a quick tour together.",
			Task:        "Press Next to begin.",
			Trigger:     EventNextButton,
			RewardCoins: 50,
		},
		{
			ID:          2,
			Title:       "Getting around",
			Content:     "Use WASD or the arrow keys to walk. Scroll to pan the camera, hold Ctrl or Cmd while scrolling to zoom.",
			Task:        "Walk a few steps in any direction.",
			Trigger:     EventMovement,
			RewardCoins: 100,
		},
		{
			ID:          3,
			Title:       "The market",
			Content:     "Fresh fruit, vegetables and grains are sold at the market.",
			Task:        "Walk into the market.",
			Trigger:     EventEnterBuilding,
			Location:    LocationMarket,
			RewardCoins: 50,
		},
		{
			ID:          4,
			Title:       "Buying food",
			Content:     "A balanced basket has vegetables, fruit, protein and whole grains.",
			Task:        "Press E inside the market to buy food.",
			Trigger:     EventPurchaseFood,
			RewardCoins: 100,
		},
		{
			ID:          5,
			Title:       "The kitchen",
			Content:     "Ingredients become meals in your kitchen.",
			Task:        "Walk into the kitchen.",
			Trigger:     EventEnterBuilding,
			Location:    LocationKitchen,
			RewardCoins: 50,
		},
		{
			ID:          6,
			Title:       "Cooking",
			Content:     "Steaming and baking keep more nutrients than deep frying.",
			Task:        "Press E inside the kitchen to cook a meal.",
			Trigger:     EventCookMeal,
			RewardCoins: 100,
		},
		{
			ID:       7,
			Title:    "The garden",
			Content:  "Growing your own herbs and vegetables is cheap and fun.",
			Task:     "Walk into the garden.",
			Trigger:  EventEnterBuilding,
			Location: LocationGarden,
		},
		{
			ID:      8,
			Title:   "Planting",
			Content: "Seeds need sun, water and a little patience.",
			Task:    "Press E inside the garden to plant a seed.",
			Trigger: EventPlantSeed,
		},
		{
			ID:        9,
			Title:     "You're ready!",
			Content:   "You know the basics: shop smart, cook well and grow your own food.",
			Task:      "Press Next to finish the tutorial.",
			Trigger:   EventNextButton,
			RewardExp: 50,
		},
	}
}

// CatalogCoinTotal 返回目录中全部金币奖励之和
func CatalogCoinTotal(steps []Step) int {
	total := 0
	for _, step := range steps {
		total += step.RewardCoins
	}
	return total
}

// ValidateCatalog 检查目录是否满足不变量
//   - 至少一个步骤
//   - ID 从 1 开始连续
//   - 触发器属于已知集合
//   - 奖励非负
func ValidateCatalog(steps []Step) error {
	if len(steps) == 0 {
		return fmt.Errorf("tutorial catalog must contain at least one step")
	}
	for i, step := range steps {
		if step.ID != i+1 {
			return fmt.Errorf("step %d: id must be %d, got %d", i, i+1, step.ID)
		}
		if !step.Trigger.Valid() {
			return fmt.Errorf("step %d: unknown trigger %s", step.ID, step.Trigger)
		}
		if step.RewardCoins < 0 {
			return fmt.Errorf("step %d: rewardCoins cannot be negative, got %d", step.ID, step.RewardCoins)
		}
		if step.RewardExp < 0 {
			return fmt.Errorf("step %d: rewardExp cannot be negative, got %d", step.ID, step.RewardExp)
		}
	}
	return nil
}

// cloneSteps 深拷贝步骤列表；resetCompleted 为 true 时清除完成标记
func cloneSteps(steps []Step, resetCompleted bool) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	if resetCompleted {
		for i := range out {
			out[i].Completed = false
		}
	}
	return out
}

func (p StepPatch) apply(step *Step) error {
	if p.Completed != nil && !*p.Completed && step.Completed {
		return fmt.Errorf("step %d: %w", step.ID, ErrCompletedRevert)
	}
	if p.Trigger != nil && !p.Trigger.Valid() {
		return fmt.Errorf("step %d: unknown trigger %s", step.ID, *p.Trigger)
	}
	if p.RewardCoins != nil && *p.RewardCoins < 0 {
		return fmt.Errorf("step %d: rewardCoins cannot be negative", step.ID)
	}
	if p.RewardExp != nil && *p.RewardExp < 0 {
		return fmt.Errorf("step %d: rewardExp cannot be negative", step.ID)
	}

	if p.Title != nil {
		step.Title = *p.Title
	}
	if p.Content != nil {
		step.Content = *p.Content
	}
	if p.Task != nil {
		step.Task = *p.Task
	}
	if p.Completed != nil {
		step.Completed = *p.Completed
	}
	if p.Trigger != nil {
		step.Trigger = *p.Trigger
	}
	if p.Location != nil {
		step.Location = *p.Location
	}
	if p.RewardCoins != nil {
		step.RewardCoins = *p.RewardCoins
	}
	if p.RewardExp != nil {
		step.RewardExp = *p.RewardExp
	}
	return nil
}
