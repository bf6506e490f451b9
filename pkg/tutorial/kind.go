// Package tutorial 实现新手引导的状态机、事件分发协议和奖励发放
//
// 教学流程是严格线性的：每个步骤定义一个触发事件，外部协作者（移动系统、
// 建筑进入系统、市场/厨房/花园界面、"下一步"按钮）通过 Store.Trigger 上报事件，
// Store 判断是否满足当前步骤，满足则推进并发放奖励。
package tutorial

import (
	"errors"
	"fmt"
)

// State 教学运行状态
type State int

const (
	StateInactive State = iota
	StateActive
	StateCompleted
	StatePaused
)

var stateNames = [...]string{
	StateInactive:  "inactive",
	StateActive:    "active",
	StateCompleted: "completed",
	StatePaused:    "paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState 将存档中的字符串还原为 State
func ParseState(value string) (State, error) {
	for i, name := range stateNames {
		if name == value {
			return State(i), nil
		}
	}
	return StateInactive, fmt.Errorf("unknown tutorial state %q", value)
}

// EventKind 教学触发事件类型（封闭枚举）
type EventKind int

const (
	EventNextButton EventKind = iota
	EventMovement
	EventEnterBuilding
	EventPurchaseFood
	EventCookMeal
	EventPlantSeed

	eventKindCount
)

// ErrUnknownEventKind 事件标签不属于已知集合
var ErrUnknownEventKind = errors.New("unknown tutorial event kind")

var eventKindNames = [...]string{
	EventNextButton:    "next_button",
	EventMovement:      "movement",
	EventEnterBuilding: "enter_building",
	EventPurchaseFood:  "purchase_food",
	EventCookMeal:      "cook_meal",
	EventPlantSeed:     "plant_seed",
}

// String 返回事件的协议标签，如 "next_button"
func (k EventKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Valid 报告 k 是否属于已知事件集合
func (k EventKind) Valid() bool {
	return k >= 0 && k < eventKindCount
}

// ParseEventKind 解析协议标签
//
// 参数：
//   - tag: 事件标签，如 "enter_building"
//
// 返回：
//   - EventKind: 解析结果
//   - error: 未知标签返回包装了 ErrUnknownEventKind 的错误
func ParseEventKind(tag string) (EventKind, error) {
	for i, name := range eventKindNames {
		if name == tag {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEventKind, tag)
}

// EventKinds 按声明顺序返回全部事件类型
func EventKinds() []EventKind {
	kinds := make([]EventKind, 0, eventKindCount)
	for k := EventKind(0); k < eventKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// LocationPolicy 决定 enter_building 事件如何对照步骤的 Location
type LocationPolicy int

const (
	// LocationLenient 任意建筑进入都能推进 enter_building 步骤（原有行为），
	// 地点不符时只记录日志
	LocationLenient LocationPolicy = iota
	// LocationStrict 步骤声明了 Location 时，只有相同地点的事件才能推进
	LocationStrict
)

func (p LocationPolicy) String() string {
	if p == LocationStrict {
		return "strict"
	}
	return "lenient"
}

// ParseLocationPolicy 解析 "lenient" / "strict"，空字符串视为 lenient
func ParseLocationPolicy(value string) (LocationPolicy, error) {
	switch value {
	case "", "lenient":
		return LocationLenient, nil
	case "strict":
		return LocationStrict, nil
	default:
		return LocationLenient, fmt.Errorf("location policy must be one of: lenient, strict, got %q", value)
	}
}
