package tutorial

import "log"

// Trigger 上报一个游戏事件
//
// 外部协作者无需先检查教学状态：非 active 状态下事件被直接丢弃。
// 事件与当前步骤的触发器匹配时推进一步，每次调用至多推进一步，事件不会排队。
//
// 参数：
//   - kind: 事件类型
//
// 返回：
//   - bool: 是否推进了步骤
func (s *Store) Trigger(kind EventKind) bool {
	return s.TriggerAt(kind, "")
}

// TriggerAt 上报一个带地点的游戏事件（如进入了哪栋建筑）
//
// 地点如何参与匹配由 LocationPolicy 决定，见 LocationLenient / LocationStrict。
func (s *Store) TriggerAt(kind EventKind, location string) bool {
	return s.mutate(func() bool {
		if s.state != StateActive {
			return false
		}
		if !s.matchesLocked(*s.currentStepLocked(), kind, location) {
			return false
		}
		return s.advanceLocked()
	})
}

func (s *Store) matchesLocked(step Step, kind EventKind, location string) bool {
	if !kind.Valid() || step.Trigger != kind {
		return false
	}
	if step.Location == "" || location == step.Location {
		return true
	}

	if s.locationPolicy == LocationStrict {
		return false
	}

	// 宽松模式：任意地点都能推进，记录差异以便确认这是否为预期行为
	log.Printf("[TutorialStore] Location mismatch on step %d: %s at %q, step expects %q (advancing, lenient policy)",
		step.ID, kind, location, step.Location)
	return true
}
