package tutorial

import (
	"fmt"
	"log"

	"github.com/decker502/nutriquest/pkg/config"
)

// Progress 可持久化的教学进度（按玩家存档）
type Progress struct {
	State          string `yaml:"state"`          // inactive / active / completed / paused
	CurrentStep    int    `yaml:"currentStep"`    // 当前步骤索引（从0开始）
	CompletedSteps []int  `yaml:"completedSteps"` // 已完成步骤ID
	ShowModal      bool   `yaml:"showModal"`      // 弹窗是否可见
}

// Progress 导出当前进度
func (s *Store) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]int, 0, len(s.steps))
	for _, step := range s.steps {
		if step.Completed {
			completed = append(completed, step.ID)
		}
	}
	return Progress{
		State:          s.state.String(),
		CurrentStep:    s.index,
		CompletedSteps: completed,
		ShowModal:      s.showModal,
	}
}

// Restore 从存档恢复进度
//
// 先校验整个存档，校验失败时 Store 保持不变。
//
// 返回：
//   - error: 状态未知、索引越界、步骤ID不存在，或完成标记与状态不一致时返回错误
func (s *Store) Restore(p Progress) error {
	state, err := ParseState(p.State)
	if err != nil {
		return fmt.Errorf("restore tutorial progress: %w", err)
	}

	var restoreErr error
	s.mutate(func() bool {
		if p.CurrentStep < 0 || p.CurrentStep >= len(s.catalog) {
			restoreErr = fmt.Errorf("restore tutorial progress: step index %d out of range [0, %d)", p.CurrentStep, len(s.catalog))
			return false
		}

		steps := cloneSteps(s.catalog, true)
		for _, id := range p.CompletedSteps {
			if id < 1 || id > len(steps) {
				restoreErr = fmt.Errorf("restore tutorial progress: step %d: %w", id, ErrStepNotFound)
				return false
			}
			steps[id-1].Completed = true
		}
		if err := checkRestoredProgress(state, p.CurrentStep, steps); err != nil {
			restoreErr = fmt.Errorf("restore tutorial progress: %w", err)
			return false
		}

		s.state = state
		s.index = p.CurrentStep
		s.steps = steps
		s.showModal = p.ShowModal && (state == StateActive || state == StatePaused)
		log.Printf("[TutorialStore] Restored progress: state=%s step=%d completed=%d", state, p.CurrentStep+1, len(p.CompletedSteps))
		return true
	})
	return restoreErr
}

// checkRestoredProgress 校验存档中的状态、索引与完成标记是否是可达的组合
//
//   - inactive: 索引为 0
//   - active/paused: 当前步骤之前的步骤全部完成
//   - completed: 停在最后一步且全部步骤完成
func checkRestoredProgress(state State, index int, steps []Step) error {
	switch state {
	case StateInactive:
		if index != 0 {
			return fmt.Errorf("inactive tutorial at step index %d, want 0", index)
		}
	case StateActive, StatePaused:
		for _, step := range steps[:index] {
			if !step.Completed {
				return fmt.Errorf("%s tutorial at step %d but step %d is not completed", state, steps[index].ID, step.ID)
			}
		}
	case StateCompleted:
		if index != len(steps)-1 {
			return fmt.Errorf("completed tutorial at step index %d, want %d", index, len(steps)-1)
		}
		for _, step := range steps {
			if !step.Completed {
				return fmt.Errorf("completed tutorial but step %d is not completed", step.ID)
			}
		}
	}
	return nil
}

// StepsFromConfig 将 YAML 目录配置转换为步骤列表
func StepsFromConfig(cfg *config.TutorialCatalogConfig) ([]Step, error) {
	steps := make([]Step, 0, len(cfg.Steps))
	for i, sc := range cfg.Steps {
		trigger, err := ParseEventKind(sc.Trigger)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, Step{
			ID:          sc.ID,
			Title:       sc.Title,
			Content:     sc.Content,
			Task:        sc.Task,
			Trigger:     trigger,
			Location:    sc.Location,
			RewardCoins: sc.RewardCoins,
			RewardExp:   sc.RewardExp,
		})
	}
	if err := ValidateCatalog(steps); err != nil {
		return nil, err
	}
	return steps, nil
}
