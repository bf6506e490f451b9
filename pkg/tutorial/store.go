package tutorial

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	// ErrStepNotFound 按 ID 查找步骤失败
	ErrStepNotFound = errors.New("tutorial step not found")
	// ErrCompletedRevert 试图把已完成的步骤改回未完成
	ErrCompletedRevert = errors.New("completed tutorial step cannot be reverted")
)

// Option 配置 Store
type Option func(*Store)

// WithEconomy 设置奖励发放的玩家经济协作者，可为 nil
func WithEconomy(economy Economy) Option {
	return func(s *Store) {
		s.economy = economy
	}
}

// WithLocationPolicy 设置 enter_building 地点匹配策略
func WithLocationPolicy(policy LocationPolicy) Option {
	return func(s *Store) {
		s.locationPolicy = policy
	}
}

// Store 教学状态存储
//
// 职责：
//   - 持有运行状态（状态、当前步骤索引、步骤列表、弹窗可见性）
//   - 提供全部状态转换操作，外部不能直接写字段
//   - 在步骤完成时向 Economy 发放奖励
//
// 所有操作都在同一把互斥锁内完成，"标记完成 → 发放奖励 → 更新索引/弹窗"
// 是一个不可分割的临界区。Economy 在锁内被调用，不能反向调用 Store。
type Store struct {
	mu sync.Mutex

	catalog []Step // 原始目录（Reset 时从这里深拷贝）

	state     State
	index     int
	steps     []Step
	showModal bool
	revision  uint64

	economy        Economy
	locationPolicy LocationPolicy

	listeners      map[int]func(RunState)
	nextListenerID int
}

// NewStore 使用给定目录创建教学状态存储
//
// 参数：
//   - steps: 步骤目录，会被深拷贝
//   - opts: 可选配置
//
// 返回：
//   - *Store: 处于 inactive 状态的存储
//   - error: 目录不合法时返回错误
func NewStore(steps []Step, opts ...Option) (*Store, error) {
	if err := ValidateCatalog(steps); err != nil {
		return nil, fmt.Errorf("invalid tutorial catalog: %w", err)
	}

	s := &Store{
		catalog:   cloneSteps(steps, true),
		listeners: make(map[int]func(RunState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()

	log.Printf("[TutorialStore] Initialized with %d tutorial steps (location policy: %s)", len(s.steps), s.locationPolicy)
	return s, nil
}

// NewDefaultStore 使用 DefaultCatalog 创建存储
func NewDefaultStore(opts ...Option) *Store {
	s, err := NewStore(DefaultCatalog(), opts...)
	if err != nil {
		// 默认目录是静态数据，校验失败说明代码本身有错
		panic(err)
	}
	return s
}

// SetEconomy 设置或移除玩家经济协作者
func (s *Store) SetEconomy(economy Economy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.economy = economy
}

// LocationPolicy 返回当前的地点匹配策略
func (s *Store) LocationPolicy() LocationPolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locationPolicy
}

// Start 开始（或重新开始）教学
// 任意状态均可调用：状态置为 active，索引归零，显示弹窗。
// 不会清除已完成标记，需要全新运行请先调用 Reset。
func (s *Store) Start() {
	s.mutate(func() bool {
		s.state = StateActive
		s.index = 0
		s.showModal = true
		log.Printf("[TutorialStore] Tutorial started")
		return true
	})
}

// Reset 恢复到初始生命周期状态，目录完成标记全部清除
func (s *Store) Reset() {
	s.mutate(func() bool {
		s.resetLocked()
		log.Printf("[TutorialStore] Tutorial reset")
		return true
	})
}

// Advance 完成当前步骤并推进到下一步
//
// 仅在 active 状态下生效，否则静默忽略。
//
// 返回：
//   - bool: 是否发生了推进
func (s *Store) Advance() bool {
	return s.mutate(s.advanceLocked)
}

// Pause 暂停教学（active → paused）
func (s *Store) Pause() bool {
	return s.mutate(func() bool {
		if s.state != StateActive {
			return false
		}
		s.state = StatePaused
		log.Printf("[TutorialStore] Tutorial paused at step %d", s.index+1)
		return true
	})
}

// Resume 恢复教学（paused → active）
func (s *Store) Resume() bool {
	return s.mutate(func() bool {
		if s.state != StatePaused {
			return false
		}
		s.state = StateActive
		log.Printf("[TutorialStore] Tutorial resumed at step %d", s.index+1)
		return true
	})
}

// ToggleModal 切换教学弹窗可见性
func (s *Store) ToggleModal() {
	s.mutate(func() bool {
		return s.setModalLocked(!s.showModal)
	})
}

// SetModalVisible 设置教学弹窗可见性
// inactive 或 completed 状态下不会显示弹窗（隐藏总是允许）
func (s *Store) SetModalVisible(show bool) {
	s.mutate(func() bool {
		return s.setModalLocked(show)
	})
}

// MarkStepCompleted 按 ID 直接标记步骤完成
// 用于外部修正和测试，不发放奖励，不移动索引
func (s *Store) MarkStepCompleted(stepID int) error {
	done := true
	return s.UpdateStep(stepID, StepPatch{Completed: &done})
}

// UpdateStep 按 ID 对步骤做部分更新，不发放奖励，不移动索引
//
// 返回：
//   - error: ID 不存在返回 ErrStepNotFound；试图撤销完成返回 ErrCompletedRevert
func (s *Store) UpdateStep(stepID int, patch StepPatch) error {
	var err error
	s.mutate(func() bool {
		pos := s.findLocked(stepID)
		if pos < 0 {
			err = fmt.Errorf("step %d: %w", stepID, ErrStepNotFound)
			return false
		}
		updated := s.steps[pos]
		if err = patch.apply(&updated); err != nil {
			return false
		}
		if updated == s.steps[pos] {
			return false
		}
		s.steps[pos] = updated
		return true
	})
	return err
}

// Snapshot 返回当前运行状态的深拷贝
func (s *Store) Snapshot() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State 返回当前状态
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe 注册状态变化监听者
//
// 每次有效变更后，监听者会在锁外收到新的快照。并发调用方产生的通知顺序
// 不保证与变更顺序一致，监听者应比较 RunState.Revision。
//
// 返回：
//   - func(): 取消注册
func (s *Store) Subscribe(listener func(RunState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// mutate 在锁内执行 fn；fn 返回 true 表示发生了变更，随后在锁外通知监听者
func (s *Store) mutate(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.revision++
	snapshot := s.snapshotLocked()
	listeners := make([]func(RunState), 0, len(s.listeners))
	for id := 0; id < s.nextListenerID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return true
}

func (s *Store) resetLocked() {
	s.state = StateInactive
	s.index = 0
	s.steps = cloneSteps(s.catalog, true)
	s.showModal = false
}

// advanceLocked 依次执行：标记完成 → 发放奖励 → 更新索引和弹窗
func (s *Store) advanceLocked() bool {
	if s.state != StateActive {
		return false
	}

	step := s.currentStepLocked()
	last := s.index == len(s.steps)-1

	// 已完成的步骤（例如未 Reset 直接 Start）不重复奖励
	if !step.Completed {
		step.Completed = true
		log.Printf("[TutorialStore] Step %d completed (trigger: %s)", step.ID, step.Trigger)
		s.applyRewardLocked(*step, last)
	}

	if !last {
		s.index++
		s.showModal = true
		return true
	}

	s.state = StateCompleted
	s.showModal = false
	log.Printf("[TutorialStore] All %d tutorial steps completed", len(s.steps))
	return true
}

// currentStepLocked 返回当前步骤的指针
// 索引越界说明不变量被破坏，属于致命错误
func (s *Store) currentStepLocked() *Step {
	if s.index < 0 || s.index >= len(s.steps) {
		panic(fmt.Sprintf("tutorial: current step index %d out of range [0, %d)", s.index, len(s.steps)))
	}
	return &s.steps[s.index]
}

func (s *Store) setModalLocked(show bool) bool {
	if show && (s.state == StateInactive || s.state == StateCompleted) {
		return false
	}
	if s.showModal == show {
		return false
	}
	s.showModal = show
	return true
}

func (s *Store) findLocked(stepID int) int {
	for i := range s.steps {
		if s.steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() RunState {
	return RunState{
		State:            s.state,
		CurrentStepIndex: s.index,
		Steps:            cloneSteps(s.steps, false),
		ShowModal:        s.showModal,
		Revision:         s.revision,
	}
}
