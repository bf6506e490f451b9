package tutorial

// RunState 教学运行状态的只读快照
// 由 Store.Snapshot 生成，Steps 为深拷贝，修改快照不会影响 Store
type RunState struct {
	State            State
	CurrentStepIndex int
	Steps            []Step
	ShowModal        bool

	// Revision 每次有效变更递增，用于监听者判断快照新旧
	Revision uint64
}

// CurrentStep 返回当前步骤
func (rs RunState) CurrentStep() (Step, bool) {
	if rs.CurrentStepIndex < 0 || rs.CurrentStepIndex >= len(rs.Steps) {
		return Step{}, false
	}
	return rs.Steps[rs.CurrentStepIndex], true
}

// Progress 返回进度指示 (index+1, length)
func (rs RunState) Progress() (current, total int) {
	return rs.CurrentStepIndex + 1, len(rs.Steps)
}

// CompletedCount 返回已完成步骤数
func (rs RunState) CompletedCount() int {
	n := 0
	for _, step := range rs.Steps {
		if step.Completed {
			n++
		}
	}
	return n
}

// IsLastStep 当前步骤是否为目录最后一步
func (rs RunState) IsLastStep() bool {
	return rs.CurrentStepIndex == len(rs.Steps)-1
}
