package components

// HUDComponent 屏幕顶部的状态栏
type HUDComponent struct {
	Coins      int    // 当前金币，由 HUDSystem 每帧从钱包同步
	CoinsLabel string // 本地化的金币文本，如 "200 coins"

	// Prompt 玩家站在建筑内时的操作提示，如 "Press E to interact"
	Prompt string

	// Message 最近一次建筑内操作的结果，显示 MessageTimer 秒
	Message      string
	MessageTimer float64

	Paused      bool   // 教学是否暂停
	PausedLabel string // 暂停提示文本
}

// ShowMessage 显示一条操作结果
func (h *HUDComponent) ShowMessage(message string, duration float64) {
	h.Message = message
	h.MessageTimer = duration
}
