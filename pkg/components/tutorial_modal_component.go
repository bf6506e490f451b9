package components

// TutorialModalComponent 教学弹窗
//
// TutorialModalSystem 根据教学快照填写这些字段，
// TutorialModalRenderSystem 只负责绘制，不读取教学状态。
type TutorialModalComponent struct {
	Visible bool

	Title         string
	Content       string
	Task          string
	RewardLine    string // 如 "Reward: 50 coins"，没有金币奖励时为空
	ProgressLabel string // 如 "Step 2 of 9"
	Hint          string // 按键提示
	ButtonLabel   string // "下一步"按钮文字

	// Revision 已同步的教学快照版本号
	Revision uint64

	// BannerText 教学完成后短暂显示的横幅
	BannerText  string
	BannerTimer float64 // 剩余显示时间（秒）
}
