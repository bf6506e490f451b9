package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
	"github.com/decker502/nutriquest/pkg/utils"
)

// CompletionBannerDuration 教学完成横幅的显示时长（秒）
const CompletionBannerDuration = 4.0

// TutorialModalSystem 教学弹窗逻辑
//
// 职责：
//   - 点击弹窗里的"下一步"按钮时上报 next_button
//   - 教学快照的 Revision 变化时，把当前步骤的文本写入 TutorialModalComponent
//   - 教学完成时显示横幅
//
// 渲染由 TutorialModalRenderSystem 负责。
type TutorialModalSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
	tutorial      TutorialController
	strings       *game.TutorialStrings

	synced    bool
	lastState tutorial.State
}

// NewTutorialModalSystem 创建教学弹窗系统
func NewTutorialModalSystem(em *ecs.EntityManager, input InputSource, tc TutorialController, ts *game.TutorialStrings) *TutorialModalSystem {
	return &TutorialModalSystem{
		entityManager: em,
		input:         input,
		tutorial:      tc,
		strings:       ts,
	}
}

// Update 处理按钮点击并同步弹窗内容
func (s *TutorialModalSystem) Update(deltaTime float64) {
	_, modal, ok := firstComponent[*components.TutorialModalComponent](s.entityManager)
	if !ok {
		return
	}

	if modal.Visible && s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := s.input.CursorPosition()
		bx, by, bw, bh := config.ModalButtonRect()
		if pointInRect(float64(cx), float64(cy), bx, by, bw, bh) {
			s.tutorial.Trigger(tutorial.EventNextButton)
		}
	}

	rs := s.tutorial.Snapshot()
	if !s.synced || rs.Revision != modal.Revision {
		s.sync(modal, rs)
	}

	if modal.BannerTimer > 0 {
		modal.BannerTimer -= deltaTime
		if modal.BannerTimer <= 0 {
			modal.BannerTimer = 0
			modal.BannerText = ""
		}
	}
}

func (s *TutorialModalSystem) sync(modal *components.TutorialModalComponent, rs tutorial.RunState) {
	if s.synced && s.lastState != tutorial.StateCompleted && rs.State == tutorial.StateCompleted {
		modal.BannerText = s.strings.Text(game.KeyTutorialCompleted, "Tutorial complete!")
		modal.BannerTimer = CompletionBannerDuration
		log.Printf("[TutorialModalSystem] Tutorial completed, showing banner")
	}
	s.synced = true
	s.lastState = rs.State
	modal.Revision = rs.Revision

	modal.Visible = rs.ShowModal && (rs.State == tutorial.StateActive || rs.State == tutorial.StatePaused)

	step, ok := rs.CurrentStep()
	if !ok {
		return
	}
	modal.Title, modal.Content, modal.Task = s.strings.StepText(step)
	modal.ProgressLabel = s.strings.ProgressLabel(rs.Progress())
	modal.RewardLine = ""
	if step.RewardCoins > 0 {
		modal.RewardLine = s.strings.Text(game.KeyTutorialReward, "Reward") + ": " + s.strings.CoinsLabel(step.RewardCoins)
	}
	modal.Hint = ""
	if !utils.IsMobile() {
		// 触屏设备没有键盘快捷键
		modal.Hint = s.strings.Text(game.KeyTutorialNextHint, "[Enter] Next   [Tab] Hide")
	}
	modal.ButtonLabel = s.strings.Text(game.KeyTutorialNextLabel, "Next")
}

// ModalContains 屏幕坐标是否落在可见的教学弹窗上
func ModalContains(em *ecs.EntityManager, x, y float64) bool {
	_, modal, ok := firstComponent[*components.TutorialModalComponent](em)
	if !ok || !modal.Visible {
		return false
	}
	mx, my, mw, mh := config.ModalRect()
	return pointInRect(x, y, mx, my, mw, mh)
}
