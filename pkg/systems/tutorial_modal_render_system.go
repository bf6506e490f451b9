package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/utils"
)

const modalPadding = 14.0

// TutorialModalRenderSystem 绘制教学弹窗、完成横幅和状态栏
// 只读取组件，不访问教学状态
type TutorialModalRenderSystem struct {
	entityManager *ecs.EntityManager
	fonts         *Fonts
}

// NewTutorialModalRenderSystem 创建弹窗渲染系统
func NewTutorialModalRenderSystem(em *ecs.EntityManager, fonts *Fonts) *TutorialModalRenderSystem {
	return &TutorialModalRenderSystem{
		entityManager: em,
		fonts:         fonts,
	}
}

// Draw 渲染 UI 层
func (s *TutorialModalRenderSystem) Draw(screen *ebiten.Image) {
	if s.fonts == nil {
		return
	}
	if _, hud, ok := firstComponent[*components.HUDComponent](s.entityManager); ok {
		s.drawHUD(screen, hud)
	}
	if _, modal, ok := firstComponent[*components.TutorialModalComponent](s.entityManager); ok {
		if modal.Visible {
			s.drawModal(screen, modal)
		}
		if modal.BannerText != "" {
			s.drawBanner(screen, modal)
		}
	}
}

func (s *TutorialModalRenderSystem) drawModal(screen *ebiten.Image, modal *components.TutorialModalComponent) {
	x, y, w, h := config.ModalRect()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{250, 246, 230, 235}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{90, 70, 40, 255}, false)

	dark := color.RGBA{40, 32, 20, 255}
	s.drawText(screen, modal.Title, s.fonts.Title, x+modalPadding, y+modalPadding, dark, text.AlignStart)
	s.drawText(screen, modal.ProgressLabel, s.fonts.Small, x+w-modalPadding, y+modalPadding+4, color.RGBA{120, 100, 70, 255}, text.AlignEnd)

	lineY := y + modalPadding + 30
	for _, line := range utils.WrapText(modal.Content, s.fonts.Body, w-2*modalPadding) {
		s.drawText(screen, line, s.fonts.Body, x+modalPadding, lineY, dark, text.AlignStart)
		lineY += 19
	}
	lineY += 4
	for _, line := range utils.WrapText(modal.Task, s.fonts.Body, w-2*modalPadding) {
		s.drawText(screen, line, s.fonts.Body, x+modalPadding, lineY, color.RGBA{30, 90, 150, 255}, text.AlignStart)
		lineY += 19
	}
	if modal.RewardLine != "" {
		s.drawText(screen, modal.RewardLine, s.fonts.Small, x+modalPadding, lineY+4, color.RGBA{170, 120, 0, 255}, text.AlignStart)
	}

	bx, by, bw, bh := config.ModalButtonRect()
	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), color.RGBA{70, 140, 80, 255}, false)
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(bx+bw/2, by+bh/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, modal.ButtonLabel, s.fonts.Body, op)

	s.drawText(screen, modal.Hint, s.fonts.Small, x+modalPadding, by+bh/2-6, color.RGBA{120, 100, 70, 255}, text.AlignStart)
}

func (s *TutorialModalRenderSystem) drawBanner(screen *ebiten.Image, modal *components.TutorialModalComponent) {
	// 横幅在最后一秒淡出
	alpha := utils.EaseOutQuad(utils.Clamp(modal.BannerTimer, 0, 1))
	sw := float64(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, float32(sw/2-170), 60, 340, 44, color.RGBA{40, 110, 60, uint8(220 * alpha)}, false)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(sw/2, 82)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, modal.BannerText, s.fonts.Title, op)
}

func (s *TutorialModalRenderSystem) drawHUD(screen *ebiten.Image, hud *components.HUDComponent) {
	sw := float64(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, 0, 0, float32(sw), 30, color.RGBA{0, 0, 0, 140}, false)
	s.drawText(screen, hud.CoinsLabel, s.fonts.Body, 12, 7, color.RGBA{255, 220, 90, 255}, text.AlignStart)

	if hud.Paused {
		s.drawText(screen, hud.PausedLabel, s.fonts.Body, sw/2, 7, color.White, text.AlignCenter)
	} else if hud.Message != "" {
		s.drawText(screen, hud.Message, s.fonts.Body, sw/2, 7, color.White, text.AlignCenter)
	}
	if hud.Prompt != "" {
		s.drawText(screen, hud.Prompt, s.fonts.Small, sw-12, 9, color.RGBA{220, 220, 220, 255}, text.AlignEnd)
	}
}

func (s *TutorialModalRenderSystem) drawText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color, align text.Align) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = align
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
