package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
)

var (
	colorOutside  = color.RGBA{34, 52, 40, 255}
	colorGrass    = color.RGBA{118, 176, 92, 255}
	colorPlayer   = color.RGBA{240, 96, 64, 255}
	colorOutline  = color.RGBA{30, 30, 30, 255}
	colorHighlite = color.RGBA{255, 230, 120, 255}

	buildingColors = map[string]color.RGBA{
		components.BuildingKindMarket:  {230, 170, 80, 255},
		components.BuildingKindKitchen: {200, 120, 110, 255},
		components.BuildingKindGarden:  {90, 140, 70, 255},
	}
)

// WorldRenderSystem 绘制小镇：地面、建筑和玩家
// 全部用纯色矩形表示，没有贴图
type WorldRenderSystem struct {
	entityManager *ecs.EntityManager
	fonts         *Fonts
}

// NewWorldRenderSystem 创建世界渲染系统
func NewWorldRenderSystem(em *ecs.EntityManager, fonts *Fonts) *WorldRenderSystem {
	return &WorldRenderSystem{
		entityManager: em,
		fonts:         fonts,
	}
}

// Draw 渲染世界
func (s *WorldRenderSystem) Draw(screen *ebiten.Image) {
	_, cam, ok := firstComponent[*components.CameraComponent](s.entityManager)
	if !ok {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	screen.Fill(colorOutside)
	s.drawRect(screen, cam, sw, sh, 0, 0, config.WorldWidth, config.WorldHeight, colorGrass)

	player, playerPos, hasPlayer := findPlayer(s.entityManager)

	for _, id := range ecs.GetEntitiesWith2[*components.BuildingComponent, *components.PositionComponent](s.entityManager) {
		building, _ := ecs.GetComponent[*components.BuildingComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		fill, ok := buildingColors[building.Kind]
		if !ok {
			fill = color.RGBA{160, 160, 160, 255}
		}
		s.drawRect(screen, cam, sw, sh, pos.X, pos.Y, building.Width, building.Height, fill)

		outline := colorOutline
		if hasPlayer && player.CurrentBuilding == building.ID {
			outline = colorHighlite
		}
		x, y := cam.WorldToScreen(pos.X, pos.Y, sw, sh)
		vector.StrokeRect(screen, float32(x), float32(y),
			float32(building.Width*cam.Zoom), float32(building.Height*cam.Zoom), 3, outline, false)

		if s.fonts != nil {
			op := &text.DrawOptions{}
			op.LayoutOptions.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(x+building.Width*cam.Zoom/2, y+8)
			op.ColorScale.ScaleWithColor(color.White)
			text.Draw(screen, building.Label, s.fonts.Body, op)
		}
	}

	if hasPlayer {
		s.drawRect(screen, cam, sw, sh, playerPos.X, playerPos.Y, player.Size, player.Size, colorPlayer)
	}
}

func (s *WorldRenderSystem) drawRect(screen *ebiten.Image, cam *components.CameraComponent, sw, sh int, wx, wy, w, h float64, clr color.Color) {
	x, y := cam.WorldToScreen(wx, wy, sw, sh)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*cam.Zoom), float32(h*cam.Zoom), clr, false)
}
