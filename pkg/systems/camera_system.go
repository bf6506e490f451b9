package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/utils"
)

// CameraSystem 镜头控制（按 Mac 鼠标/触控板习惯）
//
// 操作：
//   - 镜头平滑跟随玩家
//   - 滚轮（或触控板双指滑动）平移
//   - 按住 Ctrl / Cmd 滚动缩放
//   - 左键拖拽平移（在教学弹窗上按下不会开始拖拽）
//   - R 键回到玩家并恢复缩放
type CameraSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
}

// NewCameraSystem 创建镜头控制系统
func NewCameraSystem(em *ecs.EntityManager, input InputSource) *CameraSystem {
	return &CameraSystem{
		entityManager: em,
		input:         input,
	}
}

// Camera 返回镜头组件
func (s *CameraSystem) Camera() (*components.CameraComponent, bool) {
	_, cam, ok := firstComponent[*components.CameraComponent](s.entityManager)
	return cam, ok
}

// Update 处理镜头输入并跟随玩家
func (s *CameraSystem) Update(deltaTime float64) {
	cam, ok := s.Camera()
	if !ok {
		return
	}

	s.handleWheel(cam)
	s.handleDrag(cam)

	if s.input.IsKeyJustPressed(ebiten.KeyR) {
		cam.OffsetX, cam.OffsetY = 0, 0
		cam.Zoom = 1.0
		cam.Dragging = false
	}

	cam.OffsetX = utils.Clamp(cam.OffsetX, -config.CameraMaxPanOffset, config.CameraMaxPanOffset)
	cam.OffsetY = utils.Clamp(cam.OffsetY, -config.CameraMaxPanOffset, config.CameraMaxPanOffset)

	player, pos, ok := findPlayer(s.entityManager)
	if !ok {
		return
	}
	px, py := player.Center(pos)
	targetX := utils.Clamp(px+cam.OffsetX, 0, config.WorldWidth)
	targetY := utils.Clamp(py+cam.OffsetY, 0, config.WorldHeight)

	factor := utils.FollowFactor(config.CameraFollowRate, deltaTime)
	if cam.Dragging {
		// 拖拽时镜头紧跟鼠标
		factor = 1
	}
	cam.CenterX = utils.Lerp(cam.CenterX, targetX, factor)
	cam.CenterY = utils.Lerp(cam.CenterY, targetY, factor)
}

func (s *CameraSystem) handleWheel(cam *components.CameraComponent) {
	wheelX, wheelY := s.input.Wheel()
	if wheelX == 0 && wheelY == 0 {
		return
	}

	if s.input.IsKeyPressed(ebiten.KeyControl) || s.input.IsKeyPressed(ebiten.KeyMeta) {
		cam.Zoom = utils.Clamp(cam.Zoom+wheelY*config.CameraWheelZoomStep, config.CameraMinZoom, config.CameraMaxZoom)
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	cam.OffsetX -= wheelX * config.CameraWheelPanSpeed / zoom
	cam.OffsetY -= wheelY * config.CameraWheelPanSpeed / zoom
}

func (s *CameraSystem) handleDrag(cam *components.CameraComponent) {
	if !s.input.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cam.Dragging = false
		return
	}

	cx, cy := s.input.CursorPosition()
	if s.input.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ModalContains(s.entityManager, float64(cx), float64(cy)) {
			return
		}
		cam.Dragging = true
		cam.DragStartX, cam.DragStartY = cx, cy
		cam.DragOriginX, cam.DragOriginY = cam.OffsetX, cam.OffsetY
		return
	}

	if !cam.Dragging {
		return
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	cam.OffsetX = cam.DragOriginX - float64(cx-cam.DragStartX)/zoom
	cam.OffsetY = cam.DragOriginY - float64(cy-cam.DragStartY)/zoom
}
