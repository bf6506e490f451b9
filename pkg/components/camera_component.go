package components

// CameraComponent 镜头状态
//
// 镜头默认跟随玩家，鼠标滚轮/拖拽在跟随点基础上叠加平移偏移，
// Ctrl/Cmd + 滚轮调整缩放。
type CameraComponent struct {
	// CenterX, CenterY 镜头中心（世界坐标），每帧由 CameraSystem 计算
	CenterX float64
	CenterY float64

	// OffsetX, OffsetY 相对跟随点的平移偏移
	OffsetX float64
	OffsetY float64

	// Zoom 缩放倍数，1.0 为原始大小
	Zoom float64

	// Dragging 是否正在用鼠标左键拖拽
	Dragging bool
	// DragStartX, DragStartY 拖拽开始时的鼠标屏幕坐标
	DragStartX int
	DragStartY int
	// DragOriginX, DragOriginY 拖拽开始时的平移偏移
	DragOriginX float64
	DragOriginY float64
}

// WorldToScreen 世界坐标转屏幕坐标
func (c *CameraComponent) WorldToScreen(x, y float64, screenW, screenH int) (float64, float64) {
	return (x-c.CenterX)*c.Zoom + float64(screenW)/2, (y-c.CenterY)*c.Zoom + float64(screenH)/2
}

// ScreenToWorld 屏幕坐标转世界坐标
func (c *CameraComponent) ScreenToWorld(sx, sy float64, screenW, screenH int) (float64, float64) {
	return (sx-float64(screenW)/2)/c.Zoom + c.CenterX, (sy-float64(screenH)/2)/c.Zoom + c.CenterY
}
