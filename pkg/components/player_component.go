package components

// PlayerComponent 玩家角色
type PlayerComponent struct {
	Speed float64 // 移动速度（像素/秒）
	Size  float64 // 方块边长

	// CurrentBuilding 玩家当前所在建筑的 ID，不在任何建筑内时为空
	// 由 BuildingEntrySystem 维护，用于只在"进入"的那一帧上报事件
	CurrentBuilding string
}

// Center 返回玩家方块中心点
func (p *PlayerComponent) Center(pos *PositionComponent) (float64, float64) {
	return pos.X + p.Size/2, pos.Y + p.Size/2
}
