package components

// PositionComponent 实体在世界坐标系中的位置
// 玩家为方块左上角，建筑为矩形左上角
type PositionComponent struct {
	X, Y float64
}
