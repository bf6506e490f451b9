package components

// 建筑类型
const (
	BuildingKindMarket  = "market"
	BuildingKindKitchen = "kitchen"
	BuildingKindGarden  = "garden"
)

// BuildingComponent 小镇中的建筑
// 左上角位置保存在同一实体的 PositionComponent 中
type BuildingComponent struct {
	ID     string // 地点标识，对应教学步骤的 Location
	Kind   string // market / kitchen / garden
	Label  string // 地图上显示的名字
	Width  float64
	Height float64
}

// Contains 判断世界坐标点是否在建筑矩形内
func (b *BuildingComponent) Contains(pos *PositionComponent, x, y float64) bool {
	return x >= pos.X && x < pos.X+b.Width && y >= pos.Y && y < pos.Y+b.Height
}
