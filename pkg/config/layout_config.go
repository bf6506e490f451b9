package config

// 布局配置常量
// 本文件定义了小镇场景中的布局参数，包括窗口、世界边界、建筑位置和玩家移动参数

// 窗口与世界尺寸
// 所有坐标使用"世界坐标系"（相对于小镇地图左上角），不随摄像机移动而变化
const (
	// GameWindowWidth 游戏逻辑屏幕宽度
	GameWindowWidth = 800
	// GameWindowHeight 游戏逻辑屏幕高度
	GameWindowHeight = 600

	// WorldWidth 小镇地图宽度（世界坐标）
	WorldWidth = 1600.0
	// WorldHeight 小镇地图高度（世界坐标）
	WorldHeight = 1200.0
)

// 玩家参数
const (
	// PlayerSize 玩家方块边长（像素）
	PlayerSize = 24.0
	// PlayerSpeed 玩家移动速度（像素/秒）
	PlayerSpeed = 180.0
	// PlayerStartX 玩家出生点X（小镇广场中央）
	PlayerStartX = 800.0
	// PlayerStartY 玩家出生点Y
	PlayerStartY = 640.0
)

// 摄像机参数（Mac 触控板/鼠标控制）
const (
	// CameraMinZoom 最小缩放
	CameraMinZoom = 0.5
	// CameraMaxZoom 最大缩放
	CameraMaxZoom = 2.0
	// CameraWheelPanSpeed 滚轮平移速度（像素/滚轮单位）
	CameraWheelPanSpeed = 24.0
	// CameraWheelZoomStep 按住 Ctrl/Cmd 滚动时每个滚轮单位的缩放量
	CameraWheelZoomStep = 0.1
	// CameraMaxPanOffset 相对玩家的最大平移偏移（像素）
	CameraMaxPanOffset = 400.0
	// CameraFollowRate 镜头跟随速度（每秒追上的距离比例）
	CameraFollowRate = 8.0
)

// 教学弹窗布局（屏幕坐标，左下角）
const (
	ModalWidth  = 380.0
	ModalHeight = 210.0
	ModalMargin = 16.0

	// ModalButtonWidth "下一步"按钮尺寸，位于弹窗右下角
	ModalButtonWidth  = 96.0
	ModalButtonHeight = 30.0
)

// 建筑内的操作
const (
	// FoodPrice 在市场购买一份食材的价格（金币）
	FoodPrice = 20
	// ActionMessageDuration 操作提示显示时长（秒）
	ActionMessageDuration = 2.5
	// MovementEventInterval 两次 movement 事件的最小间隔（秒）
	MovementEventInterval = 0.25
)

// ModalRect 返回教学弹窗在屏幕上的矩形
func ModalRect() (x, y, w, h float64) {
	return ModalMargin, GameWindowHeight - ModalHeight - ModalMargin, ModalWidth, ModalHeight
}

// ModalButtonRect 返回"下一步"按钮在屏幕上的矩形
func ModalButtonRect() (x, y, w, h float64) {
	mx, my, mw, mh := ModalRect()
	return mx + mw - ModalButtonWidth - 12, my + mh - ModalButtonHeight - 12, ModalButtonWidth, ModalButtonHeight
}

// BuildingLayout 建筑在世界中的矩形区域
type BuildingLayout struct {
	ID     string  // 地点标识，与教学步骤的 Location 对应
	Kind   string  // 建筑类型：market / kitchen / garden
	Label  string  // 地图上显示的名字
	X, Y   float64 // 左上角（世界坐标）
	Width  float64
	Height float64
}

// TownBuildings 返回小镇的建筑布局
func TownBuildings() []BuildingLayout {
	return []BuildingLayout{
		{ID: "market", Kind: "market", Label: "Market", X: 200, Y: 200, Width: 260, Height: 180},
		{ID: "kitchen", Kind: "kitchen", Label: "Kitchen", X: 1140, Y: 200, Width: 240, Height: 180},
		{ID: "garden", Kind: "garden", Label: "Garden", X: 640, Y: 900, Width: 320, Height: 200},
	}
}

// ClampToWorld 将坐标限制在世界范围内（考虑物体尺寸）
func ClampToWorld(x, y, size float64) (float64, float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > WorldWidth-size {
		x = WorldWidth - size
	}
	if y > WorldHeight-size {
		y = WorldHeight - size
	}
	return x, y
}
