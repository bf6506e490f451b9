package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/entities"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

// fakeInput 可编程的输入源
type fakeInput struct {
	pressed       map[ebiten.Key]bool
	justPressed   map[ebiten.Key]bool
	mousePressed  bool
	mouseJustDown bool
	cursorX       int
	cursorY       int
	wheelX        float64
	wheelY        float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		pressed:     make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
	}
}

// tap 模拟按下一次按键（仅当前帧）
func (f *fakeInput) tap(key ebiten.Key) {
	f.justPressed[key] = true
}

// click 模拟在 (x, y) 按下左键
func (f *fakeInput) click(x, y int) {
	f.cursorX, f.cursorY = x, y
	f.mousePressed = true
	f.mouseJustDown = true
}

// nextFrame 清除只持续一帧的输入
func (f *fakeInput) nextFrame() {
	f.justPressed = make(map[ebiten.Key]bool)
	f.mouseJustDown = false
	f.wheelX, f.wheelY = 0, 0
}

func (f *fakeInput) IsKeyPressed(key ebiten.Key) bool     { return f.pressed[key] }
func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool { return f.justPressed[key] }
func (f *fakeInput) Wheel() (float64, float64)            { return f.wheelX, f.wheelY }
func (f *fakeInput) CursorPosition() (int, int)           { return f.cursorX, f.cursorY }

func (f *fakeInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return button == ebiten.MouseButtonLeft && f.mousePressed
}

func (f *fakeInput) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	return button == ebiten.MouseButtonLeft && f.mouseJustDown
}

// recordingSink 记录收到的事件
type recordingSink struct {
	events    []tutorial.EventKind
	locations []string
}

func (r *recordingSink) Trigger(kind tutorial.EventKind) bool {
	return r.TriggerAt(kind, "")
}

func (r *recordingSink) TriggerAt(kind tutorial.EventKind, location string) bool {
	r.events = append(r.events, kind)
	r.locations = append(r.locations, location)
	return true
}

func (r *recordingSink) count(kind tutorial.EventKind) int {
	n := 0
	for _, k := range r.events {
		if k == kind {
			n++
		}
	}
	return n
}

// fakePurse 测试用钱包
type fakePurse struct {
	coins int
}

func (p *fakePurse) Balance() int { return p.coins }

func (p *fakePurse) Spend(amount int) bool {
	if amount > p.coins {
		return false
	}
	p.coins -= amount
	return true
}

// newTestTown 创建带玩家、建筑、镜头、弹窗和状态栏的实体管理器
func newTestTown(playerX, playerY float64) (*ecs.EntityManager, ecs.EntityID) {
	em := ecs.NewEntityManager()
	player := entities.NewPlayerEntity(em, playerX, playerY)
	if _, err := entities.NewTownBuildings(em); err != nil {
		panic(err)
	}
	entities.NewCameraEntity(em, playerX, playerY, 1.0)
	entities.NewTutorialModalEntity(em)
	entities.NewHUDEntity(em)
	return em, player
}
