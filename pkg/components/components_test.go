package components

import (
	"math"
	"testing"
)

func TestBuildingContains(t *testing.T) {
	b := &BuildingComponent{ID: "market", Width: 100, Height: 50}
	pos := &PositionComponent{X: 200, Y: 100}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"左上角", 200, 100, true},
		{"内部", 250, 120, true},
		{"右边界外", 300, 120, false},
		{"下边界外", 250, 150, false},
		{"左侧", 199, 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(pos, tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestCameraRoundTrip 世界坐标和屏幕坐标互相转换
func TestCameraRoundTrip(t *testing.T) {
	cam := &CameraComponent{CenterX: 800, CenterY: 600, Zoom: 1.5}

	sx, sy := cam.WorldToScreen(800, 600, 800, 600)
	if sx != 400 || sy != 300 {
		t.Errorf("Camera center should map to screen center, got (%v, %v)", sx, sy)
	}

	sx, sy = cam.WorldToScreen(123, 456, 800, 600)
	wx, wy := cam.ScreenToWorld(sx, sy, 800, 600)
	if math.Abs(wx-123) > 1e-9 || math.Abs(wy-456) > 1e-9 {
		t.Errorf("Round trip = (%v, %v), want (123, 456)", wx, wy)
	}
}

func TestPlayerCenter(t *testing.T) {
	p := &PlayerComponent{Size: 24}
	x, y := p.Center(&PositionComponent{X: 100, Y: 50})
	if x != 112 || y != 62 {
		t.Errorf("Center = (%v, %v), want (112, 62)", x, y)
	}
}

func TestHUDShowMessage(t *testing.T) {
	hud := &HUDComponent{}
	hud.ShowMessage("hello", 2.5)
	if hud.Message != "hello" || hud.MessageTimer != 2.5 {
		t.Errorf("Unexpected HUD state: %+v", hud)
	}
	if (&VelocityComponent{}).IsMoving() {
		t.Error("Zero velocity should not be moving")
	}
}
