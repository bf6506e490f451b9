package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nutriquest/pkg/components"
	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/ecs"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

func movePlayer(em *ecs.EntityManager, player ecs.EntityID, x, y float64) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, player)
	pos.X, pos.Y = x, y
}

// TestBuildingEntrySystem_FiresOncePerEntry 只在进入的那一帧上报
func TestBuildingEntrySystem_FiresOncePerEntry(t *testing.T) {
	em, player := newTestTown(config.PlayerStartX, config.PlayerStartY)
	sink := &recordingSink{}
	sys := NewBuildingEntrySystem(em, sink)

	sys.Update(1.0 / 60)
	if len(sink.events) != 0 {
		t.Fatalf("Expected no events on the town square, got %v", sink.events)
	}

	movePlayer(em, player, 300, 250)
	sys.Update(1.0 / 60)
	sys.Update(1.0 / 60)
	if len(sink.events) != 1 || sink.events[0] != tutorial.EventEnterBuilding || sink.locations[0] != "market" {
		t.Fatalf("Expected one enter_building at market, got %v %v", sink.events, sink.locations)
	}

	comp, _ := ecs.GetComponent[*components.PlayerComponent](em, player)
	if comp.CurrentBuilding != "market" {
		t.Errorf("CurrentBuilding = %q, want market", comp.CurrentBuilding)
	}

	// 离开再进入会再次上报
	movePlayer(em, player, config.PlayerStartX, config.PlayerStartY)
	sys.Update(1.0 / 60)
	if comp.CurrentBuilding != "" {
		t.Errorf("Expected to be outside, got %q", comp.CurrentBuilding)
	}
	movePlayer(em, player, 1200, 250)
	sys.Update(1.0 / 60)
	if len(sink.events) != 2 || sink.locations[1] != "kitchen" {
		t.Errorf("Expected kitchen entry, got %v", sink.locations)
	}
}

func TestBuildingAtAndByID(t *testing.T) {
	em, _ := newTestTown(config.PlayerStartX, config.PlayerStartY)
	if b := BuildingAt(em, 700, 950); b == nil || b.ID != "garden" {
		t.Errorf("Expected garden at (700, 950), got %+v", b)
	}
	if b := BuildingAt(em, 10, 10); b != nil {
		t.Errorf("Expected no building at (10, 10), got %+v", b)
	}
	if b := BuildingByID(em, "kitchen"); b == nil || b.Kind != components.BuildingKindKitchen {
		t.Errorf("BuildingByID(kitchen) = %+v", b)
	}
	if BuildingByID(em, "") != nil {
		t.Error("Expected nil for empty id")
	}
}

func TestBuildingActionSystem_Market(t *testing.T) {
	em, player := newTestTown(300, 250)
	input := newFakeInput()
	sink := &recordingSink{}
	purse := &fakePurse{coins: config.FoodPrice + 5}

	NewBuildingEntrySystem(em, &recordingSink{}).Update(0)
	sys := NewBuildingActionSystem(em, input, sink, purse, nil)

	sys.Update(1.0 / 60)
	_, hud, _ := firstComponent[*components.HUDComponent](em)
	if hud.Prompt == "" {
		t.Error("Expected an interaction prompt inside the market")
	}
	if len(sink.events) != 0 {
		t.Fatal("No action without pressing E")
	}

	input.tap(ebiten.KeyE)
	sys.Update(1.0 / 60)
	if purse.coins != 5 || sys.Groceries() != 1 {
		t.Errorf("Expected a purchase, coins=%d groceries=%d", purse.coins, sys.Groceries())
	}
	if sink.count(tutorial.EventPurchaseFood) != 1 || sink.locations[0] != "market" {
		t.Errorf("Expected purchase_food at market, got %v %v", sink.events, sink.locations)
	}
	if hud.Message == "" || hud.MessageTimer != config.ActionMessageDuration {
		t.Errorf("Expected a status message, got %+v", hud)
	}

	// 钱不够时不购买也不上报
	input.nextFrame()
	input.tap(ebiten.KeyE)
	sys.Update(1.0 / 60)
	if sys.Groceries() != 1 || sink.count(tutorial.EventPurchaseFood) != 1 {
		t.Error("Purchase must fail without enough coins")
	}
	if hud.Message != "Not enough coins." {
		t.Errorf("Message = %q", hud.Message)
	}

	movePlayer(em, player, config.PlayerStartX, config.PlayerStartY)
	NewBuildingEntrySystem(em, &recordingSink{}).Update(0)
	sys.Update(1.0 / 60)
	if hud.Prompt != "" {
		t.Error("Prompt should clear outside buildings")
	}
}

func TestBuildingActionSystem_KitchenAndGarden(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		want     tutorial.EventKind
		location string
	}{
		{"kitchen", 1200, 250, tutorial.EventCookMeal, "kitchen"},
		{"garden", 700, 950, tutorial.EventPlantSeed, "garden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, _ := newTestTown(tt.x, tt.y)
			input := newFakeInput()
			sink := &recordingSink{}
			NewBuildingEntrySystem(em, &recordingSink{}).Update(0)

			sys := NewBuildingActionSystem(em, input, sink, nil, nil)
			input.tap(ebiten.KeyE)
			sys.Update(1.0 / 60)

			if len(sink.events) != 1 || sink.events[0] != tt.want || sink.locations[0] != tt.location {
				t.Errorf("Expected %s at %s, got %v %v", tt.want, tt.location, sink.events, sink.locations)
			}
		})
	}
}

func TestBuildingActionSystem_OutsideIgnored(t *testing.T) {
	em, _ := newTestTown(config.PlayerStartX, config.PlayerStartY)
	input := newFakeInput()
	sink := &recordingSink{}
	sys := NewBuildingActionSystem(em, input, sink, &fakePurse{coins: 100}, nil)

	input.tap(ebiten.KeyE)
	sys.Update(1.0 / 60)
	if len(sink.events) != 0 {
		t.Errorf("Expected no events outside buildings, got %v", sink.events)
	}
}

func TestHUDSystem(t *testing.T) {
	em, _ := newTestTown(config.PlayerStartX, config.PlayerStartY)
	purse := &fakePurse{coins: 1500}
	store := tutorial.NewDefaultStore()
	store.Start()
	sys := NewHUDSystem(em, purse, store, nil)

	_, hud, _ := firstComponent[*components.HUDComponent](em)
	hud.ShowMessage("hello", 0.5)

	sys.Update(0.25)
	if hud.Coins != 1500 || hud.CoinsLabel != "1,500 coins" {
		t.Errorf("Unexpected coins %d %q", hud.Coins, hud.CoinsLabel)
	}
	if hud.Message != "hello" {
		t.Error("Message should still be visible")
	}

	purse.coins = 20
	store.Pause()
	sys.Update(0.5)
	if hud.CoinsLabel != "20 coins" {
		t.Errorf("CoinsLabel = %q, want 20 coins", hud.CoinsLabel)
	}
	if !hud.Paused || hud.PausedLabel == "" {
		t.Error("Expected paused HUD")
	}
	if hud.Message != "" || hud.MessageTimer != 0 {
		t.Errorf("Expected message expired, got %q %v", hud.Message, hud.MessageTimer)
	}
}
