package world

import (
	"testing"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/sim/maps"
)

func signalWorld(t *testing.T, cfg MatchConfig) *GameWorld {
	t.Helper()
	gw, err := New(testMap(t, []maps.InitialRobot{
		{Type: game.Archon, Team: game.TeamA, Loc: game.Loc(2, 2)},
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(3, 2)},
		{Type: game.Soldier, Team: game.TeamB, Loc: game.Loc(2, 3)},
	}, nil), cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return gw
}

func TestMessageSignalCap(t *testing.T) {
	gw := signalWorld(t, MatchConfig{})
	archon := robotByID(t, gw, 1)
	rc := controllerFor(gw, archon)

	for i := 0; i < game.MessageSignalsPerTurn; i++ {
		if err := rc.BroadcastMessageSignal(int32(i), 0, 2); err != nil {
			t.Fatalf("signal %d: %v", i, err)
		}
	}
	wantCode(t, rc.BroadcastMessageSignal(99, 0, 2), game.ErrCantDoThatBro)
	// The failed call does not bump the counter.
	if got := rc.MessageSignalCount(); got != game.MessageSignalsPerTurn {
		t.Fatalf("count=%d want %d", got, game.MessageSignalsPerTurn)
	}
}

func TestBasicSignalCapAndDelivery(t *testing.T) {
	gw := signalWorld(t, MatchConfig{})
	archon := robotByID(t, gw, 1)
	rc := controllerFor(gw, archon)

	for i := 0; i < game.BasicSignalsPerTurn; i++ {
		if err := rc.BroadcastSignal(2); err != nil {
			t.Fatalf("signal %d: %v", i, err)
		}
	}
	wantCode(t, rc.BroadcastSignal(2), game.ErrCantDoThatBro)
	if got := rc.BasicSignalCount(); got != game.BasicSignalsPerTurn {
		t.Fatalf("count=%d", got)
	}

	// Both neighbors got every signal, regardless of team; the sender got
	// nothing.
	for _, id := range []int32{2, 3} {
		r := robotByID(t, gw, id)
		if got := len(r.inbox); got != game.BasicSignalsPerTurn {
			t.Fatalf("robot %d inbox=%d", id, got)
		}
	}
	if len(archon.inbox) != 0 {
		t.Fatal("sender received own signal")
	}

	s, ok := controllerFor(gw, robotByID(t, gw, 2)).ReadSignal()
	if !ok || s.ID != archon.ID || s.Team != game.TeamA || s.Location != archon.Location {
		t.Fatalf("signal=%+v", s)
	}
	if s.Message != nil {
		t.Fatal("basic signal carries a message")
	}
}

func TestSignalRangeSurcharge(t *testing.T) {
	gw := signalWorld(t, MatchConfig{})
	soldier := robotByID(t, gw, 2)
	rc := controllerFor(gw, soldier)

	// Within own sight: free.
	if err := rc.BroadcastSignal(game.Soldier.SensorRadiusSquared()); err != nil {
		t.Fatalf("signal: %v", err)
	}
	if soldier.CoreDelay != 0 || soldier.WeaponDelay != 0 {
		t.Fatalf("in-range signal charged %v/%v", soldier.CoreDelay, soldier.WeaponDelay)
	}

	// Twice the sight radius: base plus one unit of the additional rate.
	if err := rc.BroadcastSignal(2 * game.Soldier.SensorRadiusSquared()); err != nil {
		t.Fatalf("signal: %v", err)
	}
	want := game.BroadcastBaseDelayIncrease + game.BroadcastAdditionalDelayIncrease
	if !almostEqual(soldier.CoreDelay, want) || !almostEqual(soldier.WeaponDelay, want) {
		t.Fatalf("surcharge=%v/%v want %v", soldier.CoreDelay, soldier.WeaponDelay, want)
	}

	wantCode(t, rc.BroadcastSignal(-1), game.ErrCantDoThatBro)
}

func TestInbox_OverflowDropsOldest(t *testing.T) {
	gw := signalWorld(t, MatchConfig{SignalQueueMax: 3})
	rc := controllerFor(gw, robotByID(t, gw, 1))

	for i := 0; i < 5; i++ {
		if err := rc.BroadcastMessageSignal(int32(i), 0, 2); err != nil {
			t.Fatalf("signal %d: %v", i, err)
		}
	}
	got := controllerFor(gw, robotByID(t, gw, 2)).EmptySignalQueue()
	if len(got) != 3 {
		t.Fatalf("inbox=%d want 3", len(got))
	}
	// Oldest discarded first: 2, 3, 4 remain in FIFO order.
	for i, s := range got {
		if s.Message == nil || s.Message[0] != int32(i+2) {
			t.Fatalf("inbox[%d]=%+v", i, s)
		}
	}
	// The queue was cleared atomically.
	if again := controllerFor(gw, robotByID(t, gw, 2)).EmptySignalQueue(); len(again) != 0 {
		t.Fatalf("queue not cleared: %d", len(again))
	}
}

func TestSignalReads_AreIsolatedCopies(t *testing.T) {
	gw := signalWorld(t, MatchConfig{})
	rc := controllerFor(gw, robotByID(t, gw, 1))
	if err := rc.BroadcastMessageSignal(10, 20, 8); err != nil {
		t.Fatalf("signal: %v", err)
	}

	s2, ok := controllerFor(gw, robotByID(t, gw, 2)).ReadSignal()
	if !ok {
		t.Fatal("no signal")
	}
	s2.Message[0] = 999 // recipient scribbles on its copy

	s3, ok := controllerFor(gw, robotByID(t, gw, 3)).ReadSignal()
	if !ok {
		t.Fatal("no signal")
	}
	if s3.Message[0] != 10 || s3.Message[1] != 20 {
		t.Fatalf("mutation leaked across recipients: %+v", s3.Message)
	}
}

func TestSignalDelivery_RespectsRadius(t *testing.T) {
	gw := signalWorld(t, MatchConfig{})
	rc := controllerFor(gw, robotByID(t, gw, 1))

	// Radius 1 reaches the two orthogonal neighbors only if they are at
	// distance 1; both are.
	if err := rc.BroadcastSignal(1); err != nil {
		t.Fatalf("signal: %v", err)
	}
	if len(robotByID(t, gw, 2).inbox) != 1 || len(robotByID(t, gw, 3).inbox) != 1 {
		t.Fatal("neighbors missed radius-1 signal")
	}

	// Radius 0 reaches nobody else.
	if err := rc.BroadcastSignal(0); err != nil {
		t.Fatalf("signal: %v", err)
	}
	if len(robotByID(t, gw, 2).inbox) != 1 {
		t.Fatal("radius-0 signal leaked")
	}
}
