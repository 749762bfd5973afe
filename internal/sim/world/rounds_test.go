package world

import (
	"testing"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
	"github.com/bovard/battlecode-server-2016/internal/sim/maps"
)

func TestDelayDecayRate(t *testing.T) {
	limit := game.Soldier.BytecodeLimit()
	free := game.Soldier.FreeBytecodes()
	cases := []struct {
		used int
		want float64
	}{
		{0, 1.0},
		{free, 1.0},
		{limit, game.DelayDecayMinRate},
		{limit + 5000, game.DelayDecayMinRate},
	}
	for _, c := range cases {
		if got := delayDecayRate(c.used, free, limit); got != c.want {
			t.Fatalf("decay(%d)=%v want %v", c.used, got, c.want)
		}
	}
	// Between the free budget and the limit the rate falls monotonically.
	prev := 1.0
	for used := free + 1; used < limit; used += 500 {
		got := delayDecayRate(used, free, limit)
		if got >= prev || got < game.DelayDecayMinRate {
			t.Fatalf("decay(%d)=%v not in (%v, %v)", used, got, game.DelayDecayMinRate, prev)
		}
		prev = got
	}
}

func TestBytecodeUsageSlowsRecovery(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(2, 2)},
	}, nil)
	soldier := robotByID(t, gw, 1)
	limit := game.Soldier.BytecodeLimit()

	// A maxed-out turn decays delays by only the floor rate.
	heavy := Players{game.TeamA: func(rc *RobotController) int {
		if rc.CoreDelay() == 0 {
			if err := rc.Move(game.East); err != nil {
				t.Fatalf("move: %v", err)
			}
		}
		return limit
	}}
	gw.RunRound(heavy)
	want := game.Soldier.MovementDelay() - game.DelayDecayMinRate
	if !almostEqual(soldier.CoreDelay, want) {
		t.Fatalf("core=%v want %v", soldier.CoreDelay, want)
	}
}

func TestRadioVisibility(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(1, 1)},
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(8, 8)},
		{Type: game.Soldier, Team: game.TeamB, Loc: game.Loc(4, 4)},
	}, nil)

	reads := map[int32]int32{}
	gw.RunRound(scripted(map[int32]func(*RobotController){
		1: func(rc *RobotController) {
			if err := rc.Broadcast(7, 42); err != nil {
				t.Fatalf("broadcast: %v", err)
			}
			// The writer reads its own queued value back this turn.
			v, err := rc.ReadBroadcast(7)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			reads[1] = v
			if !rc.HasBroadcasted() {
				t.Fatal("HasBroadcasted false after write")
			}
		},
		// A later-visited teammate sees the flushed value.
		2: func(rc *RobotController) {
			v, _ := rc.ReadBroadcast(7)
			reads[2] = v
		},
		// The enemy team's radio is separate.
		3: func(rc *RobotController) {
			v, _ := rc.ReadBroadcast(7)
			reads[3] = v
		},
	}))
	if reads[1] != 42 || reads[2] != 42 || reads[3] != 0 {
		t.Fatalf("reads=%v", reads)
	}

	// The value persists into the next round.
	gw.RunRound(scripted(map[int32]func(*RobotController){
		1: func(rc *RobotController) {
			if v, _ := rc.ReadBroadcast(7); v != 42 {
				t.Fatalf("next round read=%d", v)
			}
		},
	}))

	// Channel range is closed.
	rc := controllerFor(gw, robotByID(t, gw, 1))
	wantCode(t, rc.Broadcast(-1, 0), game.ErrCantDoThatBro)
	wantCode(t, rc.Broadcast(game.BroadcastMaxChannels+1, 0), game.ErrCantDoThatBro)
}

func TestTeamMemory_SnapshotSemantics(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(1, 1)},
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(8, 8)},
	}, nil)

	gw.RunRound(scripted(map[int32]func(*RobotController){
		1: func(rc *RobotController) {
			rc.SetTeamMemory(0, 7)
			rc.SetTeamMemoryMasked(1, 0xAB, 0xFF)
		},
		// Same round: the query still returns the round-start snapshot.
		2: func(rc *RobotController) {
			if got := rc.TeamMemory()[0]; got != 0 {
				t.Fatalf("same-round memory=%d", got)
			}
		},
	}))

	gw.RunRound(scripted(map[int32]func(*RobotController){
		2: func(rc *RobotController) {
			mem := rc.TeamMemory()
			if mem[0] != 7 || mem[1] != 0xAB {
				t.Fatalf("next-round memory=%v", mem[:2])
			}
			// The returned slice is a defensive copy.
			mem[0] = 999
		},
	}))

	gw.RunRound(scripted(map[int32]func(*RobotController){
		1: func(rc *RobotController) {
			if got := rc.TeamMemory()[0]; got != 7 {
				t.Fatalf("copy mutation leaked: %d", got)
			}
		},
	}))
}

func TestTeamMemoryMasked_MergesBits(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(1, 1)},
	}, nil)
	rc := controllerFor(gw, robotByID(t, gw, 1))

	rc.SetTeamMemory(3, 0x1234)
	rc.SetTeamMemoryMasked(3, 0xFF00, 0xF000)
	ts := gw.team(game.TeamA)
	if got := ts.teamMemory[3]; got != 0xF234 {
		t.Fatalf("masked write=%#x want 0xF234", got)
	}
	// Out-of-range slots are ignored.
	rc.SetTeamMemory(-1, 1)
	rc.SetTeamMemory(len(ts.teamMemory), 1)
}

func TestIncome_FloorsAtZero(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamB, Loc: game.Loc(1, 1)},
		{Type: game.Soldier, Team: game.TeamB, Loc: game.Loc(2, 1)},
		{Type: game.Archon, Team: game.TeamA, Loc: game.Loc(8, 8)},
	}, nil)
	gw.team(game.TeamB).resources = 0

	gw.RunRound(nil)
	if got := gw.Resources(game.TeamB); got != 0 {
		t.Fatalf("archonless income=%v, must not go negative", got)
	}
	if got := gw.Resources(game.TeamA); !almostEqual(got, game.PartsInitialAmount+game.ArchonPartIncome) {
		t.Fatalf("team A resources=%v", got)
	}
}

func TestInjectSignal_AppearsInNextRoundStream(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Soldier, Team: game.TeamA, Loc: game.Loc(1, 1)},
	}, nil)
	injected := protocol.Signal(protocol.MatchObservationSignal{ID: 99, Observation: "operator note"})
	gw.InjectSignal(injected)

	delta, _ := gw.RunRound(nil)
	if len(delta.Signals) == 0 || delta.Signals[0] != injected {
		t.Fatalf("injected signal not first in stream: %+v", delta.Signals)
	}

	delta, _ = gw.RunRound(nil)
	for _, s := range delta.Signals {
		if s == injected {
			t.Fatal("injected signal repeated")
		}
	}
}

func TestNascentRobotDoesNotAct(t *testing.T) {
	gw := testWorld(t, []maps.InitialRobot{
		{Type: game.Archon, Team: game.TeamA, Loc: game.Loc(5, 5)},
	}, nil)
	archon := robotByID(t, gw, 1)
	if err := controllerFor(gw, archon).Spawn(game.East, game.Soldier); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	soldier := robotByID(t, gw, 2)

	ran := false
	gw.RunRound(scripted(map[int32]func(*RobotController){
		soldier.ID: func(rc *RobotController) { ran = true },
	}))
	if ran {
		t.Fatal("robot under construction got a turn")
	}
	// The reserved tile refuses placement for the whole build.
	if gw.CanMove(game.Loc(6, 5), game.Soldier) {
		t.Fatal("reserved tile accepted placement")
	}
}
