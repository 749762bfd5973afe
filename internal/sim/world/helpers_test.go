package world

import (
	"math"
	"testing"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/sim/maps"
)

// testMap builds a flat 10x10 map; mut tweaks the data before freezing.
func testMap(t *testing.T, robots []maps.InitialRobot, mut func(*maps.Data)) *maps.GameMap {
	t.Helper()
	d := maps.Data{
		Name:   "test",
		Width:  10,
		Height: 10,
		Rounds: 2000,
		Seed:   42,
		Robots: robots,
	}
	if mut != nil {
		mut(&d)
	}
	m, err := maps.New(d)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	return m
}

func testWorld(t *testing.T, robots []maps.InitialRobot, mut func(*maps.Data)) *GameWorld {
	t.Helper()
	gw, err := New(testMap(t, robots, mut), MatchConfig{})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return gw
}

// grid fills a width*height float grid with zeros, then applies spots.
func grid(w, h int, spots map[game.MapLocation]float64) [][]float64 {
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	for loc, v := range spots {
		out[loc.Y][loc.X] = v
	}
	return out
}

// scripted turns a per-robot-id script into a player set; every team runs
// the same dispatcher and unscripted robots idle.
func scripted(script map[int32]func(*RobotController)) Players {
	run := func(rc *RobotController) int {
		if f, ok := script[rc.ID()]; ok {
			f(rc)
		}
		return 0
	}
	return Players{
		game.TeamA: run, game.TeamB: run,
		game.TeamNeutral: run, game.TeamZombie: run,
	}
}

// controllerFor hands tests a controller outside the round loop.
func controllerFor(gw *GameWorld, r *InternalRobot) *RobotController {
	return &RobotController{gw: gw, robot: r}
}

func robotByID(t *testing.T, gw *GameWorld, id int32) *InternalRobot {
	t.Helper()
	r, ok := gw.GetRobotByID(id)
	if !ok {
		t.Fatalf("robot %d not alive", id)
	}
	return r
}

func wantCode(t *testing.T, err error, code game.ActionErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	if got := game.CodeOf(err); got != code {
		t.Fatalf("error code = %q want %q (%v)", got, code, err)
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
