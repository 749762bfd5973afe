// Package maps holds the immutable GameMap value the engine consumes, and
// a YAML loader for authoring maps on disk.
package maps

import (
	"fmt"
	"sort"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

// InitialRobot is a robot planted on the map before round one.
type InitialRobot struct {
	Type game.RobotType
	Team game.Team
	Loc  game.MapLocation
}

// Data is the mutable construction input for a GameMap. New deep-copies
// it; the caller keeps ownership of the slices it passed in.
type Data struct {
	Name    string
	Width   int
	Height  int
	Origin  game.MapLocation
	Rounds  int
	Seed    int64
	Rubble  [][]float64 // row-major, Rubble[y][x]
	Parts   [][]float64
	Ore     [][]float64
	Terrain [][]game.TerrainTile
	Robots  []InitialRobot

	ZombieSchedule *game.ZombieSpawnSchedule
}

// GameMap is immutable after construction. Tiles outside the bounds are
// OFF_MAP with zero rubble, parts and ore.
type GameMap struct {
	name   string
	width  int
	height int
	origin game.MapLocation
	rounds int
	seed   int64

	rubble  []float64
	parts   []float64
	ore     []float64
	terrain []game.TerrainTile

	robots   []InitialRobot
	schedule *game.ZombieSpawnSchedule
}

// New validates and freezes a map.
func New(d Data) (*GameMap, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("map %q: bad dimensions %dx%d", d.Name, d.Width, d.Height)
	}
	if d.Rounds <= 0 {
		d.Rounds = game.DefaultRoundLimit
	}
	m := &GameMap{
		name:    d.Name,
		width:   d.Width,
		height:  d.Height,
		origin:  d.Origin,
		rounds:  d.Rounds,
		seed:    d.Seed,
		rubble:  make([]float64, d.Width*d.Height),
		parts:   make([]float64, d.Width*d.Height),
		ore:     make([]float64, d.Width*d.Height),
		terrain: make([]game.TerrainTile, d.Width*d.Height),
	}
	copyGrid := func(dst []float64, src [][]float64, what string) error {
		if src == nil {
			return nil
		}
		if len(src) != d.Height {
			return fmt.Errorf("map %q: %s has %d rows, want %d", d.Name, what, len(src), d.Height)
		}
		for y, row := range src {
			if len(row) != d.Width {
				return fmt.Errorf("map %q: %s row %d has %d cols, want %d", d.Name, what, y, len(row), d.Width)
			}
			for x, v := range row {
				if v < 0 {
					return fmt.Errorf("map %q: negative %s at (%d,%d)", d.Name, what, x, y)
				}
				dst[y*d.Width+x] = v
			}
		}
		return nil
	}
	if err := copyGrid(m.rubble, d.Rubble, "rubble"); err != nil {
		return nil, err
	}
	if err := copyGrid(m.parts, d.Parts, "parts"); err != nil {
		return nil, err
	}
	if err := copyGrid(m.ore, d.Ore, "ore"); err != nil {
		return nil, err
	}
	if d.Terrain != nil {
		if len(d.Terrain) != d.Height {
			return nil, fmt.Errorf("map %q: terrain has %d rows, want %d", d.Name, len(d.Terrain), d.Height)
		}
		for y, row := range d.Terrain {
			if len(row) != d.Width {
				return nil, fmt.Errorf("map %q: terrain row %d has %d cols, want %d", d.Name, y, len(row), d.Width)
			}
			copy(m.terrain[y*d.Width:(y+1)*d.Width], row)
		}
	}

	seen := map[game.MapLocation]bool{}
	for _, r := range d.Robots {
		if !m.OnMap(r.Loc) {
			return nil, fmt.Errorf("map %q: initial %v off map at %v", d.Name, r.Type, r.Loc)
		}
		if seen[r.Loc] {
			return nil, fmt.Errorf("map %q: two initial robots at %v", d.Name, r.Loc)
		}
		seen[r.Loc] = true
		m.robots = append(m.robots, r)
	}

	if d.ZombieSchedule != nil {
		m.schedule = d.ZombieSchedule.Copy()
	} else {
		m.schedule = game.NewZombieSpawnSchedule()
	}
	return m, nil
}

func (m *GameMap) Name() string              { return m.name }
func (m *GameMap) Width() int                { return m.width }
func (m *GameMap) Height() int               { return m.height }
func (m *GameMap) Origin() game.MapLocation  { return m.origin }
func (m *GameMap) Rounds() int               { return m.rounds }
func (m *GameMap) Seed() int64               { return m.seed }

// OnMap reports whether loc falls inside the map rectangle.
func (m *GameMap) OnMap(loc game.MapLocation) bool {
	x := loc.X - m.origin.X
	y := loc.Y - m.origin.Y
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *GameMap) index(loc game.MapLocation) (int, bool) {
	if !m.OnMap(loc) {
		return 0, false
	}
	return (loc.Y-m.origin.Y)*m.width + (loc.X - m.origin.X), true
}

func (m *GameMap) Terrain(loc game.MapLocation) game.TerrainTile {
	i, ok := m.index(loc)
	if !ok {
		return game.TerrainOffMap
	}
	return m.terrain[i]
}

func (m *GameMap) InitialRubble(loc game.MapLocation) float64 {
	i, ok := m.index(loc)
	if !ok {
		return 0
	}
	return m.rubble[i]
}

func (m *GameMap) InitialParts(loc game.MapLocation) float64 {
	i, ok := m.index(loc)
	if !ok {
		return 0
	}
	return m.parts[i]
}

func (m *GameMap) InitialOre(loc game.MapLocation) float64 {
	i, ok := m.index(loc)
	if !ok {
		return 0
	}
	return m.ore[i]
}

// InitialRobots returns a copy of the planted robots.
func (m *GameMap) InitialRobots() []InitialRobot {
	out := make([]InitialRobot, len(m.robots))
	copy(out, m.robots)
	return out
}

// InitialArchonLocations returns the planted archon positions of a team,
// sorted by (y, x) ascending.
func (m *GameMap) InitialArchonLocations(team game.Team) []game.MapLocation {
	var out []game.MapLocation
	for _, r := range m.robots {
		if r.Type == game.Archon && r.Team == team {
			out = append(out, r.Loc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// ZombieSchedule returns a copy of the spawn schedule; mutating it does
// not affect the map.
func (m *GameMap) ZombieSchedule() *game.ZombieSpawnSchedule {
	return m.schedule.Copy()
}
