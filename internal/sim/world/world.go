package world

import (
	"fmt"
	"sort"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
	"github.com/bovard/battlecode-server-2016/internal/sim/maps"
)

type teamState struct {
	resources float64

	upgrades map[game.Upgrade]bool
	research map[game.Upgrade]int // rounds remaining, keyed only while in progress

	commandersSpawned int
	skills            map[game.CommanderSkillType]bool

	// everHadArchon gates elimination: a team only loses by destruction
	// once an archon it actually fielded has died out.
	everHadArchon bool

	// liveCount tracks constructed, alive robots; buildingCount the ones
	// still under construction.
	liveCount     map[game.RobotType]int
	buildingCount map[game.RobotType]int

	teamMemory    []int64
	oldTeamMemory []int64

	radio map[int]int32

	// Map memory, flattened like the map grids. memRound[i] < 0 means the
	// tile has never been inside any of the team's units' sight.
	memRubble []float64
	memParts  []float64
	memOre    []float64
	memSupply []float64
	memRound  []int32
}

func newTeamState(tiles, memoryLen int) *teamState {
	ts := &teamState{
		upgrades:      map[game.Upgrade]bool{},
		research:      map[game.Upgrade]int{},
		skills:        map[game.CommanderSkillType]bool{},
		liveCount:     map[game.RobotType]int{},
		buildingCount: map[game.RobotType]int{},
		teamMemory:    make([]int64, memoryLen),
		oldTeamMemory: make([]int64, memoryLen),
		radio:         map[int]int32{},
		memRubble:     make([]float64, tiles),
		memParts:      make([]float64, tiles),
		memOre:        make([]float64, tiles),
		memSupply:     make([]float64, tiles),
		memRound:      make([]int32, tiles),
	}
	for i := range ts.memRound {
		ts.memRound[i] = -1
	}
	return ts
}

type pendingDeath struct {
	robot     *InternalRobot
	cause     protocol.DeathCause
	killer    game.Team
	hasKiller bool
	seq       int
}

// GameWorld owns all mutable match state. It is single-threaded: one
// robot's controller runs to completion before the next is visited, and
// every mutation funnels through action arbitration here.
type GameWorld struct {
	gameMap *maps.GameMap
	cfg     MatchConfig

	round      int
	roundLimit int

	nextID int32

	robots   map[int32]*InternalRobot
	robotIDs []int32 // sorted ascending, may contain dead ids until reap
	occupied map[game.MapLocation]int32

	rubble     []float64
	parts      []float64
	ore        []float64
	tileSupply map[game.MapLocation]float64

	teams [4]*teamState

	signals  []protocol.Signal // this round's emission log
	injected []protocol.Signal // verbatim signals for the next round

	pendingDeaths []pendingDeath
	deathSeq      int

	schedule *game.ZombieSpawnSchedule

	result *MatchResult
}

// New builds a world from an immutable map, plants the initial robots and
// credits starting resources.
func New(m *maps.GameMap, cfg MatchConfig) (*GameWorld, error) {
	cfg.applyDefaults()
	tiles := m.Width() * m.Height()
	gw := &GameWorld{
		gameMap:    m,
		cfg:        cfg,
		round:      -1,
		roundLimit: m.Rounds(),
		robots:     map[int32]*InternalRobot{},
		occupied:   map[game.MapLocation]int32{},
		rubble:     make([]float64, tiles),
		parts:      make([]float64, tiles),
		ore:        make([]float64, tiles),
		tileSupply: map[game.MapLocation]float64{},
		schedule:   m.ZombieSchedule(),
	}
	if cfg.RoundLimitOverride > 0 {
		gw.roundLimit = cfg.RoundLimitOverride
	}
	for i := range gw.teams {
		gw.teams[i] = newTeamState(tiles, cfg.TeamMemoryLength)
	}
	origin := m.Origin()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			loc := game.Loc(origin.X+x, origin.Y+y)
			i := y*m.Width() + x
			gw.rubble[i] = m.InitialRubble(loc)
			gw.parts[i] = m.InitialParts(loc)
			gw.ore[i] = m.InitialOre(loc)
		}
	}
	for _, t := range game.PlayerTeams {
		gw.teams[t].resources = game.PartsInitialAmount
	}
	for _, ir := range m.InitialRobots() {
		if _, err := gw.spawnRobot(ir.Type, ir.Team, ir.Loc, 0, 0); err != nil {
			return nil, fmt.Errorf("initial robot %v at %v: %w", ir.Type, ir.Loc, err)
		}
	}
	return gw, nil
}

func (gw *GameWorld) GameMap() *maps.GameMap { return gw.gameMap }

// Round is the current round number, -1 before the first round runs.
func (gw *GameWorld) Round() int { return gw.round }

func (gw *GameWorld) RoundLimit() int { return gw.roundLimit }

func (gw *GameWorld) team(t game.Team) *teamState { return gw.teams[t] }

func (gw *GameWorld) tileIndex(loc game.MapLocation) (int, bool) {
	if !gw.gameMap.OnMap(loc) {
		return 0, false
	}
	origin := gw.gameMap.Origin()
	return (loc.Y-origin.Y)*gw.gameMap.Width() + (loc.X - origin.X), true
}

// Rubble returns the current rubble on a tile; off-map tiles read zero.
func (gw *GameWorld) Rubble(loc game.MapLocation) float64 {
	if i, ok := gw.tileIndex(loc); ok {
		return gw.rubble[i]
	}
	return 0
}

func (gw *GameWorld) Parts(loc game.MapLocation) float64 {
	if i, ok := gw.tileIndex(loc); ok {
		return gw.parts[i]
	}
	return 0
}

func (gw *GameWorld) Ore(loc game.MapLocation) float64 {
	if i, ok := gw.tileIndex(loc); ok {
		return gw.ore[i]
	}
	return 0
}

func (gw *GameWorld) SupplyAt(loc game.MapLocation) float64 { return gw.tileSupply[loc] }

// GetObject returns the live robot occupying loc, if any. Constant time.
func (gw *GameWorld) GetObject(loc game.MapLocation) (*InternalRobot, bool) {
	id, ok := gw.occupied[loc]
	if !ok {
		return nil, false
	}
	r := gw.robots[id]
	if r == nil || r.dead {
		return nil, false
	}
	return r, true
}

// GetRobotByID returns a live robot by id.
func (gw *GameWorld) GetRobotByID(id int32) (*InternalRobot, bool) {
	r := gw.robots[id]
	if r == nil || r.dead {
		return nil, false
	}
	return r, true
}

// AllObjects returns the live robots ordered by ascending id.
func (gw *GameWorld) AllObjects() []*InternalRobot {
	out := make([]*InternalRobot, 0, len(gw.robotIDs))
	for _, id := range gw.robotIDs {
		if r := gw.robots[id]; r != nil && !r.dead {
			out = append(out, r)
		}
	}
	return out
}

// Resources returns a team's current resource pool.
func (gw *GameWorld) Resources(t game.Team) float64 { return gw.team(t).resources }

// AdjustResources applies a delta; a debit past zero is refused.
func (gw *GameWorld) AdjustResources(t game.Team, delta float64) error {
	ts := gw.team(t)
	if ts.resources+delta < 0 {
		return game.NewActionError(game.ErrNotEnoughResource,
			"team %v has %.1f, need %.1f", t, ts.resources, -delta)
	}
	ts.resources += delta
	return nil
}

// RobotTypeCount returns a team's constructed live robots of a type.
func (gw *GameWorld) RobotTypeCount(t game.Team, rt game.RobotType) int {
	return gw.team(t).liveCount[rt]
}

// TotalRobotTypeCount also counts robots still under construction.
func (gw *GameWorld) TotalRobotTypeCount(t game.Team, rt game.RobotType) int {
	ts := gw.team(t)
	return ts.liveCount[rt] + ts.buildingCount[rt]
}

func (gw *GameWorld) hasCommander(t game.Team) bool {
	return gw.RobotTypeCount(t, game.Commander) > 0
}

func (gw *GameWorld) hasSkill(t game.Team, s game.CommanderSkillType) bool {
	return gw.team(t).skills[s]
}

func (gw *GameWorld) hasUpgrade(t game.Team, u game.Upgrade) bool {
	return gw.team(t).upgrades[u]
}

// CanMove reports whether a unit of the given type may be placed on loc:
// on the map, traversable terrain, rubble under the obstruction threshold
// (missiles ignore rubble) and no current occupant.
func (gw *GameWorld) CanMove(loc game.MapLocation, rt game.RobotType) bool {
	i, ok := gw.tileIndex(loc)
	if !ok {
		return false
	}
	if !gw.gameMap.Terrain(loc).IsTraversableBy(rt) {
		return false
	}
	if rt != game.Missile && gw.rubble[i] >= game.RubbleObstructionThresh {
		return false
	}
	_, occupied := gw.GetObject(loc)
	return !occupied
}

// CanAttackSquare applies the attacker's type-specific range window.
func (gw *GameWorld) CanAttackSquare(r *InternalRobot, loc game.MapLocation) bool {
	d := r.Location.DistanceSquaredTo(loc)
	if d < r.Type.MinAttackRadiusSquared() {
		return false
	}
	return d <= r.Type.AttackRadiusSquared()
}

// spawnRobot creates a robot. buildTurns > 0 makes it a nascent robot
// whose tile stays reserved until construction completes. The new robot
// picks up any parts on its tile.
func (gw *GameWorld) spawnRobot(rt game.RobotType, t game.Team, loc game.MapLocation, buildTurns int, builderID int32) (*InternalRobot, error) {
	if !gw.gameMap.OnMap(loc) {
		return nil, game.NewActionError(game.ErrCantMoveThere, "%v is off the map", loc)
	}
	if _, occupied := gw.GetObject(loc); occupied {
		return nil, game.NewActionError(game.ErrCantMoveThere, "%v is occupied", loc)
	}
	gw.nextID++
	maxHealth := rt.MaxHealth()
	if rt.IsZombie() && rt != game.ZombieDen && gw.round >= 0 {
		maxHealth *= game.OutbreakMultiplier(gw.round)
	}
	r := newInternalRobot(gw.nextID, rt, t, loc, maxHealth, buildTurns, builderID, gw.cfg.SignalQueueMax)
	gw.robots[r.ID] = r
	gw.insertID(r.ID)
	gw.occupied[loc] = r.ID
	ts := gw.team(t)
	if buildTurns > 0 {
		ts.buildingCount[rt]++
	} else {
		ts.liveCount[rt]++
	}
	if rt == game.Archon {
		ts.everHadArchon = true
	}
	if rt == game.Commander {
		ts.commandersSpawned++
		ts.skills[game.SkillRegeneration] = true
		ts.skills[game.SkillLeadership] = true
	}
	gw.pickUpParts(r)
	return r, nil
}

// pickUpParts moves tile parts into the team pool when a robot enters.
func (gw *GameWorld) pickUpParts(r *InternalRobot) {
	if !r.Team.IsPlayer() {
		return
	}
	i, ok := gw.tileIndex(r.Location)
	if !ok || gw.parts[i] == 0 {
		return
	}
	gw.team(r.Team).resources += gw.parts[i]
	gw.parts[i] = 0
}

func (gw *GameWorld) insertID(id int32) {
	n := sort.Search(len(gw.robotIDs), func(i int) bool { return gw.robotIDs[i] >= id })
	gw.robotIDs = append(gw.robotIDs, 0)
	copy(gw.robotIDs[n+1:], gw.robotIDs[n:])
	gw.robotIDs[n] = id
}

// moveRobot relocates a robot and settles occupancy and parts pickup.
func (gw *GameWorld) moveRobot(r *InternalRobot, to game.MapLocation) {
	delete(gw.occupied, r.Location)
	r.Location = to
	gw.occupied[to] = r.ID
	gw.pickUpParts(r)
}

// emit appends a signal to this round's emission log.
func (gw *GameWorld) emit(s protocol.Signal) {
	gw.signals = append(gw.signals, s)
}

// InjectSignal appends sig verbatim to the start of the next round's
// event stream. Used by tests and operator tooling.
func (gw *GameWorld) InjectSignal(sig protocol.Signal) {
	gw.injected = append(gw.injected, sig)
}

// Result returns the match verdict once decided.
func (gw *GameWorld) Result() *MatchResult { return gw.result }
