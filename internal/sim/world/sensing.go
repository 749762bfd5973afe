package world

import (
	"math"
	"sort"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

// effectiveSensorRadiusSquared is the catalog radius plus the vision
// upgrade bonus.
func (gw *GameWorld) effectiveSensorRadiusSquared(r *InternalRobot) int {
	radius := r.Type.SensorRadiusSquared()
	if r.Team.IsPlayer() && gw.hasUpgrade(r.Team, game.UpgradeVision) {
		radius += visionUpgradeBonus
	}
	return radius
}

const visionUpgradeBonus = 11

// canSenseLocation reports whether loc is currently inside r's own sight.
// Zombies see the whole map.
func (gw *GameWorld) canSenseLocation(r *InternalRobot, loc game.MapLocation) bool {
	if r.Team == game.TeamZombie {
		return true
	}
	return r.Location.DistanceSquaredTo(loc) <= gw.effectiveSensorRadiusSquared(r)
}

// canSenseObject: a robot always senses its teammates, and anything whose
// location it can currently see.
func (gw *GameWorld) canSenseObject(r *InternalRobot, target *InternalRobot) bool {
	if target.dead {
		return false
	}
	if target.Team == r.Team {
		return true
	}
	return gw.canSenseLocation(r, target.Location)
}

// rememberSight records the current tile values over r's sight into its
// team's map memory. Runs when r's turn ends; collectively every living
// unit refreshes its sight once per round.
func (gw *GameWorld) rememberSight(r *InternalRobot) {
	if !r.Team.IsPlayer() {
		return
	}
	ts := gw.team(r.Team)
	radiusSq := gw.effectiveSensorRadiusSquared(r)
	reach := int(math.Sqrt(float64(radiusSq)))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if dx*dx+dy*dy > radiusSq {
				continue
			}
			loc := game.Loc(r.Location.X+dx, r.Location.Y+dy)
			i, ok := gw.tileIndex(loc)
			if !ok {
				continue
			}
			ts.memRubble[i] = gw.rubble[i]
			ts.memParts[i] = gw.parts[i]
			ts.memOre[i] = gw.ore[i]
			ts.memSupply[i] = gw.tileSupply[loc]
			ts.memRound[i] = int32(gw.round)
		}
	}
}

// senseTile returns current when in sight, the memorized value when the
// team has one, else -1.
func (gw *GameWorld) senseTile(r *InternalRobot, loc game.MapLocation, current func(int) float64, memory func(*teamState, int) float64) float64 {
	i, ok := gw.tileIndex(loc)
	if !ok {
		return -1
	}
	if gw.canSenseLocation(r, loc) {
		return current(i)
	}
	if !r.Team.IsPlayer() {
		return -1
	}
	ts := gw.team(r.Team)
	if ts.memRound[i] < 0 {
		return -1
	}
	return memory(ts, i)
}

// SenseRubble implements the memoized rubble read for r.
func (gw *GameWorld) SenseRubble(r *InternalRobot, loc game.MapLocation) float64 {
	return gw.senseTile(r, loc,
		func(i int) float64 { return gw.rubble[i] },
		func(ts *teamState, i int) float64 { return ts.memRubble[i] })
}

func (gw *GameWorld) SenseParts(r *InternalRobot, loc game.MapLocation) float64 {
	return gw.senseTile(r, loc,
		func(i int) float64 { return gw.parts[i] },
		func(ts *teamState, i int) float64 { return ts.memParts[i] })
}

func (gw *GameWorld) SenseOre(r *InternalRobot, loc game.MapLocation) float64 {
	return gw.senseTile(r, loc,
		func(i int) float64 { return gw.ore[i] },
		func(ts *teamState, i int) float64 { return ts.memOre[i] })
}

func (gw *GameWorld) SenseSupply(r *InternalRobot, loc game.MapLocation) float64 {
	return gw.senseTile(r, loc,
		func(i int) float64 { return gw.tileSupply[loc] },
		func(ts *teamState, i int) float64 { return ts.memSupply[i] })
}

// SenseTerrain returns the tile's terrain when it is in sight or has ever
// been observed by the team; ok is false for never-seen tiles.
func (gw *GameWorld) SenseTerrain(r *InternalRobot, loc game.MapLocation) (game.TerrainTile, bool) {
	if !gw.gameMap.OnMap(loc) {
		return game.TerrainOffMap, true
	}
	if gw.canSenseLocation(r, loc) {
		return gw.gameMap.Terrain(loc), true
	}
	if r.Team.IsPlayer() {
		if i, ok := gw.tileIndex(loc); ok && gw.team(r.Team).memRound[i] >= 0 {
			return gw.gameMap.Terrain(loc), true
		}
	}
	return game.TerrainOffMap, false
}

// SensePartLocations lists tiles in r's current sight holding parts,
// within radiusSquared of r (negative radius means anywhere in sight),
// scanning rows north to south, west to east.
func (gw *GameWorld) SensePartLocations(r *InternalRobot, radiusSquared int) []game.MapLocation {
	sightSq := gw.effectiveSensorRadiusSquared(r)
	if radiusSquared >= 0 && radiusSquared < sightSq {
		sightSq = radiusSquared
	}
	reach := int(math.Sqrt(float64(sightSq)))
	var out []game.MapLocation
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if dx*dx+dy*dy > sightSq {
				continue
			}
			loc := game.Loc(r.Location.X+dx, r.Location.Y+dy)
			if !gw.canSenseLocation(r, loc) {
				continue
			}
			if i, ok := gw.tileIndex(loc); ok && gw.parts[i] > 0 {
				out = append(out, loc)
			}
		}
	}
	return out
}

// SenseNearbyRobots filters live robots around center: within
// radiusSquared (negative means unbounded), sensable by r, optionally on
// one team, excluding r itself. Ascending id order.
func (gw *GameWorld) SenseNearbyRobots(r *InternalRobot, center game.MapLocation, radiusSquared int, team *game.Team) []game.RobotInfo {
	var out []game.RobotInfo
	for _, other := range gw.AllObjects() {
		if other.ID == r.ID {
			continue
		}
		if radiusSquared >= 0 && other.Location.DistanceSquaredTo(center) > radiusSquared {
			continue
		}
		if team != nil && other.Team != *team {
			continue
		}
		if !gw.canSenseObject(r, other) {
			continue
		}
		out = append(out, other.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
