package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
)

// RobotController is the only surface player code acts through. Every
// action follows the same shape: validate, charge costs and delays, emit
// a signal, mutate state. Failures return a typed *game.ActionError and
// leave the world untouched.
type RobotController struct {
	gw    *GameWorld
	robot *InternalRobot
}

// assertAlive refuses everything once the robot has died mid-turn
// (disintegrate, explode): the frame is treated as if it had yielded.
func (rc *RobotController) assertAlive() error {
	if rc.robot.dead {
		return game.NewActionError(game.ErrCantDoThatBro, "robot %d is dead", rc.robot.ID)
	}
	return nil
}

// ***** global queries *****

func (rc *RobotController) Round() int      { return rc.gw.round }
func (rc *RobotController) RoundLimit() int { return rc.gw.roundLimit }
func (rc *RobotController) MapWidth() int   { return rc.gw.gameMap.Width() }
func (rc *RobotController) MapHeight() int  { return rc.gw.gameMap.Height() }

// TeamParts is the caller team's current resource pool.
func (rc *RobotController) TeamParts() float64 { return rc.gw.Resources(rc.robot.Team) }

// InitialArchonLocations returns a team's planted archons, (y, x)
// ascending.
func (rc *RobotController) InitialArchonLocations(t game.Team) []game.MapLocation {
	return rc.gw.gameMap.InitialArchonLocations(t)
}

// ZombieSpawnSchedule returns a private copy of the match schedule.
func (rc *RobotController) ZombieSpawnSchedule() *game.ZombieSpawnSchedule {
	return rc.gw.schedule.Copy()
}

// ***** unit queries *****

func (rc *RobotController) ID() int32                  { return rc.robot.ID }
func (rc *RobotController) Team() game.Team            { return rc.robot.Team }
func (rc *RobotController) Type() game.RobotType       { return rc.robot.Type }
func (rc *RobotController) Location() game.MapLocation { return rc.robot.Location }
func (rc *RobotController) Health() float64            { return rc.robot.Health }
func (rc *RobotController) CoreDelay() float64         { return rc.robot.CoreDelay }
func (rc *RobotController) WeaponDelay() float64       { return rc.robot.WeaponDelay }
func (rc *RobotController) SupplyLevel() float64       { return rc.robot.SupplyLevel }
func (rc *RobotController) XP() int                    { return rc.robot.XP }
func (rc *RobotController) MissileCount() int          { return rc.robot.MissileCount }

// IsCoreReady reports whether movement-class actions are legal now.
func (rc *RobotController) IsCoreReady() bool { return rc.robot.coreActive() }

// IsWeaponReady reports whether attack-class actions are legal now.
func (rc *RobotController) IsWeaponReady() bool { return rc.robot.weaponActive() }

// ***** commander queries *****

func (rc *RobotController) HasCommander() bool { return rc.gw.hasCommander(rc.robot.Team) }

func (rc *RobotController) HasLearnedSkill(s game.CommanderSkillType) (bool, error) {
	if !rc.HasCommander() {
		return false, game.NewActionError(game.ErrCantDoThatBro, "team %v has no commander", rc.robot.Team)
	}
	return rc.gw.hasSkill(rc.robot.Team, s), nil
}

// ***** sensing *****

// CanSenseLocation reports whether loc is in the caller's current sight.
func (rc *RobotController) CanSenseLocation(loc game.MapLocation) bool {
	return rc.gw.canSenseLocation(rc.robot, loc)
}

func (rc *RobotController) assertCanSense(loc game.MapLocation) error {
	if !rc.CanSenseLocation(loc) {
		return game.NewActionError(game.ErrCantSenseThat, "%v is out of sensor range", loc)
	}
	return nil
}

// SenseRubble returns current rubble when in sight, the team's memorized
// value otherwise, and -1 for never-observed tiles.
func (rc *RobotController) SenseRubble(loc game.MapLocation) float64 {
	return rc.gw.SenseRubble(rc.robot, loc)
}

func (rc *RobotController) SenseParts(loc game.MapLocation) float64 {
	return rc.gw.SenseParts(rc.robot, loc)
}

func (rc *RobotController) SenseOre(loc game.MapLocation) float64 {
	return rc.gw.SenseOre(rc.robot, loc)
}

func (rc *RobotController) SenseSupplyLevelAtLocation(loc game.MapLocation) float64 {
	return rc.gw.SenseSupply(rc.robot, loc)
}

// SenseTerrainTile reports a tile the team has observed; the error is
// CANT_SENSE_THAT for never-seen tiles.
func (rc *RobotController) SenseTerrainTile(loc game.MapLocation) (game.TerrainTile, error) {
	tile, known := rc.gw.SenseTerrain(rc.robot, loc)
	if !known {
		return game.TerrainOffMap, game.NewActionError(game.ErrCantSenseThat, "%v has never been observed", loc)
	}
	return tile, nil
}

// SensePartLocations lists in-sight tiles holding parts within
// radiusSquared; negative means anywhere in sight.
func (rc *RobotController) SensePartLocations(radiusSquared int) []game.MapLocation {
	return rc.gw.SensePartLocations(rc.robot, radiusSquared)
}

// IsLocationOccupied requires the tile to be in sight.
func (rc *RobotController) IsLocationOccupied(loc game.MapLocation) (bool, error) {
	if err := rc.assertCanSense(loc); err != nil {
		return false, err
	}
	_, ok := rc.gw.GetObject(loc)
	return ok, nil
}

// SenseRobotAtLocation returns the occupant's snapshot, or NO_ROBOT_THERE.
func (rc *RobotController) SenseRobotAtLocation(loc game.MapLocation) (game.RobotInfo, error) {
	if err := rc.assertCanSense(loc); err != nil {
		return game.RobotInfo{}, err
	}
	r, ok := rc.gw.GetObject(loc)
	if !ok || !rc.gw.canSenseObject(rc.robot, r) {
		return game.RobotInfo{}, game.NewActionError(game.ErrNoRobotThere, "no robot at %v", loc)
	}
	return r.Info(), nil
}

// SenseNearbyRobots returns sensable robots around the caller. A negative
// radius is unbounded; a nil team matches everyone.
func (rc *RobotController) SenseNearbyRobots(radiusSquared int, team *game.Team) []game.RobotInfo {
	return rc.gw.SenseNearbyRobots(rc.robot, rc.robot.Location, radiusSquared, team)
}

// SenseNearbyRobotsAt is the centered variant.
func (rc *RobotController) SenseNearbyRobotsAt(center game.MapLocation, radiusSquared int, team *game.Team) []game.RobotInfo {
	return rc.gw.SenseNearbyRobots(rc.robot, center, radiusSquared, team)
}

// CheckDependencyProgress reports how far the team is toward owning type
// rt: DONE with a constructed one, INPROGRESS with one building.
func (rc *RobotController) CheckDependencyProgress(rt game.RobotType) game.DependencyProgress {
	team := rc.robot.Team
	if rc.gw.RobotTypeCount(team, rt) > 0 {
		return game.DependencyDone
	}
	if rc.gw.TotalRobotTypeCount(team, rt) > 0 {
		return game.DependencyInProgress
	}
	return game.DependencyNone
}
