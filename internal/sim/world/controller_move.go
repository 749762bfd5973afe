package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// flashRangeSquared bounds the commander's teleport.
const flashRangeSquared = 10

func assertValidDirection(d game.Direction) error {
	if d == game.None || d == game.Omni {
		return game.NewActionError(game.ErrCantDoThatBro, "cannot act in direction %v", d)
	}
	return nil
}

func (rc *RobotController) assertCoreReady() error {
	if !rc.robot.coreActive() {
		return game.NewActionError(game.ErrNotActive, "core delay %.2f", rc.robot.CoreDelay)
	}
	return nil
}

func (rc *RobotController) assertWeaponReady() error {
	if !rc.robot.weaponActive() {
		return game.NewActionError(game.ErrNotActive, "weapon delay %.2f", rc.robot.WeaponDelay)
	}
	return nil
}

// movementDelayTo prices a step: the catalog delay, the diagonal factor,
// doubled when the target tile's rubble is past the slow threshold.
func (gw *GameWorld) movementDelayTo(r *InternalRobot, d game.Direction, target game.MapLocation) float64 {
	delay := r.Type.MovementDelay()
	if d.IsDiagonal() {
		delay *= game.DiagonalDelayMultiplier
	}
	if gw.Rubble(target) > game.RubbleSlowThresh {
		delay *= 2
	}
	return delay
}

// CanMove is the non-acting mirror of Move.
func (rc *RobotController) CanMove(d game.Direction) bool {
	if rc.robot.dead || !rc.robot.Type.CanMove() {
		return false
	}
	if d == game.None || d == game.Omni {
		return false
	}
	return rc.gw.CanMove(rc.robot.Location.Add(d), rc.robot.Type)
}

// Move steps one tile. The location updates immediately; the delay lands
// on the core counter.
func (rc *RobotController) Move(d game.Direction) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if !rc.robot.Type.CanMove() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot move", rc.robot.Type)
	}
	if err := assertValidDirection(d); err != nil {
		return err
	}
	target := rc.robot.Location.Add(d)
	if !rc.gw.CanMove(target, rc.robot.Type) {
		return game.NewActionError(game.ErrCantMoveThere, "cannot move to %v", target)
	}

	delay := rc.gw.movementDelayTo(rc.robot, d, target)
	rc.robot.addDelays(delay, rc.robot.Type.LoadingDelay())
	rc.robot.movedThisTurn = true
	rc.gw.moveRobot(rc.robot, target)
	rc.gw.emit(protocol.MovementSignal{ID: rc.robot.ID, NewLoc: target, Delay: delay})
	return nil
}

// CastFlash teleports a commander that has learned Flash.
func (rc *RobotController) CastFlash(loc game.MapLocation) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if rc.robot.Type != game.Commander {
		return game.NewActionError(game.ErrCantDoThatBro, "only commanders cast flash")
	}
	if !rc.gw.hasSkill(rc.robot.Team, game.SkillFlash) {
		return game.NewActionError(game.ErrCantDoThatBro, "flash not learned")
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if rc.robot.Location.DistanceSquaredTo(loc) > flashRangeSquared {
		return game.NewActionError(game.ErrOutOfRange, "%v is beyond flash range", loc)
	}
	if !rc.gw.CanMove(loc, rc.robot.Type) {
		return game.NewActionError(game.ErrCantMoveThere, "cannot teleport to %v", loc)
	}

	rc.robot.addDelays(game.FlashMovementDelay, rc.robot.Type.LoadingDelay())
	rc.robot.movedThisTurn = true
	rc.gw.moveRobot(rc.robot, loc)
	rc.gw.emit(protocol.CastSignal{ID: rc.robot.ID, TargetLoc: loc})
	return nil
}

// ClearRubble works the tile in direction d down by the clearing formula.
func (rc *RobotController) ClearRubble(d game.Direction) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if !rc.robot.Type.CanMove() && !rc.robot.Type.CanBuild() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot clear rubble", rc.robot.Type)
	}
	if err := assertValidDirection(d); err != nil {
		return err
	}
	target := rc.robot.Location.Add(d)
	i, ok := rc.gw.tileIndex(target)
	if !ok {
		return game.NewActionError(game.ErrCantMoveThere, "%v is off the map", target)
	}

	delay := rc.robot.Type.MovementDelay()
	if rc.gw.rubble[i] > game.RubbleSlowThresh {
		delay *= 2
	}
	rc.robot.addDelays(delay, rc.robot.Type.LoadingDelay())

	cleared := rc.gw.rubble[i]*(1-game.RubbleClearPercentage) - game.RubbleClearFlatAmount
	if cleared < 0 {
		cleared = 0
	}
	rc.gw.rubble[i] = cleared
	rc.gw.emit(protocol.ClearRubbleSignal{ID: rc.robot.ID, Loc: target})
	return nil
}
