package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// miningRate is the catalog rate plus the pickaxe bonus.
func (gw *GameWorld) miningRate(r *InternalRobot) float64 {
	rate := r.Type.MiningRate()
	if r.Team.IsPlayer() && gw.hasUpgrade(r.Team, game.UpgradePickaxe) {
		rate++
	}
	return rate
}

// Mine extracts ore from the tile the miner stands on and credits the
// team directly.
func (rc *RobotController) Mine() error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if !rc.robot.Type.CanMine() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot mine", rc.robot.Type)
	}

	loc := rc.robot.Location
	i, _ := rc.gw.tileIndex(loc)
	mined := rc.gw.miningRate(rc.robot)
	if mined > rc.gw.ore[i] {
		mined = rc.gw.ore[i]
	}
	rc.gw.ore[i] -= mined
	rc.gw.team(rc.robot.Team).resources += mined
	rc.robot.addDelays(game.MiningMovementDelay, game.MiningLoadingDelay)
	rc.gw.emit(protocol.MineSignal{
		ID: rc.robot.ID, Loc: loc, Team: rc.robot.Team.String(), Amount: mined,
	})
	return nil
}

// CanLaunch is the non-acting mirror of LaunchMissile.
func (rc *RobotController) CanLaunch(d game.Direction) bool {
	if rc.robot.dead || !rc.robot.Type.CanLaunch() {
		return false
	}
	if d == game.None || d == game.Omni {
		return false
	}
	if rc.robot.movedThisTurn || rc.robot.MissileCount == 0 {
		return false
	}
	return rc.gw.CanMove(rc.robot.Location.Add(d), game.Missile)
}

// LaunchMissile puts a live missile on the adjacent tile. A launcher that
// has moved this turn cannot launch; moving after a launch is not refused.
func (rc *RobotController) LaunchMissile(d game.Direction) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if !rc.robot.Type.CanLaunch() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot launch missiles", rc.robot.Type)
	}
	if rc.robot.MissileCount == 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "no missiles loaded")
	}
	if rc.robot.movedThisTurn {
		return game.NewActionError(game.ErrCantDoThatBro, "cannot move and launch in the same turn")
	}
	if err := assertValidDirection(d); err != nil {
		return err
	}
	loc := rc.robot.Location.Add(d)
	if !rc.gw.CanMove(loc, game.Missile) {
		return game.NewActionError(game.ErrCantMoveThere, "%v is blocked", loc)
	}

	missile, err := rc.gw.spawnRobot(game.Missile, rc.robot.Team, loc, 0, rc.robot.ID)
	if err != nil {
		return err
	}
	rc.robot.MissileCount--
	rc.gw.emit(protocol.SpawnSignal{
		ID: missile.ID, ParentID: rc.robot.ID, Loc: loc,
		Type: game.Missile.String(), Team: rc.robot.Team.String(),
	})
	return nil
}

// Repair restores an allied robot near the archon. It does not touch the
// weapon counter.
func (rc *RobotController) Repair(loc game.MapLocation) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if rc.robot.Type != game.Archon {
		return game.NewActionError(game.ErrCantDoThatBro, "only archons repair")
	}
	if rc.robot.Location.DistanceSquaredTo(loc) > game.ArchonRepairRadiusSquared {
		return game.NewActionError(game.ErrOutOfRange, "%v is beyond repair range", loc)
	}
	target, ok := rc.gw.GetObject(loc)
	if !ok {
		return game.NewActionError(game.ErrNoRobotThere, "no robot at %v", loc)
	}
	if target.Team != rc.robot.Team {
		return game.NewActionError(game.ErrCantDoThatBro, "cannot repair an enemy")
	}
	if target.ID == rc.robot.ID {
		return game.NewActionError(game.ErrCantDoThatBro, "cannot repair self")
	}

	amount := game.ArchonRepairAmount
	if target.Health+amount > target.MaxHealth {
		amount = target.MaxHealth - target.Health
	}
	target.Health += amount
	rc.gw.emit(protocol.RepairSignal{ID: rc.robot.ID, TargetID: target.ID, Amount: amount})
	return nil
}

// Activate converts an adjacent neutral robot to the caller's team. The
// neutral is consumed cleanly; a fresh robot takes its tile at full
// health.
func (rc *RobotController) Activate(loc game.MapLocation) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if rc.robot.Type != game.Archon {
		return game.NewActionError(game.ErrCantDoThatBro, "only archons activate")
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if !rc.robot.Location.IsAdjacentTo(loc) {
		return game.NewActionError(game.ErrOutOfRange, "%v is not adjacent", loc)
	}
	target, ok := rc.gw.GetObject(loc)
	if !ok {
		return game.NewActionError(game.ErrNoRobotThere, "no robot at %v", loc)
	}
	if target.Team != game.TeamNeutral {
		return game.NewActionError(game.ErrCantDoThatBro, "robot at %v is not neutral", loc)
	}

	rc.gw.kill(target, protocol.CauseActivation, rc.robot.Team, false)
	converted, err := rc.gw.spawnRobot(target.Type, rc.robot.Team, loc, 0, rc.robot.ID)
	if err != nil {
		return err
	}
	rc.robot.addDelays(rc.robot.Type.CooldownDelay(), 0)
	rc.gw.emit(protocol.ActivateSignal{ID: rc.robot.ID, TargetLoc: loc, NewID: converted.ID})
	return nil
}

// ***** supply *****

// DropSupplies moves supply from the robot onto its tile.
func (rc *RobotController) DropSupplies(amount float64) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if amount < 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "negative supply amount")
	}
	if amount > rc.robot.SupplyLevel {
		amount = rc.robot.SupplyLevel
	}
	rc.robot.SupplyLevel -= amount
	loc := rc.robot.Location
	rc.gw.tileSupply[loc] += amount
	rc.gw.emit(protocol.LocationSupplyChangeSignal{Loc: loc, Amount: rc.gw.tileSupply[loc]})
	return nil
}

// PickUpSupplies lifts supply from the robot's tile.
func (rc *RobotController) PickUpSupplies(amount float64) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if amount < 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "negative supply amount")
	}
	loc := rc.robot.Location
	if amount > rc.gw.tileSupply[loc] {
		amount = rc.gw.tileSupply[loc]
	}
	rc.gw.tileSupply[loc] -= amount
	if rc.gw.tileSupply[loc] == 0 {
		delete(rc.gw.tileSupply, loc)
	}
	rc.robot.SupplyLevel += amount
	rc.gw.emit(protocol.LocationSupplyChangeSignal{Loc: loc, Amount: rc.gw.tileSupply[loc]})
	return nil
}

// TransferSupplies hands supply to a robot within transfer range.
func (rc *RobotController) TransferSupplies(amount float64, loc game.MapLocation) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if amount < 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "negative supply amount")
	}
	if rc.robot.Location.DistanceSquaredTo(loc) > game.SupplyTransferRadiusSquared {
		return game.NewActionError(game.ErrOutOfRange, "%v is beyond transfer range", loc)
	}
	target, ok := rc.gw.GetObject(loc)
	if !ok {
		return game.NewActionError(game.ErrNoRobotThere, "no robot at %v to receive supply", loc)
	}
	if amount > rc.robot.SupplyLevel {
		amount = rc.robot.SupplyLevel
	}
	rc.robot.SupplyLevel -= amount
	target.SupplyLevel += amount
	return nil
}

// ***** team memory *****

// SetTeamMemory overwrites one slot of the team's persistent array.
func (rc *RobotController) SetTeamMemory(index int, value int64) {
	ts := rc.gw.team(rc.robot.Team)
	if index >= 0 && index < len(ts.teamMemory) {
		ts.teamMemory[index] = value
	}
}

// SetTeamMemoryMasked merges value into the slot under mask.
func (rc *RobotController) SetTeamMemoryMasked(index int, value, mask int64) {
	ts := rc.gw.team(rc.robot.Team)
	if index >= 0 && index < len(ts.teamMemory) {
		ts.teamMemory[index] = (ts.teamMemory[index] &^ mask) | (value & mask)
	}
}

// TeamMemory returns a copy of the snapshot captured at round start;
// writes made this round are not visible until the next.
func (rc *RobotController) TeamMemory() []int64 {
	old := rc.gw.team(rc.robot.Team).oldTeamMemory
	out := make([]int64, len(old))
	copy(out, old)
	return out
}

// ***** debug channel *****

// SetIndicatorString is viewer-only state; out-of-range indexes are
// ignored.
func (rc *RobotController) SetIndicatorString(index int, value string) {
	if index < 0 || index >= game.NumberOfIndicatorStrings {
		return
	}
	rc.robot.indicatorStrings[index] = value
	rc.gw.emit(protocol.IndicatorStringSignal{ID: rc.robot.ID, Index: index, Value: value})
}

func (rc *RobotController) SetIndicatorDot(loc game.MapLocation, red, green, blue int) {
	rc.gw.emit(protocol.IndicatorDotSignal{
		ID: rc.robot.ID, Team: rc.robot.Team.String(), Loc: loc,
		Red: red, Green: green, Blue: blue,
	})
}

func (rc *RobotController) SetIndicatorLine(from, to game.MapLocation, red, green, blue int) {
	rc.gw.emit(protocol.IndicatorLineSignal{
		ID: rc.robot.ID, Team: rc.robot.Team.String(), From: from, To: to,
		Red: red, Green: green, Blue: blue,
	})
}

func (rc *RobotController) AddMatchObservation(observation string) {
	rc.gw.emit(protocol.MatchObservationSignal{ID: rc.robot.ID, Observation: observation})
}
