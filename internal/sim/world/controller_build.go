package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// spawnCost doubles the commander's price for every commander the team
// has already fielded, capped at eight doublings.
func (gw *GameWorld) spawnCost(t game.Team, rt game.RobotType) float64 {
	cost := rt.PartCost()
	if rt == game.Commander {
		doublings := gw.team(t).commandersSpawned
		if doublings > game.CommanderMaxCostDoublings {
			doublings = game.CommanderMaxCostDoublings
		}
		cost *= float64(int(1) << doublings)
	}
	return cost
}

// CanSpawn is the non-acting mirror of Spawn.
func (rc *RobotController) CanSpawn(d game.Direction, rt game.RobotType) bool {
	if rc.robot.dead || !rc.robot.Type.CanSpawn() {
		return false
	}
	if src, ok := rt.SpawnSource(); !ok || src != rc.robot.Type {
		return false
	}
	if rt == game.Commander && rc.HasCommander() {
		return false
	}
	if d == game.None || d == game.Omni {
		return false
	}
	if rc.gw.spawnCost(rc.robot.Team, rt) > rc.TeamParts() {
		return false
	}
	return rc.gw.CanMove(rc.robot.Location.Add(d), rt)
}

// Spawn starts producing a unit on an adjacent tile. The tile is occupied
// by the nascent robot for the whole build; the producer's core is busy
// for the same stretch.
func (rc *RobotController) Spawn(d game.Direction, rt game.RobotType) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if !rc.robot.Type.CanSpawn() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot spawn", rc.robot.Type)
	}
	if src, ok := rt.SpawnSource(); !ok || src != rc.robot.Type {
		return game.NewActionError(game.ErrCantDoThatBro, "%v is not spawned by %v", rt, rc.robot.Type)
	}
	if rt == game.Commander && rc.HasCommander() {
		return game.NewActionError(game.ErrCantDoThatBro, "one commander per team")
	}
	if err := assertValidDirection(d); err != nil {
		return err
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	cost := rc.gw.spawnCost(rc.robot.Team, rt)
	if cost > rc.TeamParts() {
		return game.NewActionError(game.ErrNotEnoughResource,
			"need %.1f parts, have %.1f", cost, rc.TeamParts())
	}
	loc := rc.robot.Location.Add(d)
	if !rc.gw.CanMove(loc, rt) {
		return game.NewActionError(game.ErrCantMoveThere, "%v is blocked", loc)
	}

	child, err := rc.gw.spawnRobot(rt, rc.robot.Team, loc, rt.BuildTurns(), rc.robot.ID)
	if err != nil {
		return err
	}
	rc.gw.team(rc.robot.Team).resources -= cost
	rc.robot.addDelays(float64(rt.BuildTurns()), 0)
	rc.gw.emit(protocol.SpawnSignal{
		ID: child.ID, ParentID: rc.robot.ID, Loc: loc,
		Type: rt.String(), Team: rc.robot.Team.String(), Delay: rt.BuildTurns(),
	})
	return nil
}

// CanBuild is the non-acting mirror of Build.
func (rc *RobotController) CanBuild(d game.Direction, rt game.RobotType) bool {
	if rc.robot.dead || !rc.robot.Type.CanBuild() || !rt.IsBuilding() {
		return false
	}
	if dep, ok := rt.Dependency(); ok && rc.gw.RobotTypeCount(rc.robot.Team, dep) == 0 {
		return false
	}
	if d == game.None || d == game.Omni {
		return false
	}
	if rt.PartCost() > rc.TeamParts() {
		return false
	}
	return rc.gw.CanMove(rc.robot.Location.Add(d), rt)
}

// Build erects a building on an adjacent tile. Unlike Spawn it demands a
// completed dependency and busies both of the builder's counters.
func (rc *RobotController) Build(d game.Direction, rt game.RobotType) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if !rc.robot.Type.CanBuild() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot build", rc.robot.Type)
	}
	if !rt.IsBuilding() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v is not a building", rt)
	}
	if dep, ok := rt.Dependency(); ok && rc.gw.RobotTypeCount(rc.robot.Team, dep) == 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "%v requires a completed %v", rt, dep)
	}
	if err := assertValidDirection(d); err != nil {
		return err
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if rt.PartCost() > rc.TeamParts() {
		return game.NewActionError(game.ErrNotEnoughResource,
			"need %.1f parts, have %.1f", rt.PartCost(), rc.TeamParts())
	}
	loc := rc.robot.Location.Add(d)
	if !rc.gw.CanMove(loc, rt) {
		return game.NewActionError(game.ErrCantMoveThere, "%v is blocked", loc)
	}

	child, err := rc.gw.spawnRobot(rt, rc.robot.Team, loc, rt.BuildTurns(), rc.robot.ID)
	if err != nil {
		return err
	}
	rc.gw.team(rc.robot.Team).resources -= rt.PartCost()
	turns := float64(rt.BuildTurns())
	rc.robot.addDelays(turns, turns)
	rc.gw.emit(protocol.SpawnSignal{
		ID: child.ID, ParentID: rc.robot.ID, Loc: loc,
		Type: rt.String(), Team: rc.robot.Team.String(), Delay: rt.BuildTurns(),
	})
	return nil
}

// ***** research *****

func (rc *RobotController) HasUpgrade(u game.Upgrade) bool {
	return rc.gw.hasUpgrade(rc.robot.Team, u)
}

// CheckResearchProgress returns the rounds left on an in-progress
// upgrade, 0 otherwise.
func (rc *RobotController) CheckResearchProgress(u game.Upgrade) int {
	return rc.gw.team(rc.robot.Team).research[u]
}

// CanResearch is the non-acting mirror of ResearchUpgrade.
func (rc *RobotController) CanResearch(u game.Upgrade) bool {
	if rc.robot.dead || !rc.robot.Type.CanResearch() {
		return false
	}
	if rc.HasUpgrade(u) || rc.CheckResearchProgress(u) > 0 {
		return false
	}
	return u.OreCost() <= rc.TeamParts()
}

// ResearchUpgrade reserves the cost immediately and completes after the
// upgrade's round count. One attempt per team per upgrade at a time.
func (rc *RobotController) ResearchUpgrade(u game.Upgrade) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if !rc.robot.Type.CanResearch() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot research", rc.robot.Type)
	}
	if rc.HasUpgrade(u) {
		return game.NewActionError(game.ErrCantDoThatBro, "%v already owned", u)
	}
	if rc.CheckResearchProgress(u) > 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "%v already in progress", u)
	}
	if err := rc.assertCoreReady(); err != nil {
		return err
	}
	if err := rc.gw.AdjustResources(rc.robot.Team, -u.OreCost()); err != nil {
		return err
	}

	rc.gw.team(rc.robot.Team).research[u] = u.NumRounds()
	rounds := float64(u.NumRounds())
	rc.robot.addDelays(rounds, rounds)
	rc.gw.emit(protocol.ResearchSignal{
		ID: rc.robot.ID, Team: rc.robot.Team.String(), Upgrade: u.String(),
	})
	return nil
}
