package main

import (
	"fmt"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/sim/world"
)

// Built-in players stand in for the instrumented sandbox so the runner
// can exercise full matches on its own. They are deterministic: direction
// choices derive from round and id only.
func builtinPlayer(name string) (world.RunFunc, error) {
	switch name {
	case "idle":
		return func(rc *world.RobotController) int { return 100 }, nil
	case "skirmisher":
		return skirmisher, nil
	}
	return nil, fmt.Errorf("unknown built-in player %q", name)
}

func skirmisher(rc *world.RobotController) int {
	enemy := rc.Team().Opponent()

	switch {
	case rc.Type() == game.Archon:
		for _, d := range game.CompassDirections {
			if rc.CanSpawn(d, game.Soldier) {
				_ = rc.Spawn(d, game.Soldier)
				break
			}
		}
	case rc.Type() == game.HQ:
		for _, d := range game.CompassDirections {
			if rc.CanSpawn(d, game.Beaver) {
				_ = rc.Spawn(d, game.Beaver)
				break
			}
		}
	case rc.Type().CanAttack():
		if rc.IsWeaponReady() {
			for _, info := range rc.SenseNearbyRobots(rc.Type().AttackRadiusSquared(), &enemy) {
				if rc.CanAttackLocation(info.Location) {
					_ = rc.AttackLocation(info.Location)
					break
				}
			}
		}
	}

	if rc.Type().CanMove() && rc.IsCoreReady() {
		// Walk a deterministic sweep; fall through blocked directions.
		start := (rc.Round() + int(rc.ID())) % len(game.CompassDirections)
		for i := 0; i < len(game.CompassDirections); i++ {
			d := game.CompassDirections[(start+i)%len(game.CompassDirections)]
			if rc.CanMove(d) {
				_ = rc.Move(d)
				break
			}
		}
	}
	return 2000
}
