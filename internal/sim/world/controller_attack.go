package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// CanAttackLocation is the non-acting mirror of AttackLocation.
func (rc *RobotController) CanAttackLocation(loc game.MapLocation) bool {
	if rc.robot.dead || !rc.robot.Type.CanAttack() || rc.robot.Type == game.Basher {
		return false
	}
	return rc.gw.CanAttackSquare(rc.robot, loc)
}

// AttackLocation strikes a square inside the attacker's range window.
// Damage resolves immediately against the occupant.
func (rc *RobotController) AttackLocation(loc game.MapLocation) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := rc.assertWeaponReady(); err != nil {
		return err
	}
	if !rc.robot.Type.CanAttack() {
		return game.NewActionError(game.ErrCantDoThatBro, "%v cannot attack", rc.robot.Type)
	}
	if rc.robot.Type == game.Basher {
		return game.NewActionError(game.ErrCantDoThatBro, "bashers attack with Bash")
	}
	if !rc.gw.CanAttackSquare(rc.robot, loc) {
		return game.NewActionError(game.ErrOutOfRange, "%v is outside attack range", loc)
	}

	rc.robot.addDelays(rc.robot.Type.CooldownDelay(), rc.robot.Type.AttackDelay())
	rc.gw.emit(protocol.AttackSignal{ID: rc.robot.ID, TargetLoc: loc})
	rc.gw.resolveAttack(rc.robot, loc)
	return nil
}

// Bash is the basher's melee: it hits every occupied tile adjacent to the
// basher in one swing.
func (rc *RobotController) Bash() error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := rc.assertWeaponReady(); err != nil {
		return err
	}
	if rc.robot.Type != game.Basher {
		return game.NewActionError(game.ErrCantDoThatBro, "only bashers bash")
	}

	rc.robot.addDelays(rc.robot.Type.CooldownDelay(), rc.robot.Type.AttackDelay())
	rc.gw.emit(protocol.AttackSignal{ID: rc.robot.ID, TargetLoc: rc.robot.Location})
	for _, d := range game.CompassDirections {
		rc.gw.resolveAttack(rc.robot, rc.robot.Location.Add(d))
	}
	return nil
}

// resolveAttack applies attacker damage to the occupant of loc, with the
// guard's zombie-damage reduction and the infection rule.
func (gw *GameWorld) resolveAttack(attacker *InternalRobot, loc game.MapLocation) {
	target, ok := gw.GetObject(loc)
	if !ok {
		return
	}
	dmg := attacker.Type.AttackPower()
	if target.Type == game.Guard && attacker.Team == game.TeamZombie {
		dmg -= game.GuardDamageReduction
		if dmg < 0 {
			dmg = 0
		}
	}
	if attacker.Type.IsInfectious() && !target.Type.IsZombie() && !target.Infected {
		target.Infected = true
		gw.emit(protocol.InfectionSignal{ID: target.ID})
	}
	cause := protocol.CauseAttack
	if attacker.Type == game.Turret {
		cause = protocol.CauseTurret
	}
	gw.applyDamage(target, dmg, cause, attacker.Team, true)
}

// Explode is the missile's attack: blast the surroundings and die
// without rubble.
func (rc *RobotController) Explode() error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if rc.robot.Type != game.Missile {
		return game.NewActionError(game.ErrCantDoThatBro, "only missiles explode")
	}
	rc.gw.explodeMissile(rc.robot)
	return nil
}

// Disintegrate removes the caller immediately, leaving no rubble. The
// controller frame is inert afterwards.
func (rc *RobotController) Disintegrate() {
	if rc.robot.dead {
		return
	}
	rc.gw.kill(rc.robot, protocol.CauseSelfDestruct, rc.robot.Team, false)
}

// Resign kills every robot on the caller's team, conceding the match.
func (rc *RobotController) Resign() {
	for _, r := range rc.gw.AllObjects() {
		if r.Team == rc.robot.Team {
			rc.gw.kill(r, protocol.CauseResign, r.Team, false)
		}
	}
}
