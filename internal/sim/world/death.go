package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// applyDamage hurts target and kills it when health drops to zero or
// below. cause decides the rubble rule at reap time.
func (gw *GameWorld) applyDamage(target *InternalRobot, dmg float64, cause protocol.DeathCause, killer game.Team, hasKiller bool) {
	if target.dead || dmg <= 0 {
		return
	}
	target.Health -= dmg
	if target.Health <= 0 {
		gw.kill(target, cause, killer, hasKiller)
	}
}

// kill removes the robot from spatial occupancy and the live counts at
// once; queries for the rest of the round see the tile as empty. Rubble,
// infection respawn and the DeathSignal are settled during the
// end-of-round reap, in kill order.
func (gw *GameWorld) kill(r *InternalRobot, cause protocol.DeathCause, killer game.Team, hasKiller bool) {
	if r.dead {
		return
	}
	r.dead = true
	if id, ok := gw.occupied[r.Location]; ok && id == r.ID {
		delete(gw.occupied, r.Location)
	}
	ts := gw.team(r.Team)
	if r.Constructed() {
		ts.liveCount[r.Type]--
	} else {
		ts.buildingCount[r.Type]--
	}

	gw.deathSeq++
	gw.pendingDeaths = append(gw.pendingDeaths, pendingDeath{
		robot: r, cause: cause, killer: killer, hasKiller: hasKiller, seq: gw.deathSeq,
	})

	if hasKiller {
		gw.creditKill(r, killer)
	}
}

// creditKill pays the den bounty and feeds commander XP.
func (gw *GameWorld) creditKill(victim *InternalRobot, killer game.Team) {
	if !killer.IsPlayer() {
		return
	}
	ts := gw.team(killer)
	if victim.Type == game.ZombieDen {
		ts.resources += game.DenPartReward
	}
	for _, r := range gw.AllObjects() {
		if r.Team != killer || r.Type != game.Commander {
			continue
		}
		if r.Location.DistanceSquaredTo(victim.Location) <= game.CommanderXPRadiusSquared {
			gw.grantXP(r, int(victim.Type.PartCost()))
		}
		break
	}
}

func (gw *GameWorld) grantXP(commander *InternalRobot, xp int) {
	if xp <= 0 {
		return
	}
	commander.XP += xp
	ts := gw.team(commander.Team)
	for _, s := range []game.CommanderSkillType{game.SkillFlash, game.SkillHeavyHands} {
		if commander.XP >= s.XPRequired() {
			ts.skills[s] = true
		}
	}
}

// reapDeaths settles this round's deaths: rubble deposits per cause,
// zombie respawn of infected corpses, and DeathSignals in kill order.
func (gw *GameWorld) reapDeaths() {
	pending := gw.pendingDeaths
	gw.pendingDeaths = nil
	for _, pd := range pending {
		r := pd.robot

		infectedRespawn := r.Infected && !r.Type.IsZombie()
		if !infectedRespawn {
			if deposit := deathRubble(r, pd.cause); deposit > 0 {
				if i, ok := gw.tileIndex(r.Location); ok {
					gw.rubble[i] += deposit
				}
			}
		}

		// Dropped supplies stay on the ground.
		if r.SupplyLevel > 0 {
			gw.tileSupply[r.Location] += r.SupplyLevel
			gw.emit(protocol.LocationSupplyChangeSignal{
				Loc: r.Location, Amount: gw.tileSupply[r.Location],
			})
		}

		gw.emit(protocol.DeathSignal{
			ID: r.ID, Loc: r.Location,
			Type: r.Type.String(), Team: r.Team.String(), Cause: pd.cause,
		})
		delete(gw.robots, r.ID)

		if infectedRespawn {
			if _, occupied := gw.GetObject(r.Location); !occupied {
				z, err := gw.spawnRobot(game.StandardZombie, game.TeamZombie, r.Location, 0, 0)
				if err == nil {
					gw.emit(protocol.SpawnSignal{
						ID: z.ID, Loc: z.Location,
						Type: z.Type.String(), Team: z.Team.String(),
					})
				}
			}
		}
	}
	gw.compactIDs()
}

// deathRubble is the tile deposit for a corpse.
func deathRubble(r *InternalRobot, cause protocol.DeathCause) float64 {
	switch cause {
	case protocol.CauseAttack:
		return r.MaxHealth
	case protocol.CauseTurret:
		return r.MaxHealth * game.RubbleFromTurretFactor
	}
	return 0
}

// compactIDs drops ids whose robots are gone.
func (gw *GameWorld) compactIDs() {
	live := gw.robotIDs[:0]
	for _, id := range gw.robotIDs {
		if _, ok := gw.robots[id]; ok {
			live = append(live, id)
		}
	}
	gw.robotIDs = live
}
