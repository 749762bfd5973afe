package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// RunFunc is the controller callback contract: it plays one robot's turn
// through rc and returns the bytecodes the player's code consumed, as
// reported by the instrumented sandbox.
type RunFunc func(rc *RobotController) int

// Players maps each team to its controller callback. Teams without an
// entry idle.
type Players map[game.Team]RunFunc

// RoundDelta is one round's externally visible outcome.
type RoundDelta struct {
	Round   int
	Signals []protocol.Signal
	Digest  string
}

// RunRound advances the world by one full round: zombie spawns, every
// living robot's turn in ascending-id order, then end-of-round
// bookkeeping. The returned result is nil until the match is decided.
func (gw *GameWorld) RunRound(players Players) (RoundDelta, *MatchResult) {
	if gw.result != nil {
		return RoundDelta{Round: gw.round}, gw.result
	}
	gw.round++
	gw.signals = nil

	// Injected notifications go out first, verbatim.
	for _, s := range gw.injected {
		gw.emit(s)
	}
	gw.injected = nil

	// Round-start snapshot the team memory query reads from.
	for _, t := range game.PlayerTeams {
		ts := gw.team(t)
		copy(ts.oldTeamMemory, ts.teamMemory)
	}

	gw.processZombieSpawns()

	// Robots spawned during the turns below wait for the next round; the
	// zombies spawned above act this round.
	ids := make([]int32, len(gw.robotIDs))
	copy(ids, gw.robotIDs)
	for _, id := range ids {
		r := gw.robots[id]
		if r == nil || r.dead || !r.Constructed() {
			continue
		}
		r.beginTurn()
		if run := players[r.Team]; run != nil {
			rc := &RobotController{gw: gw, robot: r}
			used := run(rc)
			if used < 0 {
				used = 0
			}
			if limit := r.Type.BytecodeLimit(); used > limit {
				used = limit
			}
			r.BytecodesUsed = used
		} else {
			r.BytecodesUsed = 0
		}
		gw.endTurn(r)
	}

	gw.processEndOfRound()

	delta := RoundDelta{
		Round:   gw.round,
		Signals: append([]protocol.Signal(nil), gw.signals...),
		Digest:  gw.stateDigest(),
	}
	return delta, gw.result
}

// endTurn settles a robot's turn: staged radio writes become visible to
// the team, delays decay by bytecode usage, and the team's map memory
// absorbs the robot's current sight.
func (gw *GameWorld) endTurn(r *InternalRobot) {
	if r.dead {
		return
	}
	if bc := r.takeBroadcasts(); bc != nil {
		radio := gw.team(r.Team).radio
		for ch, v := range bc {
			radio[ch] = v
		}
	}
	r.decayDelays()
	gw.rememberSight(r)
}

func (gw *GameWorld) processEndOfRound() {
	gw.tickResearch()
	gw.tickConstruction()
	gw.tickRegeneration()
	gw.tickMissiles()
	gw.applyIncome()

	if gw.result == nil {
		gw.result = gw.checkVictory()
	}
	gw.reapDeaths()
}

func (gw *GameWorld) tickResearch() {
	for _, t := range game.PlayerTeams {
		ts := gw.team(t)
		for _, upg := range game.AllUpgrades() {
			left, ok := ts.research[upg]
			if !ok {
				continue
			}
			left--
			if left <= 0 {
				delete(ts.research, upg)
				ts.upgrades[upg] = true
				continue
			}
			ts.research[upg] = left
		}
	}
}

func (gw *GameWorld) tickConstruction() {
	for _, id := range gw.robotIDs {
		r := gw.robots[id]
		if r == nil || r.dead || r.Constructed() {
			continue
		}
		r.buildTurnsLeft--
		if r.buildTurnsLeft == 0 {
			ts := gw.team(r.Team)
			ts.buildingCount[r.Type]--
			ts.liveCount[r.Type]++
		}
	}
}

// tickRegeneration heals commanders that learned the skill.
func (gw *GameWorld) tickRegeneration() {
	for _, r := range gw.AllObjects() {
		if r.Type != game.Commander || !gw.hasSkill(r.Team, game.SkillRegeneration) {
			continue
		}
		if r.Health < r.MaxHealth {
			r.Health += 1
			if r.Health > r.MaxHealth {
				r.Health = r.MaxHealth
			}
		}
	}
}

func (gw *GameWorld) tickMissiles() {
	for _, r := range gw.AllObjects() {
		switch {
		case r.Type == game.Missile:
			r.missileAge++
			if r.missileAge >= game.MissileLifespan {
				gw.explodeMissile(r)
			}
		case r.Type.CanLaunch():
			freq := game.MissileSpawnFrequency
			if r.Team.IsPlayer() && gw.hasUpgrade(r.Team, game.UpgradeFusion) {
				freq /= 2
			}
			if gw.round > 0 && gw.round%freq == 0 && r.MissileCount < game.MissileMaxCount {
				r.MissileCount++
			}
		}
	}
}

// explodeMissile deals the blast to the eight surrounding tiles and
// removes the missile without rubble.
func (gw *GameWorld) explodeMissile(m *InternalRobot) {
	if m.dead {
		return
	}
	gw.emit(protocol.SelfDestructSignal{ID: m.ID, Loc: m.Location})
	for _, d := range game.CompassDirections {
		if target, ok := gw.GetObject(m.Location.Add(d)); ok {
			gw.applyDamage(target, m.Type.AttackPower(), protocol.CauseAttack, m.Team, true)
		}
	}
	gw.kill(m, protocol.CauseSelfDestruct, m.Team, false)
}

// applyIncome credits each team's archon income, floored at zero, and
// reports the new balances on the event stream.
func (gw *GameWorld) applyIncome() {
	for _, t := range game.PlayerTeams {
		ts := gw.team(t)
		archons := ts.liveCount[game.Archon]
		others := 0
		for rt, n := range ts.liveCount {
			if rt != game.Archon {
				others += n
			}
		}
		income := game.ArchonPartIncome*float64(archons) - game.PartIncomeUnitPenalty*float64(others)
		if income > 0 {
			ts.resources += income
		}
		gw.emit(protocol.TeamResourceSignal{Team: t.String(), Resources: ts.resources})
	}
}

// RunMatch drives rounds to completion and returns the verdict.
func (gw *GameWorld) RunMatch(players Players) MatchResult {
	for {
		if _, result := gw.RunRound(players); result != nil {
			return *result
		}
	}
}
