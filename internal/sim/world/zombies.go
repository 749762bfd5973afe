package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// processZombieSpawns runs at the start of a scheduled round: every den
// produces the wave, placing each zombie on the first free adjacent tile
// scanning NORTH then clockwise. Blocked spawns follow the overflow
// policy.
func (gw *GameWorld) processZombieSpawns() {
	wave := gw.schedule.WaveAt(gw.round)
	if wave == nil {
		return
	}
	var dens []*InternalRobot
	for _, r := range gw.AllObjects() {
		if r.Type == game.ZombieDen {
			dens = append(dens, r)
		}
	}
	for _, den := range dens {
		for _, zc := range wave {
			spawned := 0
			for n := 0; n < zc.Count; n++ {
				loc, ok := gw.freeAdjacentTile(den.Location, zc.Type)
				if !ok {
					break
				}
				z, err := gw.spawnRobot(zc.Type, game.TeamZombie, loc, 0, den.ID)
				if err != nil {
					break
				}
				spawned++
				gw.emit(protocol.SpawnSignal{
					ID: z.ID, ParentID: den.ID, Loc: z.Location,
					Type: z.Type.String(), Team: z.Team.String(),
				})
			}
			if overflow := zc.Count - spawned; overflow > 0 && gw.cfg.ZombieOverflow == EnqueueOverflow {
				gw.schedule.Add(gw.round+1, zc.Type, overflow)
			}
		}
	}
}

// freeAdjacentTile scans the eight neighbors NORTH-first, clockwise.
func (gw *GameWorld) freeAdjacentTile(center game.MapLocation, rt game.RobotType) (game.MapLocation, bool) {
	for _, d := range game.CompassDirections {
		loc := center.Add(d)
		if gw.CanMove(loc, rt) {
			return loc, true
		}
	}
	return game.MapLocation{}, false
}
