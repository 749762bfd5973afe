// Package world implements the authoritative match simulation: robots,
// terrain, resources and signals, the controller surface player code acts
// through, and the per-round bookkeeping that arbitrates it all.
package world

import "github.com/bovard/battlecode-server-2016/internal/game"

// ZombieOverflowPolicy decides what happens to scheduled zombies when
// every tile around a den is blocked.
type ZombieOverflowPolicy int

const (
	// DiscardOverflow drops the blocked spawns.
	DiscardOverflow ZombieOverflowPolicy = iota
	// EnqueueOverflow re-schedules the blocked spawns for the next round.
	EnqueueOverflow
)

// MatchConfig carries per-match knobs. The zero value is playable; rule
// constants live in the game package and are not configurable here.
type MatchConfig struct {
	// RoundLimitOverride replaces the map's round limit when > 0.
	RoundLimitOverride int

	ZombieOverflow ZombieOverflowPolicy

	SignalQueueMax   int
	TeamMemoryLength int
}

func (c *MatchConfig) applyDefaults() {
	if c.SignalQueueMax <= 0 {
		c.SignalQueueMax = game.SignalQueueMaxSize
	}
	if c.TeamMemoryLength <= 0 {
		c.TeamMemoryLength = game.TeamMemoryLength
	}
}
