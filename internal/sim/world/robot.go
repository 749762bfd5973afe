package world

import (
	"math"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

// Signal is one delivered spatial broadcast sitting in a robot's inbox.
// Message is nil for basic signals. Every delivery and every read hands
// out a fresh copy; recipients can never observe each other's mutations.
type Signal struct {
	ID       int32
	Team     game.Team
	Location game.MapLocation
	Message  *[2]int32
}

func (s Signal) copy() Signal {
	out := s
	if s.Message != nil {
		msg := *s.Message
		out.Message = &msg
	}
	return out
}

// InternalRobot is the authoritative per-robot record. Only the world
// mutates it; player code sees RobotInfo snapshots.
type InternalRobot struct {
	ID       int32
	Type     game.RobotType
	Team     game.Team
	Location game.MapLocation

	// MaxHealth is the effective cap: the catalog value, scaled by the
	// outbreak multiplier for zombies spawned mid-match.
	MaxHealth float64
	Health    float64

	CoreDelay   float64
	WeaponDelay float64

	SupplyLevel  float64
	XP           int
	MissileCount int

	BytecodesUsed int
	Infected      bool

	// buildTurnsLeft > 0 means the robot is still under construction and
	// cannot act; the tile stays reserved for the whole build.
	buildTurnsLeft int
	builderID      int32

	missileAge int

	movedThisTurn bool
	dead          bool

	basicSignalCount   int
	messageSignalCount int

	queuedBroadcasts map[int]int32
	hasBroadcasted   bool

	inbox    []Signal
	inboxCap int

	indicatorStrings [game.NumberOfIndicatorStrings]string
}

func newInternalRobot(id int32, rt game.RobotType, team game.Team, loc game.MapLocation, maxHealth float64, buildTurns int, builderID int32, inboxCap int) *InternalRobot {
	r := &InternalRobot{
		ID:               id,
		Type:             rt,
		Team:             team,
		Location:         loc,
		MaxHealth:        maxHealth,
		Health:           maxHealth,
		buildTurnsLeft:   buildTurns,
		builderID:        builderID,
		queuedBroadcasts: map[int]int32{},
		inboxCap:         inboxCap,
	}
	if rt.CanLaunch() {
		r.MissileCount = game.MissileMaxCount
	}
	return r
}

// Constructed reports whether the robot has finished building and may act.
func (r *InternalRobot) Constructed() bool { return r.buildTurnsLeft == 0 }

// BuildTurnsLeft is the remaining construction time.
func (r *InternalRobot) BuildTurnsLeft() int { return r.buildTurnsLeft }

func (r *InternalRobot) Alive() bool { return !r.dead }

func (r *InternalRobot) Info() game.RobotInfo {
	return game.RobotInfo{
		ID:             r.ID,
		Team:           r.Team,
		Type:           r.Type,
		Location:       r.Location,
		CoreDelay:      r.CoreDelay,
		WeaponDelay:    r.WeaponDelay,
		Health:         r.Health,
		SupplyLevel:    r.SupplyLevel,
		XP:             r.XP,
		MissileCount:   r.MissileCount,
		ZombieInfected: r.Infected,
		BuildTurnsLeft: r.buildTurnsLeft,
	}
}

// addDelays charges an action's cost onto the two counters.
func (r *InternalRobot) addDelays(core, weapon float64) {
	r.CoreDelay += core
	r.WeaponDelay += weapon
}

func (r *InternalRobot) coreActive() bool   { return r.CoreDelay < 1.0 }
func (r *InternalRobot) weaponActive() bool { return r.WeaponDelay < 1.0 }

// delayDecayRate maps last turn's bytecode usage to this turn's decay.
// Full decay below the free budget, tapering to the floor at the limit.
func delayDecayRate(used, free, limit int) float64 {
	if limit <= 0 || used <= free {
		return 1.0
	}
	if used >= limit {
		return game.DelayDecayMinRate
	}
	frac := float64(used) / float64(limit)
	return 1.0 - game.DelayDecayPenalty*math.Pow(frac, game.DelayDecayExponent)
}

// decayDelays applies between-turn decay; counters saturate at zero.
func (r *InternalRobot) decayDelays() {
	rate := delayDecayRate(r.BytecodesUsed, r.Type.FreeBytecodes(), r.Type.BytecodeLimit())
	r.CoreDelay = math.Max(0, r.CoreDelay-rate)
	r.WeaponDelay = math.Max(0, r.WeaponDelay-rate)
}

func (r *InternalRobot) beginTurn() {
	r.movedThisTurn = false
	r.basicSignalCount = 0
	r.messageSignalCount = 0
	r.hasBroadcasted = false
}

// queueBroadcast stages a radio write; it is visible to this robot at
// once and flushed to the team array when the turn ends.
func (r *InternalRobot) queueBroadcast(channel int, data int32) {
	r.queuedBroadcasts[channel] = data
	r.hasBroadcasted = true
}

func (r *InternalRobot) queuedBroadcast(channel int) (int32, bool) {
	v, ok := r.queuedBroadcasts[channel]
	return v, ok
}

// takeBroadcasts returns and clears the staged radio writes.
func (r *InternalRobot) takeBroadcasts() map[int]int32 {
	if len(r.queuedBroadcasts) == 0 {
		return nil
	}
	out := r.queuedBroadcasts
	r.queuedBroadcasts = map[int]int32{}
	return out
}

// deliverSignal appends to the inbox, discarding the oldest entry on
// overflow.
func (r *InternalRobot) deliverSignal(s Signal) {
	r.inbox = append(r.inbox, s.copy())
	if len(r.inbox) > r.inboxCap {
		over := len(r.inbox) - r.inboxCap
		r.inbox = append(r.inbox[:0], r.inbox[over:]...)
	}
}

// readSignal pops the oldest inbox entry.
func (r *InternalRobot) readSignal() (Signal, bool) {
	if len(r.inbox) == 0 {
		return Signal{}, false
	}
	s := r.inbox[0]
	r.inbox = r.inbox[1:]
	return s.copy(), true
}

// emptySignalQueue returns the whole inbox and clears it atomically.
func (r *InternalRobot) emptySignalQueue() []Signal {
	out := make([]Signal, len(r.inbox))
	for i, s := range r.inbox {
		out[i] = s.copy()
	}
	r.inbox = r.inbox[:0]
	return out
}
