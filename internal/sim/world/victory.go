package world

import (
	"hash/fnv"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

// DominationFactor grades how a match was decided.
type DominationFactor string

const (
	// Destroyed: the loser's last archon fell.
	Destroyed DominationFactor = "DESTROYED"
	// Owned: more archons at the round limit.
	Owned DominationFactor = "OWNED"
	// BarelyBeat: equal archons, higher total health at the limit.
	BarelyBeat DominationFactor = "BARELY_BEAT"
	// WonByDubiousReasons: the final id-hash coin flip.
	WonByDubiousReasons DominationFactor = "WON_BY_DUBIOUS_REASONS"
)

type MatchResult struct {
	Winner           game.Team
	DominationFactor DominationFactor
	Rounds           int
}

// lastArchonDeathSeq returns the kill-order sequence of the most recent
// archon death of a team this round, or 0.
func (gw *GameWorld) lastArchonDeathSeq(t game.Team) int {
	seq := 0
	for _, pd := range gw.pendingDeaths {
		if pd.robot.Team == t && pd.robot.Type == game.Archon && pd.seq > seq {
			seq = pd.seq
		}
	}
	return seq
}

// checkVictory runs before the reap clears pending deaths, so the
// same-round double-elimination tiebreak can consult kill order.
func (gw *GameWorld) checkVictory() *MatchResult {
	aArchons := gw.TotalRobotTypeCount(game.TeamA, game.Archon)
	bArchons := gw.TotalRobotTypeCount(game.TeamB, game.Archon)
	aEliminated := gw.team(game.TeamA).everHadArchon && aArchons == 0
	bEliminated := gw.team(game.TeamB).everHadArchon && bArchons == 0

	switch {
	case aEliminated && bEliminated:
		// Whoever's last archon died later in emission order wins.
		winner := game.TeamA
		if gw.lastArchonDeathSeq(game.TeamB) > gw.lastArchonDeathSeq(game.TeamA) {
			winner = game.TeamB
		}
		return &MatchResult{Winner: winner, DominationFactor: Destroyed, Rounds: gw.round + 1}
	case aEliminated:
		return &MatchResult{Winner: game.TeamB, DominationFactor: Destroyed, Rounds: gw.round + 1}
	case bEliminated:
		return &MatchResult{Winner: game.TeamA, DominationFactor: Destroyed, Rounds: gw.round + 1}
	}

	if gw.round+1 < gw.roundLimit {
		return nil
	}

	// Round limit: archons, then total health, then the id hash.
	if aArchons != bArchons {
		winner := game.TeamA
		if bArchons > aArchons {
			winner = game.TeamB
		}
		return &MatchResult{Winner: winner, DominationFactor: Owned, Rounds: gw.round + 1}
	}
	aHealth, bHealth := gw.totalHealth(game.TeamA), gw.totalHealth(game.TeamB)
	if aHealth != bHealth {
		winner := game.TeamA
		if bHealth > aHealth {
			winner = game.TeamB
		}
		return &MatchResult{Winner: winner, DominationFactor: BarelyBeat, Rounds: gw.round + 1}
	}
	winner := game.TeamA
	if gw.teamIDHash(game.TeamB) > gw.teamIDHash(game.TeamA) {
		winner = game.TeamB
	}
	return &MatchResult{Winner: winner, DominationFactor: WonByDubiousReasons, Rounds: gw.round + 1}
}

func (gw *GameWorld) totalHealth(t game.Team) float64 {
	sum := 0.0
	for _, r := range gw.AllObjects() {
		if r.Team == t {
			sum += r.Health
		}
	}
	return sum
}

// teamIDHash folds the team's surviving robot ids through FNV-1a.
func (gw *GameWorld) teamIDHash(t game.Team) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, r := range gw.AllObjects() {
		if r.Team != t {
			continue
		}
		id := uint32(r.ID)
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
