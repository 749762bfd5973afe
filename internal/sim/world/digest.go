package world

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

// stateDigest hashes the full authoritative state in a fixed order. Two
// worlds fed the same map and action stream must digest identically every
// round; the determinism tests and the replay index rely on it.
func (gw *GameWorld) stateDigest() string {
	h := sha256.New()
	fmt.Fprintf(h, "round=%d\n", gw.round)

	for _, r := range gw.AllObjects() {
		fmt.Fprintf(h, "robot id=%d type=%s team=%s loc=%v hp=%.6f core=%.6f weapon=%.6f supply=%.6f xp=%d missiles=%d infected=%t build=%d\n",
			r.ID, r.Type, r.Team, r.Location, r.Health, r.CoreDelay, r.WeaponDelay,
			r.SupplyLevel, r.XP, r.MissileCount, r.Infected, r.buildTurnsLeft)
	}

	for _, t := range game.PlayerTeams {
		ts := gw.team(t)
		fmt.Fprintf(h, "team=%s res=%.6f spawned=%d\n", t, ts.resources, ts.commandersSpawned)
		for _, u := range game.AllUpgrades() {
			fmt.Fprintf(h, "upgrade=%s owned=%t left=%d\n", u, ts.upgrades[u], ts.research[u])
		}
		channels := make([]int, 0, len(ts.radio))
		for ch := range ts.radio {
			channels = append(channels, ch)
		}
		sort.Ints(channels)
		for _, ch := range channels {
			fmt.Fprintf(h, "radio[%d]=%d\n", ch, ts.radio[ch])
		}
		for i, v := range ts.teamMemory {
			if v != 0 {
				fmt.Fprintf(h, "mem[%d]=%d\n", i, v)
			}
		}
	}

	for i := range gw.rubble {
		if gw.rubble[i] != 0 || gw.parts[i] != 0 || gw.ore[i] != 0 {
			fmt.Fprintf(h, "tile[%d]=%.6f,%.6f,%.6f\n", i, gw.rubble[i], gw.parts[i], gw.ore[i])
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
