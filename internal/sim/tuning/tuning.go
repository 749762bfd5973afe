// Package tuning loads operational knobs from tuning.yaml. Game rule
// constants are fixed in the game package; only pacing and plumbing
// belong here.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// RoundsPerSecond paces the match loop for live viewing; 0 runs flat
	// out.
	RoundsPerSecond int `yaml:"rounds_per_second"`

	// ObserverSendBuffer is the per-viewer frame queue; slow viewers past
	// it are dropped.
	ObserverSendBuffer int `yaml:"observer_send_buffer"`

	// RoundLimitOverride replaces the map's round limit when > 0.
	RoundLimitOverride int `yaml:"round_limit_override"`

	// ZombieOverflowPolicy is "discard" or "enqueue".
	ZombieOverflowPolicy string `yaml:"zombie_overflow_policy"`
}

func (t *Tuning) applyDefaults() {
	if t.ObserverSendBuffer <= 0 {
		t.ObserverSendBuffer = 64
	}
	if t.ZombieOverflowPolicy == "" {
		t.ZombieOverflowPolicy = "discard"
	}
}

// Load reads the file when it exists; a missing file yields defaults.
func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.applyDefaults()
		return t, nil
	}
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	switch t.ZombieOverflowPolicy {
	case "", "discard", "enqueue":
	default:
		return t, fmt.Errorf("tuning.yaml: unknown zombie_overflow_policy %q", t.ZombieOverflowPolicy)
	}
	t.applyDefaults()
	return t, nil
}
