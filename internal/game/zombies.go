package game

import "sort"

// ZombieCount is one entry of a scheduled spawn wave.
type ZombieCount struct {
	Type  RobotType `json:"type" yaml:"type"`
	Count int       `json:"count" yaml:"count"`
}

// ZombieSpawnSchedule maps rounds to the zombie waves every den produces
// at the start of that round. Accessors return copies; callers cannot
// mutate the stored schedule through them.
type ZombieSpawnSchedule struct {
	waves map[int][]ZombieCount
}

func NewZombieSpawnSchedule() *ZombieSpawnSchedule {
	return &ZombieSpawnSchedule{waves: map[int][]ZombieCount{}}
}

// Add appends count zombies of the given type to the wave at round.
func (z *ZombieSpawnSchedule) Add(round int, t RobotType, count int) {
	if count <= 0 {
		return
	}
	z.waves[round] = append(z.waves[round], ZombieCount{Type: t, Count: count})
}

// Rounds returns the scheduled rounds, sorted ascending, without
// duplicates.
func (z *ZombieSpawnSchedule) Rounds() []int {
	out := make([]int, 0, len(z.waves))
	for r := range z.waves {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// WaveAt returns a copy of the wave scheduled for round, or nil.
func (z *ZombieSpawnSchedule) WaveAt(round int) []ZombieCount {
	wave := z.waves[round]
	if len(wave) == 0 {
		return nil
	}
	out := make([]ZombieCount, len(wave))
	copy(out, wave)
	return out
}

// Copy returns a deep copy of the schedule.
func (z *ZombieSpawnSchedule) Copy() *ZombieSpawnSchedule {
	out := NewZombieSpawnSchedule()
	for r, wave := range z.waves {
		cp := make([]ZombieCount, len(wave))
		copy(cp, wave)
		out.waves[r] = cp
	}
	return out
}

// OutbreakMultiplier scales zombie health on spawn, and the rubble they
// leave on death, as the match drags on.
func OutbreakMultiplier(round int) float64 {
	if round < 0 {
		return 1.0
	}
	return 1.0 + OutbreakMultiplierIncrease*float64(round/OutbreakTimer)
}
