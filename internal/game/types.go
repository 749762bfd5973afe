package game

// RobotType enumerates every unit in the game, both player-built and
// zombie. Stats live in the catalog below and are reached through accessor
// methods so call sites read like the rest of the rules code.
type RobotType int

const (
	HQ RobotType = iota
	Archon
	Beaver
	Miner
	Soldier
	Guard
	Basher
	Scout
	Commander
	Launcher
	Missile
	Turret
	SupplyDepot
	ZombieDen
	StandardZombie
	RangedZombie
	FastZombie
	BigZombie

	robotTypeCount
)

var robotTypeNames = [...]string{
	"HQ", "ARCHON", "BEAVER", "MINER", "SOLDIER", "GUARD", "BASHER",
	"SCOUT", "COMMANDER", "LAUNCHER", "MISSILE", "TURRET", "SUPPLYDEPOT",
	"ZOMBIEDEN", "STANDARDZOMBIE", "RANGEDZOMBIE", "FASTZOMBIE", "BIGZOMBIE",
}

func (t RobotType) String() string {
	if t < 0 || t >= robotTypeCount {
		return "UNKNOWN"
	}
	return robotTypeNames[t]
}

// RobotTypeByName resolves a catalog name, as it appears in map files.
func RobotTypeByName(name string) (RobotType, bool) {
	for t := RobotType(0); t < robotTypeCount; t++ {
		if robotTypeNames[t] == name {
			return t, true
		}
	}
	return 0, false
}

// AllRobotTypes returns every type in declaration order.
func AllRobotTypes() []RobotType {
	out := make([]RobotType, robotTypeCount)
	for i := range out {
		out[i] = RobotType(i)
	}
	return out
}

type robotTypeInfo struct {
	maxHealth     float64
	attackPower   float64
	attackDelay   float64
	cooldownDelay float64
	movementDelay float64
	loadingDelay  float64

	sensorRadiusSquared    int
	attackRadiusSquared    int
	minAttackRadiusSquared int

	bytecodeLimit int
	freeBytecodes int

	partCost   float64
	buildTurns int

	dependency  RobotType
	spawnSource RobotType

	miningRate float64

	canMove     bool
	canAttack   bool
	canBuild    bool
	canSpawn    bool
	canMine     bool
	canLaunch   bool
	canResearch bool
	isBuilding  bool
	infectious  bool
}

// noDep marks a type with no build dependency / no spawn source. The zero
// RobotType is HQ, so absence needs an explicit out-of-range sentinel.
const noDep = robotTypeCount

var robotTypes = [robotTypeCount]robotTypeInfo{
	HQ: {
		maxHealth: 2000, attackPower: 24, attackDelay: 2, cooldownDelay: 1,
		sensorRadiusSquared: 35, attackRadiusSquared: 24,
		bytecodeLimit: 10000,
		dependency:    noDep, spawnSource: noDep,
		canAttack: true, canSpawn: true, canResearch: true, isBuilding: true,
	},
	Archon: {
		maxHealth: 1000, cooldownDelay: 1, movementDelay: 2,
		sensorRadiusSquared: 35,
		bytecodeLimit:       20000,
		partCost:            100, buildTurns: 10,
		dependency: noDep, spawnSource: noDep,
		canMove: true, canSpawn: true,
	},
	Beaver: {
		maxHealth: 30, attackPower: 4, attackDelay: 2, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 5,
		bytecodeLimit:       10000,
		partCost:            10, buildTurns: 10,
		dependency: noDep, spawnSource: HQ, miningRate: 2,
		canMove: true, canAttack: true, canBuild: true, canMine: true,
	},
	Miner: {
		maxHealth: 50, attackPower: 3, attackDelay: 2, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 5,
		bytecodeLimit:       10000,
		partCost:            25, buildTurns: 12,
		dependency: noDep, spawnSource: Archon, miningRate: 3,
		canMove: true, canAttack: true, canMine: true,
	},
	Soldier: {
		maxHealth: 50, attackPower: 4, attackDelay: 2, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 13,
		bytecodeLimit:       10000,
		partCost:            30, buildTurns: 10,
		dependency: noDep, spawnSource: Archon,
		canMove: true, canAttack: true,
	},
	Guard: {
		maxHealth: 145, attackPower: 1.5, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 2,
		bytecodeLimit:       10000,
		partCost:            30, buildTurns: 10,
		dependency: noDep, spawnSource: Archon,
		canMove: true, canAttack: true,
	},
	Basher: {
		maxHealth: 64, attackPower: 4, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 2,
		bytecodeLimit:       10000,
		partCost:            40, buildTurns: 12,
		dependency: noDep, spawnSource: Archon,
		canMove: true, canAttack: true,
	},
	Scout: {
		maxHealth: 80, cooldownDelay: 1,
		movementDelay: 1, loadingDelay: 1,
		sensorRadiusSquared: 53,
		bytecodeLimit:       20000,
		partCost:            25, buildTurns: 15,
		dependency: noDep, spawnSource: Archon,
		canMove: true,
	},
	Commander: {
		maxHealth: 200, attackPower: 6, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 2, loadingDelay: 1,
		sensorRadiusSquared: 24, attackRadiusSquared: 10,
		bytecodeLimit:       10000,
		partCost:            100, buildTurns: 20,
		dependency: noDep, spawnSource: Archon,
		canMove: true, canAttack: true,
	},
	Launcher: {
		maxHealth: 100, cooldownDelay: 1,
		movementDelay: 4, loadingDelay: 1,
		sensorRadiusSquared: 24,
		bytecodeLimit:       10000,
		partCost:            150, buildTurns: 25,
		dependency: noDep, spawnSource: Archon,
		canMove: true, canLaunch: true,
	},
	Missile: {
		maxHealth: 3, attackPower: 20, movementDelay: 1,
		sensorRadiusSquared: 8, attackRadiusSquared: 2,
		bytecodeLimit:       500,
		dependency:          noDep, spawnSource: Launcher,
		canMove: true,
	},
	Turret: {
		maxHealth: 100, attackPower: 18, attackDelay: 3, cooldownDelay: 3,
		sensorRadiusSquared: 24,
		attackRadiusSquared: 48, minAttackRadiusSquared: 24,
		bytecodeLimit: 10000,
		partCost:      125, buildTurns: 25,
		dependency: SupplyDepot, spawnSource: noDep,
		canAttack: true, isBuilding: true,
	},
	SupplyDepot: {
		maxHealth: 100, cooldownDelay: 1,
		sensorRadiusSquared: 24,
		bytecodeLimit:       10000,
		partCost:            100, buildTurns: 20,
		dependency: HQ, spawnSource: noDep,
		isBuilding: true,
	},
	ZombieDen: {
		maxHealth:           2000,
		sensorRadiusSquared: 24,
		bytecodeLimit:       10000,
		dependency:          noDep, spawnSource: noDep,
		canSpawn: true, isBuilding: true,
	},
	StandardZombie: {
		maxHealth: 60, attackPower: 3, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 3, loadingDelay: 1,
		attackRadiusSquared: 2,
		bytecodeLimit:       10000,
		dependency:          noDep, spawnSource: ZombieDen,
		canMove: true, canAttack: true, infectious: true,
	},
	RangedZombie: {
		maxHealth: 60, attackPower: 3, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 3, loadingDelay: 1,
		attackRadiusSquared: 13,
		bytecodeLimit:       10000,
		dependency:          noDep, spawnSource: ZombieDen,
		canMove: true, canAttack: true, infectious: true,
	},
	FastZombie: {
		maxHealth: 80, attackPower: 3, attackDelay: 1, cooldownDelay: 1,
		movementDelay: 1, loadingDelay: 1,
		attackRadiusSquared: 2,
		bytecodeLimit:       10000,
		dependency:          noDep, spawnSource: ZombieDen,
		canMove: true, canAttack: true, infectious: true,
	},
	BigZombie: {
		maxHealth: 500, attackPower: 25, attackDelay: 3, cooldownDelay: 3,
		movementDelay: 3, loadingDelay: 1,
		attackRadiusSquared: 2,
		bytecodeLimit:       10000,
		dependency:          noDep, spawnSource: ZombieDen,
		canMove: true, canAttack: true, infectious: true,
	},
}

func (t RobotType) info() *robotTypeInfo { return &robotTypes[t] }

func (t RobotType) MaxHealth() float64     { return t.info().maxHealth }
func (t RobotType) AttackPower() float64   { return t.info().attackPower }
func (t RobotType) AttackDelay() float64   { return t.info().attackDelay }
func (t RobotType) CooldownDelay() float64 { return t.info().cooldownDelay }
func (t RobotType) MovementDelay() float64 { return t.info().movementDelay }
func (t RobotType) LoadingDelay() float64  { return t.info().loadingDelay }

func (t RobotType) SensorRadiusSquared() int    { return t.info().sensorRadiusSquared }
func (t RobotType) AttackRadiusSquared() int    { return t.info().attackRadiusSquared }
func (t RobotType) MinAttackRadiusSquared() int { return t.info().minAttackRadiusSquared }

func (t RobotType) BytecodeLimit() int { return t.info().bytecodeLimit }

// FreeBytecodes is the usage level below which delay decay stays at full
// rate. Defaults to BytecodeLimit-4000 when the catalog leaves it zero.
func (t RobotType) FreeBytecodes() int {
	if fb := t.info().freeBytecodes; fb > 0 {
		return fb
	}
	fb := t.info().bytecodeLimit - 4000
	if fb < 0 {
		fb = 0
	}
	return fb
}

func (t RobotType) PartCost() float64 { return t.info().partCost }
func (t RobotType) BuildTurns() int   { return t.info().buildTurns }

func (t RobotType) MiningRate() float64 { return t.info().miningRate }

// Dependency returns the building that must already exist before this type
// can be built, and whether there is one.
func (t RobotType) Dependency() (RobotType, bool) {
	d := t.info().dependency
	return d, d != noDep
}

// SpawnSource returns the type that spawns this one, and whether there is
// one.
func (t RobotType) SpawnSource() (RobotType, bool) {
	s := t.info().spawnSource
	return s, s != noDep
}

func (t RobotType) CanMove() bool     { return t.info().canMove }
func (t RobotType) CanAttack() bool   { return t.info().canAttack }
func (t RobotType) CanBuild() bool    { return t.info().canBuild }
func (t RobotType) CanSpawn() bool    { return t.info().canSpawn }
func (t RobotType) CanMine() bool     { return t.info().canMine }
func (t RobotType) CanLaunch() bool   { return t.info().canLaunch }
func (t RobotType) CanResearch() bool { return t.info().canResearch }
func (t RobotType) IsBuilding() bool  { return t.info().isBuilding }

// IsInfectious reports whether attacks by this type infect the victim.
func (t RobotType) IsInfectious() bool { return t.info().infectious }

// IsZombie reports whether the type belongs to the zombie roster.
func (t RobotType) IsZombie() bool { return t >= ZombieDen && t <= BigZombie }
