package maps

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

type mapFile struct {
	Name    string      `yaml:"name"`
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	OriginX int         `yaml:"origin_x"`
	OriginY int         `yaml:"origin_y"`
	Rounds  int         `yaml:"rounds"`
	Seed    int64       `yaml:"seed"`
	Rubble  [][]float64 `yaml:"rubble"`
	Parts   [][]float64 `yaml:"parts"`
	Ore     [][]float64 `yaml:"ore"`
	Terrain []string    `yaml:"terrain"`
	Robots  []struct {
		Type string `yaml:"type"`
		Team string `yaml:"team"`
		X    int    `yaml:"x"`
		Y    int    `yaml:"y"`
	} `yaml:"robots"`
	ZombieSchedule []struct {
		Round int `yaml:"round"`
		Waves []struct {
			Type  string `yaml:"type"`
			Count int    `yaml:"count"`
		} `yaml:"waves"`
	} `yaml:"zombie_schedule"`
}

// Load reads a YAML map file and freezes it into a GameMap. Terrain rows
// use one rune per tile: 'N' or '.' normal, 'V' or '#' void.
func Load(path string) (*GameMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf mapFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d := Data{
		Name:   mf.Name,
		Width:  mf.Width,
		Height: mf.Height,
		Origin: game.Loc(mf.OriginX, mf.OriginY),
		Rounds: mf.Rounds,
		Seed:   mf.Seed,
		Rubble: mf.Rubble,
		Parts:  mf.Parts,
		Ore:    mf.Ore,
	}

	if len(mf.Terrain) > 0 {
		d.Terrain = make([][]game.TerrainTile, len(mf.Terrain))
		for y, row := range mf.Terrain {
			runes := []rune(row)
			tiles := make([]game.TerrainTile, len(runes))
			for x, r := range runes {
				switch r {
				case 'N', '.':
					tiles[x] = game.TerrainNormal
				case 'V', '#':
					tiles[x] = game.TerrainVoid
				default:
					return nil, fmt.Errorf("%s: terrain row %d: unknown tile %q", path, y, r)
				}
			}
			d.Terrain[y] = tiles
		}
	}

	teamByName := map[string]game.Team{
		"A": game.TeamA, "B": game.TeamB,
		"NEUTRAL": game.TeamNeutral, "ZOMBIE": game.TeamZombie,
	}
	for _, r := range mf.Robots {
		rt, ok := game.RobotTypeByName(r.Type)
		if !ok {
			return nil, fmt.Errorf("%s: unknown robot type %q", path, r.Type)
		}
		team, ok := teamByName[r.Team]
		if !ok {
			return nil, fmt.Errorf("%s: unknown team %q", path, r.Team)
		}
		d.Robots = append(d.Robots, InitialRobot{Type: rt, Team: team, Loc: game.Loc(r.X, r.Y)})
	}

	if len(mf.ZombieSchedule) > 0 {
		sched := game.NewZombieSpawnSchedule()
		for _, entry := range mf.ZombieSchedule {
			for _, wave := range entry.Waves {
				zt, ok := game.RobotTypeByName(wave.Type)
				if !ok {
					return nil, fmt.Errorf("%s: unknown zombie type %q", path, wave.Type)
				}
				if !zt.IsZombie() || zt == game.ZombieDen {
					return nil, fmt.Errorf("%s: %q cannot be scheduled", path, wave.Type)
				}
				sched.Add(entry.Round, zt, wave.Count)
			}
		}
		d.ZombieSchedule = sched
	}

	return New(d)
}
