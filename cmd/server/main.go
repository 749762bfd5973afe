package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/persistence/indexdb"
	"github.com/bovard/battlecode-server-2016/internal/persistence/matchlog"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
	"github.com/bovard/battlecode-server-2016/internal/sim/maps"
	"github.com/bovard/battlecode-server-2016/internal/sim/tuning"
	"github.com/bovard/battlecode-server-2016/internal/sim/world"
	"github.com/bovard/battlecode-server-2016/internal/transport/observer"
)

func main() {
	var (
		mapPath    = flag.String("map", "./configs/maps/basin.yaml", "map file")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		addr       = flag.String("addr", "", "observer websocket listen address (empty to disable)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "tuning.yaml path")
		matchName  = flag.String("match", "", "match name (default: map name + timestamp)")
		playerA    = flag.String("player_a", "skirmisher", "built-in player for team A")
		playerB    = flag.String("player_b", "skirmisher", "built-in player for team B")
		disableDB  = flag.Bool("disable_db", false, "skip the sqlite match index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tun, err := tuning.Load(*tuningPath)
	if err != nil {
		logger.Fatalf("tuning: %v", err)
	}
	m, err := maps.Load(*mapPath)
	if err != nil {
		logger.Fatalf("map: %v", err)
	}

	cfg := world.MatchConfig{RoundLimitOverride: tun.RoundLimitOverride}
	if tun.ZombieOverflowPolicy == "enqueue" {
		cfg.ZombieOverflow = world.EnqueueOverflow
	}
	gw, err := world.New(m, cfg)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	runA, err := builtinPlayer(*playerA)
	if err != nil {
		logger.Fatalf("player_a: %v", err)
	}
	runB, err := builtinPlayer(*playerB)
	if err != nil {
		logger.Fatalf("player_b: %v", err)
	}
	players := world.Players{game.TeamA: runA, game.TeamB: runB}

	name := *matchName
	if name == "" {
		name = m.Name() + "-" + time.Now().UTC().Format("20060102-150405")
	}

	logWriter, err := matchlog.NewWriter(filepath.Join(*dataDir, "matches"), name)
	if err != nil {
		logger.Fatalf("matchlog: %v", err)
	}
	defer logWriter.Close()

	var idx *indexdb.Index
	if !*disableDB {
		idx, err = indexdb.Open(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("indexdb: %v", err)
		}
		defer idx.Close()
	}

	var obs *observer.Server
	if *addr != "" {
		obs = observer.NewServer(logger, tun.ObserverSendBuffer)
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/observe", obs.Handler())
		srv := &http.Server{Addr: *addr, Handler: mux}
		go func() {
			logger.Printf("observer listening on %s", *addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("observer: %v", err)
			}
		}()
		defer srv.Close()
	}

	header := protocol.MatchHeaderMsg{
		Type:            protocol.TypeMatchHeader,
		ProtocolVersion: protocol.Version,
		MapName:         m.Name(),
		Width:           m.Width(),
		Height:          m.Height(),
		Rounds:          gw.RoundLimit(),
		Seed:            m.Seed(),
		TeamA:           *playerA,
		TeamB:           *playerB,
	}
	if err := logWriter.WriteHeader(header); err != nil {
		logger.Fatalf("write header: %v", err)
	}
	if obs != nil {
		obs.PublishHeader(header)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var pace <-chan time.Time
	if tun.RoundsPerSecond > 0 {
		t := time.NewTicker(time.Second / time.Duration(tun.RoundsPerSecond))
		defer t.Stop()
		pace = t.C
	}

	logger.Printf("match %s: %s (%dx%d), %d rounds, seed %d",
		name, m.Name(), m.Width(), m.Height(), gw.RoundLimit(), m.Seed())

	var result *world.MatchResult
loop:
	for {
		select {
		case <-stop:
			logger.Printf("interrupted at round %d", gw.Round())
			break loop
		default:
		}
		if pace != nil {
			<-pace
		}

		delta, res := gw.RunRound(players)
		msg := protocol.RoundMsg{
			Type:    protocol.TypeRound,
			Round:   delta.Round,
			Signals: protocol.WrapAll(delta.Signals),
			Digest:  delta.Digest,
		}
		if err := logWriter.WriteRound(msg); err != nil {
			logger.Fatalf("write round %d: %v", delta.Round, err)
		}
		if idx != nil {
			idx.RecordRound(indexdb.RoundRow{
				Match: name, Round: delta.Round,
				Signals: len(delta.Signals), Digest: delta.Digest,
			})
		}
		if obs != nil {
			obs.PublishRound(msg)
		}
		if res != nil {
			result = res
			break
		}
	}

	if result != nil {
		footer := protocol.MatchFooterMsg{
			Type:             protocol.TypeMatchFooter,
			Winner:           result.Winner.String(),
			DominationFactor: string(result.DominationFactor),
			Rounds:           result.Rounds,
		}
		if err := logWriter.WriteFooter(footer); err != nil {
			logger.Fatalf("write footer: %v", err)
		}
		if obs != nil {
			obs.PublishFooter(footer)
		}
		if idx != nil {
			idx.RecordMatch(indexdb.MatchRow{
				Name: name, MapName: m.Name(), Seed: m.Seed(),
				Winner: result.Winner.String(), Factor: string(result.DominationFactor),
				Rounds: result.Rounds,
				LogPath: filepath.Join(*dataDir, "matches", name+".jsonl.zst"),
			})
		}
		logger.Printf("winner: team %s (%s) after %d rounds",
			result.Winner, result.DominationFactor, result.Rounds)
	}
}
