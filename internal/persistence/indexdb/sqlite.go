// Package indexdb keeps a small sqlite index of finished matches and
// their per-round digests, for replay lookup and spot-checking
// determinism across runs. All writes funnel through one goroutine.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

type MatchRow struct {
	Name    string
	MapName string
	Seed    int64
	Winner  string
	Factor  string
	Rounds  int
	LogPath string
}

type RoundRow struct {
	Match   string
	Round   int
	Signals int
	Digest  string
}

type Index struct {
	db *sql.DB

	ch     chan req
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

type reqKind int

const (
	reqMatch reqKind = iota + 1
	reqRound
)

type req struct {
	kind  reqKind
	match MatchRow
	round RoundRow
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	name     TEXT PRIMARY KEY,
	map_name TEXT NOT NULL,
	seed     INTEGER NOT NULL,
	winner   TEXT NOT NULL,
	factor   TEXT NOT NULL,
	rounds   INTEGER NOT NULL,
	log_path TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rounds (
	match_name TEXT NOT NULL,
	round      INTEGER NOT NULL,
	signals    INTEGER NOT NULL,
	digest     TEXT NOT NULL,
	PRIMARY KEY (match_name, round)
);
`

func Open(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	idx := &Index{db: db, ch: make(chan req, 1024)}
	idx.wg.Add(1)
	go idx.writer()
	return idx, nil
}

func (idx *Index) writer() {
	defer idx.wg.Done()
	for r := range idx.ch {
		switch r.kind {
		case reqMatch:
			_, _ = idx.db.Exec(
				`INSERT OR REPLACE INTO matches
				 (name, map_name, seed, winner, factor, rounds, log_path)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.match.Name, r.match.MapName, r.match.Seed,
				r.match.Winner, r.match.Factor, r.match.Rounds, r.match.LogPath)
		case reqRound:
			_, _ = idx.db.Exec(
				`INSERT OR REPLACE INTO rounds
				 (match_name, round, signals, digest)
				 VALUES (?, ?, ?, ?)`,
				r.round.Match, r.round.Round, r.round.Signals, r.round.Digest)
		}
	}
}

// RecordMatch enqueues the match row; drops silently after Close.
func (idx *Index) RecordMatch(row MatchRow) {
	if idx.closed.Load() {
		return
	}
	idx.ch <- req{kind: reqMatch, match: row}
}

func (idx *Index) RecordRound(row RoundRow) {
	if idx.closed.Load() {
		return
	}
	idx.ch <- req{kind: reqRound, round: row}
}

// Close drains pending writes and closes the database.
func (idx *Index) Close() error {
	var err error
	idx.once.Do(func() {
		idx.closed.Store(true)
		close(idx.ch)
		idx.wg.Wait()
		err = idx.db.Close()
	})
	return err
}

// Match fetches one match row by name.
func (idx *Index) Match(name string) (MatchRow, error) {
	var row MatchRow
	err := idx.db.QueryRow(
		`SELECT name, map_name, seed, winner, factor, rounds, log_path
		 FROM matches WHERE name = ?`, name).
		Scan(&row.Name, &row.MapName, &row.Seed, &row.Winner, &row.Factor,
			&row.Rounds, &row.LogPath)
	return row, err
}

// RoundDigests returns a match's digests ordered by round.
func (idx *Index) RoundDigests(match string) ([]string, error) {
	rows, err := idx.db.Query(
		`SELECT digest FROM rounds WHERE match_name = ? ORDER BY round`, match)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
