// Package matchlog persists a match's signal stream as zstd-compressed
// JSONL: one header line, one line per round, one footer line.
package matchlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewWriter creates <dir>/<name>.jsonl.zst, truncating any previous run.
func NewWriter(dir, name string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%s.jsonl.zst", name)))
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{
		f:   f,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) WriteHeader(h protocol.MatchHeaderMsg) error { return w.write(h) }
func (w *Writer) WriteRound(r protocol.RoundMsg) error        { return w.write(r) }
func (w *Writer) WriteFooter(f protocol.MatchFooterMsg) error { return w.write(f) }

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var first error
	if err := w.w.Flush(); err != nil {
		first = err
	}
	if err := w.enc.Close(); err != nil && first == nil {
		first = err
	}
	if err := w.f.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// Log is a fully decoded match log.
type Log struct {
	Header protocol.MatchHeaderMsg
	Rounds []protocol.RawRoundMsg
	Footer protocol.MatchFooterMsg
}

// Read decodes a log file written by Writer.
func Read(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out Log
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		raw := sc.Bytes()
		var peek struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &peek); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		switch peek.Type {
		case protocol.TypeMatchHeader:
			if err := json.Unmarshal(raw, &out.Header); err != nil {
				return nil, err
			}
		case protocol.TypeRound:
			var r protocol.RawRoundMsg
			if err := json.Unmarshal(raw, &r); err != nil {
				return nil, err
			}
			out.Rounds = append(out.Rounds, r)
		case protocol.TypeMatchFooter:
			if err := json.Unmarshal(raw, &out.Footer); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%s line %d: unknown frame %q", path, line, peek.Type)
		}
		line++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &out, nil
}
