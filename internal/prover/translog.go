package prover

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// TranscriptLog mirrors, line by line, each command BeginCheck sends through
// its send helper to an optional log file (spec.md §6 "Log file format").
// The reset issued by Session.NewProblem is not recorded, and nothing writes
// solver-side comments to the log.
type TranscriptLog struct {
	f *os.File
}

// OpenTranscriptLog creates (or truncates) a log file under dir, named by
// the blake3 content hash of sessionLabel so repeated runs against the
// same named problem land on a stable, deduplicated filename.
func OpenTranscriptLog(dir, sessionLabel string) (*TranscriptLog, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	h := blake3.New()
	_, _ = h.Write([]byte(sessionLabel))
	sum := h.Sum(nil)
	name := hex.EncodeToString(sum[:8]) + ".smt2.log"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	return &TranscriptLog{f: f}, nil
}

// Write appends one line to the log. Safe to call on a nil *TranscriptLog
// (no-op), so callers needn't branch on whether logging is enabled.
func (t *TranscriptLog) Write(line string) error {
	if t == nil {
		return nil
	}
	_, err := t.f.WriteString(line + "\n")
	return err
}

// Close releases the underlying file. Safe on a nil *TranscriptLog.
func (t *TranscriptLog) Close() error {
	if t == nil {
		return nil
	}
	return t.f.Close()
}
