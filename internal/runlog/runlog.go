// Package runlog keeps a tamper-evident record of bootstrap runs: an
// append-only JSONL file where each entry carries the SHA-256 of the
// previous line, so a rewritten or deleted step is detectable later.
package runlog

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// GenesisHash anchors the chain: the first entry of a log links to it.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// timestampLayout is millisecond-precision UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Log appends hash-chained entries for one or more bootstrap runs.
type Log struct {
	mu   sync.Mutex
	file *os.File
	next string // prev_hash the next entry must carry
}

// Open prepares the log at path for appending, creating the parent
// directory when needed. An existing log is never rewritten: its last
// line is hashed so new entries extend the chain.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("runlog: parent directory: %w", err)
	}

	next, err := chainTail(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("runlog: open %s: %w", path, err)
	}
	return &Log{file: f, next: next}, nil
}

// chainTail returns the prev_hash for the next entry: the hash of the
// last line on disk, or GenesisHash for a new or empty log.
func chainTail(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return GenesisHash, nil
	}
	if err != nil {
		return "", fmt.Errorf("runlog: read tail of %s: %w", path, err)
	}
	defer f.Close()

	var last []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		last = append(last[:0], scanner.Bytes()...)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("runlog: scan %s: %w", path, err)
	}
	if len(last) == 0 {
		return GenesisHash, nil
	}
	return HashLine(last), nil
}

// Record stamps, links, and appends one entry. The write is synced
// before the chain state advances so a crash cannot orphan the tail.
func (l *Log) Record(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}
	entry.PrevHash = l.next

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("runlog: encode entry: %w", err)
	}
	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("runlog: append entry: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("runlog: sync: %w", err)
	}

	l.next = HashLine(line)
	return nil
}

// Close closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// HashLine returns "sha256:<hex>" of one JSONL line.
func HashLine(line []byte) string {
	sum := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(sum[:])
}
