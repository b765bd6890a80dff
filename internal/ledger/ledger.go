// Package ledger persists the set of already-processed article identifiers.
//
// The ledger is loaded once at the start of a run, consulted read-only while
// sources are fetched, extended in memory for every article that completed
// the full summarize-publish cycle, and flushed once at the end. Items are
// never removed; the set grows for the lifetime of the system. A crash before
// the flush leaves this run's articles unmarked, so they are retried on the
// next scheduled run.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Ledger is the in-memory view of the seen-id set. It is not safe for
// concurrent use; the pipeline is single-threaded by design and there is
// exactly one writer per run.
type Ledger struct {
	path string
	seen map[string]struct{}
}

// Load reads the ledger file. A missing file is not an error and yields an
// empty ledger, so first runs need no setup.
func Load(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		seen: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	if len(data) == 0 {
		return l, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger: %w", err)
	}
	for _, id := range ids {
		l.seen[id] = struct{}{}
	}
	return l, nil
}

// Contains reports whether id was processed by a previous (or this) run.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Add marks id as processed in memory. Nothing is written until Save.
func (l *Ledger) Add(id string) {
	l.seen[id] = struct{}{}
}

// Len returns the number of identifiers in the ledger.
func (l *Ledger) Len() int {
	return len(l.seen)
}

// Save flushes the full set to disk. The write goes to a temp file in the
// same directory followed by a rename, so a crash mid-write cannot leave a
// truncated ledger behind.
func (l *Ledger) Save() error {
	ids := make([]string, 0, len(l.seen))
	for id := range l.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".seen_ids-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
