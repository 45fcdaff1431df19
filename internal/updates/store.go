// Package updates keeps a bounded, disk-persisted log of channel
// announcements used to ground AI replies in recent context.
package updates

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MaxRecords bounds the store; the oldest entries are dropped first.
const MaxRecords = 200

// Record is one stored announcement.
type Record struct {
	TS     int64  `json:"ts"` // unix seconds
	Text   string `json:"text"`
	ChatID int64  `json:"chat_id"`
}

type document struct {
	Items []Record `json:"items"`
}

// Store is the append-only announcement log. The full document is rewritten
// on every insert; there is exactly one writer (the dispatcher), the mutex
// only guards against a concurrent Recent.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Record
	now   func() time.Time
}

// Open loads the store from disk. A missing or corrupt file yields an empty
// store, never an error.
func Open(path string) *Store {
	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("read updates store failed", "path", path, "error", err)
		}
		return s
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("updates store corrupt, starting empty", "path", path, "error", err)
		return s
	}
	s.items = doc.Items
	return s
}

// Ingest appends an announcement. Empty or whitespace-only text is silently
// dropped. A zero ts falls back to the ingestion clock. After the append the
// log is trimmed to MaxRecords (oldest first) and rewritten to disk; a
// failed write is reported but not fatal — the record stays in memory and
// the next successful ingest persists it.
func (s *Store) Ingest(text string, ts int64, chatID int64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ts == 0 {
		ts = s.now().Unix()
	}
	s.items = append(s.items, Record{TS: ts, Text: text, ChatID: chatID})
	if len(s.items) > MaxRecords {
		s.items = s.items[len(s.items)-MaxRecords:]
	}

	if err := s.persistLocked(); err != nil {
		slog.Error("persist updates failed", "path", s.path, "error", err)
	}
}

// Recent returns up to n records ordered by timestamp descending; ties keep
// insertion order (stable sort).
func (s *Store) Recent(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TS > out[j].TS })
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persistLocked() error {
	doc := document{Items: s.items}
	if doc.Items == nil {
		doc.Items = []Record{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal updates: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write updates: %w", err)
	}
	return nil
}
