// Package memory implements the append-only processing history as an
// in-process log. The store is the only shared mutable state in the
// service; writes are serialized so ids stay strictly increasing and
// gap-free, reads observe a consistent snapshot.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kirillkom/docintake/internal/core/domain"
)

type Store struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

func New() *Store {
	return &Store{}
}

// Append serializes the extraction record, assigns the next sequential id
// and adds the entry to the end of the log. Entries are immutable once
// created and live for the process lifetime.
func (s *Store) Append(_ context.Context, inputType domain.Format, intent string, rec domain.Record, sourceInfo string) (domain.HistoryEntry, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("serialize extraction record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.HistoryEntry{
		ID:            int64(len(s.entries)) + 1,
		InputType:     inputType,
		Intent:        intent,
		ExtractedData: raw,
		Timestamp:     time.Now().Format(time.RFC3339),
		SourceInfo:    sourceInfo,
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Recent returns at most limit entries, newest first. The underlying log
// is never mutated or exposed.
func (s *Store) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return []domain.HistoryEntry{}, nil
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	out := make([]domain.HistoryEntry, 0, limit)
	for i := len(s.entries) - 1; i >= len(s.entries)-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
