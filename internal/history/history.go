// Package history keeps the chat log of questions and their answer
// envelopes. It lives outside the query engine's contract: the engine
// never reads it, the presentation layer appends to it.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/queryengine"
)

// Entry is one question/answer pair.
type Entry struct {
	ID       string
	Question string
	Answer   queryengine.Answer
	AskedAt  time.Time
}

// Log is an append-only in-memory record of entries, safe for
// concurrent use. Data is lost on restart - for persistence, use a
// database-backed log.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records a question and its envelope, returning the stored
// entry with its generated ID and timestamp.
func (l *Log) Append(question string, answer queryengine.Answer) Entry {
	entry := Entry{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
