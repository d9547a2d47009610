// Package memory records every user/assistant exchange and offers crude
// recall. It is a deliberate placeholder for a real semantic-memory backend:
// search is conjunctive substring containment with early stop, not ranked
// relevance, and downstream workflows depend on that exact behavior.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/mohammad-safakhou/dayplan/models"
)

// Record stores a single interaction between the user and the assistant.
type Record struct {
	UserInput  string            `json:"user_input"`
	AIResponse string            `json:"ai_response"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// BucketKey names the bucket an interaction lands in. Callers pick the key
// source explicitly: a session identifier, a calendar date, or today.
type BucketKey struct {
	kind  bucketKind
	value string
}

type bucketKind int

const (
	bucketToday bucketKind = iota
	bucketSession
	bucketDate
)

// ForSession scopes records by session identity.
func ForSession(id string) BucketKey {
	return BucketKey{kind: bucketSession, value: id}
}

// ForDate scopes records by calendar date; required for date-scoped recall.
func ForDate(t time.Time) BucketKey {
	return BucketKey{kind: bucketDate, value: models.DateKey(t)}
}

// ForToday is the fallback key when the caller has no session or date scope.
func ForToday() BucketKey {
	return BucketKey{kind: bucketToday}
}

func (k BucketKey) resolve(now time.Time) string {
	if k.kind == bucketToday || k.value == "" {
		return models.DateKey(now)
	}
	return k.value
}

// Index maps bucket keys to ordered lists of interaction records. Buckets
// keep their creation order so scans are deterministic.
type Index struct {
	mu      sync.RWMutex
	buckets map[string][]Record
	order   []string // bucket keys by insertion order of first interaction

	now func() time.Time
}

// NewIndex returns an empty interaction index.
func NewIndex() *Index {
	return &Index{
		buckets: make(map[string][]Record),
		now:     time.Now,
	}
}

// AddInteraction appends a record with the current timestamp to the bucket
// named by key, creating the bucket on first use.
func (idx *Index) AddInteraction(key BucketKey, userInput, aiResponse string, metadata map[string]string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket := key.resolve(idx.now())
	if _, ok := idx.buckets[bucket]; !ok {
		idx.order = append(idx.order, bucket)
	}
	idx.buckets[bucket] = append(idx.buckets[bucket], Record{
		UserInput:  userInput,
		AIResponse: aiResponse,
		Metadata:   metadata,
		CreatedAt:  idx.now(),
	})
}

// Search returns response texts of records whose lower-cased input+response
// contains every whitespace token of query as a substring. Buckets are
// scanned in insertion order, records oldest to newest, and the scan stops
// as soon as limit matches are collected.
func (idx *Index) Search(query string, limit int) []string {
	if limit <= 0 {
		limit = 5
	}
	var tokens []string
	for _, token := range strings.Fields(query) {
		tokens = append(tokens, strings.ToLower(token))
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var matches []string
	for _, bucket := range idx.order {
		for _, record := range idx.buckets[bucket] {
			haystack := strings.ToLower(record.UserInput + " " + record.AIResponse)
			if containsAll(haystack, tokens) {
				matches = append(matches, record.AIResponse)
				if len(matches) >= limit {
					return matches
				}
			}
		}
	}
	return matches
}

func containsAll(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

// ContextForDate returns the response texts of the last five records in the
// date's bucket, oldest of those five first. Missing buckets yield an empty
// result, never an error.
func (idx *Index) ContextForDate(date time.Time) models.MemoryContext {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	records := idx.buckets[models.DateKey(date)]
	if len(records) > 5 {
		records = records[len(records)-5:]
	}
	memories := make([]string, 0, len(records))
	for _, record := range records {
		memories = append(memories, record.AIResponse)
	}
	return models.MemoryContext{RecentMemories: memories, Date: models.Day(date)}
}

// Summary reports how many buckets the index currently holds.
func (idx *Index) Summary() models.MemorySummary {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return models.MemorySummary{Buckets: len(idx.buckets)}
}
