package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"autosphere-api/internal/matching"
	"autosphere-api/internal/model"
)

// LookupTracker keeps in-process lookup counters. It is a LookupRecorder, so
// it works with or without the database audit log.
type LookupTracker struct {
	mu sync.RWMutex

	startedAt    time.Time
	total        int
	success      int
	failed       int
	byKind       map[string]int
	byErrorType  map[string]int
	queries      map[string]int
	totalLatency time.Duration
	lastError    string
	lastQuery    string
}

func NewLookupTracker() *LookupTracker {
	return &LookupTracker{
		startedAt:   time.Now(),
		byKind:      make(map[string]int),
		byErrorType: make(map[string]int),
		queries:     make(map[string]int),
	}
}

// Record counts one lookup. It never fails.
func (t *LookupTracker) Record(_ context.Context, entry *model.LookupLog) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.byKind[entry.Kind]++
	t.totalLatency += time.Duration(entry.LatencyMS) * time.Millisecond

	if entry.Success {
		t.success++
	} else {
		t.failed++
		t.byErrorType[entry.ErrorType]++
		t.lastError = entry.ErrorMessage
	}

	if entry.Query != "" {
		q := matching.Normalize(entry.Query)
		t.queries[q]++
		t.lastQuery = q
	}
	return nil
}

// QueryCount is one normalized query and how often it was searched
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// TrackerSnapshot is a point-in-time copy of the counters
type TrackerSnapshot struct {
	StartedAt      time.Time      `json:"started_at"`
	Uptime         string         `json:"uptime"`
	Total          int            `json:"total"`
	Success        int            `json:"success"`
	Failed         int            `json:"failed"`
	ByKind         map[string]int `json:"by_kind"`
	ByErrorType    map[string]int `json:"by_error_type"`
	AvgLatencyMS   int64          `json:"avg_latency_ms"`
	RequestsPerMin float64        `json:"requests_per_min"`
	TopQueries     []QueryCount   `json:"top_queries"`
	LastQuery      string         `json:"last_query,omitempty"`
	LastError      string         `json:"last_error,omitempty"`
}

// Snapshot returns the counters with the n most searched queries
func (t *LookupTracker) Snapshot(topN int) TrackerSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	elapsed := time.Since(t.startedAt)

	var avgLatency int64
	if t.total > 0 {
		avgLatency = (t.totalLatency / time.Duration(t.total)).Milliseconds()
	}

	perMin := 0.0
	if elapsed.Minutes() > 0 {
		perMin = float64(t.total) / elapsed.Minutes()
	}

	top := make([]QueryCount, 0, len(t.queries))
	for q, n := range t.queries {
		top = append(top, QueryCount{Query: q, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Query < top[j].Query
	})
	if topN >= 0 && len(top) > topN {
		top = top[:topN]
	}

	return TrackerSnapshot{
		StartedAt:      t.startedAt,
		Uptime:         elapsed.Round(time.Second).String(),
		Total:          t.total,
		Success:        t.success,
		Failed:         t.failed,
		ByKind:         copyCounts(t.byKind),
		ByErrorType:    copyCounts(t.byErrorType),
		AvgLatencyMS:   avgLatency,
		RequestsPerMin: perMin,
		TopQueries:     top,
		LastQuery:      t.lastQuery,
		LastError:      t.lastError,
	}
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MultiRecorder fans one entry out to several recorders. Every recorder is
// called; the first error is returned.
type MultiRecorder []LookupRecorder

func (m MultiRecorder) Record(ctx context.Context, entry *model.LookupLog) error {
	var first error
	for _, r := range m {
		if err := r.Record(ctx, entry); err != nil && first == nil {
			first = err
		}
	}
	return first
}
