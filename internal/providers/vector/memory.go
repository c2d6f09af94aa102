package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sandevgo/routebot/internal/core"
)

type entry struct {
	vector   []float32
	metadata map[string]string
}

// Memory is an in-memory vector index using brute-force cosine similarity.
// Used for local runs and tests; replace semantics by id like the real index.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]entry
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

func (m *Memory) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimension = dimension
	return nil
}

func (m *Memory) Upsert(ctx context.Context, id string, vec []float32, metadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dimension != 0 && len(vec) != m.dimension {
		return fmt.Errorf("vector dimension %d, want %d", len(vec), m.dimension)
	}
	m.entries[id] = entry{vector: vec, metadata: metadata}
	return nil
}

func (m *Memory) Query(ctx context.Context, vec []float32, topK int, includeMetadata bool) ([]core.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if topK <= 0 {
		topK = 3
	}

	matches := make([]core.Match, 0, len(m.entries))
	for id, e := range m.entries {
		match := core.Match{ID: id, Score: cosine(e.vector, vec)}
		if includeMetadata {
			match.Metadata = e.metadata
		}
		matches = append(matches, match)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len reports the number of stored vectors.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
