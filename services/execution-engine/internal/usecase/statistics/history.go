package statistics

import (
	"slices"
	"sync"

	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
)

// DefaultHistoryCapacity is how many execution results are kept.
const DefaultHistoryCapacity = 1000

// History is a bounded ring of execution results. Once full, each Add
// evicts the oldest entry.
type History struct {
	mu    sync.RWMutex
	items []executionv1.ExecutionResult
	next  int
	size  int
}

// NewHistory creates a ring holding at most capacity results.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{items: make([]executionv1.ExecutionResult, capacity)}
}

// Add stores a copy of result; later changes to its trades by the caller
// do not reach the history.
func (h *History) Add(result executionv1.ExecutionResult) {
	result.Trades = slices.Clone(result.Trades)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.items[h.next] = result
	h.next = (h.next + 1) % len(h.items)
	if h.size < len(h.items) {
		h.size++
	}
}

// Latest returns copies of up to limit results, newest first. A
// non-positive limit returns everything held.
func (h *History) Latest(limit int) []executionv1.ExecutionResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > h.size {
		limit = h.size
	}
	out := make([]executionv1.ExecutionResult, 0, limit)
	idx := h.next
	for range limit {
		idx = (idx - 1 + len(h.items)) % len(h.items)
		item := h.items[idx]
		item.Trades = slices.Clone(item.Trades)
		out = append(out, item)
	}
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

func (h *History) Capacity() int {
	return len(h.items)
}

func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.items)
	h.next = 0
	h.size = 0
}
