// Package topk implements C6: maintaining the K highest-scoring
// recommendations seen so far without holding every candidate in memory.
package topk

import (
	"container/heap"
	"sort"

	"github.com/coursematch/recoengine/modules/recommend/model"
)

// Selector is a bounded min-heap of *model.Recommendation, ordered by
// MatchScore ascending (ties broken by TieBreakIndex ascending) so the
// heap root is always the weakest survivor. Capacity is fixed at
// construction; Offer is O(log K) whether or not the candidate survives.
type Selector struct {
	capacity int
	items    minHeap
}

// NewSelector returns a Selector that retains at most capacity
// recommendations. capacity below 1 is treated as 1.
func NewSelector(capacity int) *Selector {
	if capacity < 1 {
		capacity = 1
	}
	return &Selector{capacity: capacity}
}

// Offer considers rec for inclusion in the surviving set. If the heap has
// not yet reached capacity, rec is always kept. Otherwise rec replaces
// the current weakest survivor only if rec scores strictly higher (ties
// go to whichever was seen first, so a later-arriving equal score never
// displaces an earlier one).
func (s *Selector) Offer(rec *model.Recommendation) {
	if len(s.items) < s.capacity {
		heap.Push(&s.items, rec)
		return
	}
	if len(s.items) == 0 {
		return
	}
	weakest := s.items[0]
	if less(weakest, rec) {
		s.items[0] = rec
		heap.Fix(&s.items, 0)
	}
}

// Drain empties the selector and returns the survivors sorted by
// MatchScore descending, breaking ties by TieBreakIndex ascending
// (earlier-seen candidate first).
func (s *Selector) Drain() []*model.Recommendation {
	out := make([]*model.Recommendation, len(s.items))
	copy(out, s.items)
	s.items = nil

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].TieBreakIndex() < out[j].TieBreakIndex()
	})
	return out
}

// less reports whether a scores strictly worse than b under heap
// ordering: lower MatchScore is weaker, and among equal scores the
// later-seen (higher TieBreakIndex) candidate is considered weaker so it
// is the one evicted first.
func less(a, b *model.Recommendation) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore < b.MatchScore
	}
	return a.TieBreakIndex() > b.TieBreakIndex()
}

// minHeap implements heap.Interface over *model.Recommendation, with the
// weakest candidate at the root.
type minHeap []*model.Recommendation

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return less(h[i], h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(*model.Recommendation)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
