package wordbank

import (
	"container/heap"
)

// Heap is a generic heap that can store any type T, ordered by less.
type Heap[T any] struct {
	data []T
	less func(a, b T) bool
}

func (h *Heap[T]) Len() int           { return len(h.data) }
func (h *Heap[T]) Less(i, j int) bool { return h.less(h.data[i], h.data[j]) }
func (h *Heap[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }

// Push adds an element to the heap.
func (h *Heap[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

// Pop removes the highest-priority element.
func (h *Heap[T]) Pop() any {
	n := len(h.data)
	item := h.data[n-1]
	h.data = h.data[0 : n-1]
	return item
}

// Scored is a word and its letter frequency score
type Scored struct {
	Word  string
	Score float64
}

// NewScoredHeap pops the highest score first, alphabetical on equal scores
func NewScoredHeap() *Heap[Scored] {
	ret := &Heap[Scored]{
		data: []Scored{},
		less: func(a, b Scored) bool {
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			return a.Word < b.Word
		},
	}
	heap.Init(ret)
	return ret
}

// Ranked returns the n best scoring words of the universe, best first.
// n <= 0 returns all of them.
func (b *Bank) Ranked(n int) []Scored {
	h := NewScoredHeap()
	for _, word := range b.words {
		heap.Push(h, Scored{Word: word, Score: b.Score(word)})
	}
	if n <= 0 || n > h.Len() {
		n = h.Len()
	}
	ret := make([]Scored, 0, n)
	for len(ret) < n {
		ret = append(ret, heap.Pop(h).(Scored))
	}
	return ret
}
