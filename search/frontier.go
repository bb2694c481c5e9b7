package search

import "container/heap"

// frontier is an ordered set of arena indices awaiting expansion.
type frontier interface {
	push(id int, key int)
	pop() (int, bool)
	len() int
	// remove deletes id if queued and reports whether it was.
	remove(id int) bool
}

// fifo is a true queue: pops happen in insertion order regardless of keys.
type fifo struct {
	items []int
	head  int
}

func (q *fifo) push(id, _ int) { q.items = append(q.items, id) }

func (q *fifo) pop() (int, bool) {
	if q.head == len(q.items) {
		return 0, false
	}
	id := q.items[q.head]
	q.head++
	// compact once the dead prefix dominates
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return id, true
}

func (q *fifo) len() int { return len(q.items) - q.head }

// remove scans the live part of the queue and drops id, keeping the order of the rest.
func (q *fifo) remove(id int) bool {
	for i := q.head; i < len(q.items); i++ {
		if q.items[i] == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// lifo is a stack.
type lifo struct {
	items []int
}

func (s *lifo) push(id, _ int) { s.items = append(s.items, id) }

func (s *lifo) pop() (int, bool) {
	n := len(s.items)
	if n == 0 {
		return 0, false
	}
	id := s.items[n-1]
	s.items = s.items[:n-1]
	return id, true
}

func (s *lifo) len() int { return len(s.items) }

func (s *lifo) remove(id int) bool {
	for i, v := range s.items {
		if v == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// pqItem is a heap entry: smaller key first, then smaller seq (earlier insertion).
type pqItem struct {
	id  int
	key int
	seq int
}

// nodePQ is a min-heap of pqItem implementing heap.Interface.
type nodePQ []pqItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by key, breaking ties by insertion sequence for stability.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a pqItem. Called by heap.Push.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(pqItem)) }

// Pop removes the last element. Called by heap.Pop.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// priority is a stable min-priority frontier keyed by the pushed cost.
type priority struct {
	pq  nodePQ
	seq int
}

func (p *priority) push(id, key int) {
	heap.Push(&p.pq, pqItem{id: id, key: key, seq: p.seq})
	p.seq++
}

func (p *priority) pop() (int, bool) {
	if p.pq.Len() == 0 {
		return 0, false
	}
	return heap.Pop(&p.pq).(pqItem).id, true
}

func (p *priority) len() int { return p.pq.Len() }

// update rekeys a queued id with heap.Fix and reports whether it was found.
// The insertion seq is kept, so ties still break by first enqueue.
func (p *priority) update(id, key int) bool {
	for i := range p.pq {
		if p.pq[i].id == id {
			p.pq[i].key = key
			heap.Fix(&p.pq, i)
			return true
		}
	}
	return false
}

func (p *priority) remove(id int) bool {
	for i := range p.pq {
		if p.pq[i].id == id {
			heap.Remove(&p.pq, i)
			return true
		}
	}
	return false
}

// newFrontier picks the discipline for alg.
func newFrontier(alg Algorithm) frontier {
	switch alg {
	case DFS:
		return &lifo{}
	case Dijkstra, AStar:
		return &priority{}
	default:
		return &fifo{}
	}
}
