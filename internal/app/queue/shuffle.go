package queue

import (
	"math/rand"
	"time"
)

// Shuffle applies a Fisher-Yates permutation to the node order and
// relinks the chain once from the shuffled snapshot. It permutes node
// identities, not track values, so the current cursor keeps pointing
// at the same track afterwards. No-op for fewer than two nodes.
func (q *Queue) Shuffle(rng *rand.Rand) {
	if q.size < 2 {
		return
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	nodes := make([]*Node, 0, q.size)
	for n := q.head; n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	for i := len(nodes) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	q.relink(nodes)
}

// relink rebuilds every prev/next pointer from the given order.
// nodes must contain exactly the queue's nodes and be non-empty.
func (q *Queue) relink(nodes []*Node) {
	for i, n := range nodes {
		if i > 0 {
			n.prev = nodes[i-1]
		} else {
			n.prev = nil
		}
		if i < len(nodes)-1 {
			n.next = nodes[i+1]
		} else {
			n.next = nil
		}
	}
	q.head = nodes[0]
	q.tail = nodes[len(nodes)-1]
}
