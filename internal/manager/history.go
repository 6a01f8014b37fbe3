package manager

import "github.com/Martinez1337/go-kanban/internal/domain"

// HistoryTracker remembers which entities were read, in access order,
// deduplicated by id: re-reading an id moves its single entry to the
// most-recent end. A doubly linked list plus an id index give O(1)
// record and evict. Entries stay until explicitly evicted.
type HistoryTracker struct {
	nodes map[int]*historyNode
	head  *historyNode // oldest retained
	tail  *historyNode // most recent
}

type historyNode struct {
	task *domain.Task
	prev *historyNode
	next *historyNode
}

func NewHistoryTracker() *HistoryTracker {
	return &HistoryTracker{nodes: make(map[int]*historyNode)}
}

// Record appends a snapshot of t at the most-recent end, discarding any
// earlier entry for the same id. A nil task is a no-op.
func (h *HistoryTracker) Record(t *domain.Task) {
	if t == nil {
		return
	}
	h.Evict(t.ID)

	n := &historyNode{task: t.Clone(), prev: h.tail}
	if h.tail == nil {
		h.head = n
	} else {
		h.tail.next = n
	}
	h.tail = n
	h.nodes[t.ID] = n
}

// Evict removes the entry for id if present.
func (h *HistoryTracker) Evict(id int) {
	n, ok := h.nodes[id]
	if !ok {
		return
	}
	delete(h.nodes, id)

	if n.prev == nil {
		h.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		h.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
}

// List returns snapshots of all entries, oldest first.
func (h *HistoryTracker) List() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(h.nodes))
	for n := h.head; n != nil; n = n.next {
		tasks = append(tasks, n.task.Clone())
	}
	return tasks
}

// Len reports the number of distinct ids currently tracked.
func (h *HistoryTracker) Len() int {
	return len(h.nodes)
}
