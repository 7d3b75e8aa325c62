package store

import "sync"

// notifier fans a changed key out to subscribers. Callbacks run on the
// goroutine that performed the Set, after the write is durable and outside
// any store lock, so a subscriber may immediately read back.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Key)
}

func (n *notifier) subscribe(fn func(Key)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(Key))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier) notify(key Key) {
	n.mu.Lock()
	fns := make([]func(Key), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
