package store

import "sync"

// notifier fans out coalesced state-change signals. Subscribers receive
// at least one signal after any change and pull the current state
// through the store's accessors; the signal itself carries no data.
type notifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals are coalesced: a slow reader sees one pending signal,
// not a backlog.
func (n *notifier) Subscribe() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan struct{}, 1)
	n.subs = append(n.subs, ch)
	return ch
}

func (n *notifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
