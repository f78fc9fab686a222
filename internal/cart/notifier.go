package cart

import "sync"

// EventCartUpdated is the name under which cart changes are published.
const EventCartUpdated = "cart-updated"

// Event tells listeners that an owner's cart changed and should be re-read.
type Event struct {
	Owner string
}

// Notifier fans cart events out to in-process subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe returns a channel of events for owner and a function that
// unsubscribes and closes it.
func (n *Notifier) Subscribe(owner string) (<-chan Event, func()) {
	ch := make(chan Event, 1)

	n.mu.Lock()
	if n.subs[owner] == nil {
		n.subs[owner] = make(map[chan Event]struct{})
	}
	n.subs[owner][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[owner], ch)
			if len(n.subs[owner]) == 0 {
				delete(n.subs, owner)
			}
			n.mu.Unlock()

			close(ch)
		})
	}
}

func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs[ev.Owner] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (n *Notifier) Subscribers(owner string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.subs[owner])
}
