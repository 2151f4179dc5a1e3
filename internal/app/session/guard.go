package session

import (
	"sync"

	"userdeck/internal/app/user"
	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/logx"
)

// subscriberBuffer is the per-subscriber snapshot channel capacity. A slow
// page drops intermediate snapshots rather than blocking a transition.
const subscriberBuffer = 8

// stateGuard bundles the mutable session state with its lock and the
// snapshot subscribers.
type stateGuard struct {
	mu sync.Mutex

	phase       Phase
	loadError   string
	loadStarted bool

	view       viewState
	draft      *user.Draft
	submitting bool
	lastError  *errs.CustomError

	subMu       sync.Mutex
	subscribers map[chan Snapshot]struct{}
}

func (g *stateGuard) init() {
	g.phase = PhaseLoading
	g.view = viewState{kind: ViewIdle}
	g.subscribers = make(map[chan Snapshot]struct{})
}

// subscribe registers a new snapshot channel, primes it with the current
// snapshot, and returns it with an unregister function. snapFn must be
// callable under the state lock.
func (g *stateGuard) subscribe(snapFn func() Snapshot) (<-chan Snapshot, func()) {
	g.mu.Lock()
	initial := snapFn()
	g.mu.Unlock()

	ch := make(chan Snapshot, subscriberBuffer)
	ch <- initial

	g.subMu.Lock()
	g.subscribers[ch] = struct{}{}
	g.subMu.Unlock()

	cancel := func() {
		g.subMu.Lock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
		g.subMu.Unlock()
	}

	return ch, cancel
}

// unlockAndBroadcast builds a snapshot under the held state lock, releases the
// lock, and fans the snapshot out to all subscribers. Intended for deferred
// use at the end of a transition.
func (g *stateGuard) unlockAndBroadcast(snapFn func() Snapshot) {
	snap := snapFn()
	g.mu.Unlock()
	g.broadcast(snap)
}

// broadcast delivers a snapshot to every subscriber without blocking; full
// channels drop the update.
func (g *stateGuard) broadcast(snap Snapshot) {
	g.subMu.Lock()
	defer g.subMu.Unlock()

	for ch := range g.subscribers {
		select {
		case ch <- snap:
		default:
			logx.Warn("Snapshot subscriber channel full. Dropping update.")
		}
	}
}
