// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/sync_engine.go
// Summary: Transaction barrier gathering N participants into one atomic commit.
// Usage: StartSyncSet, AddToSyncSet for each participant, SetReady; the
// listener receives the merged transaction exactly once.
// Notes: Every entry point runs under the service lock. Delivery is
// synchronous within whichever call satisfies the barrier. No timeouts
// here: bounding a stuck participant is the calling policy's job.

package wm

import (
	"fmt"

	"github.com/slatewm/slate/surface"
)

// SyncListener receives the merged transaction of a satisfied sync set.
type SyncListener interface {
	OnTransactionReady(id int, t *surface.Transaction)
}

// SyncListenerFunc adapts a function to SyncListener.
type SyncListenerFunc func(id int, t *surface.Transaction)

func (f SyncListenerFunc) OnTransactionReady(id int, t *surface.Transaction) { f(id, t) }

type syncState int

const (
	syncCollecting syncState = iota
	syncReadyWaiting
	syncDelivered
)

func (s syncState) String() string {
	switch s {
	case syncCollecting:
		return "Collecting"
	case syncReadyWaiting:
		return "ReadyWaiting"
	case syncDelivered:
		return "Delivered"
	default:
		return "UnknownSyncState"
	}
}

// syncSet is one barrier instance. done tracks which participants have
// reported; txn accumulates their contributions.
type syncSet struct {
	id       int
	listener SyncListener
	state    syncState
	done     map[*WindowContainer]bool
	txn      *surface.Transaction
}

// SyncEngine allocates and drives sync sets.
type SyncEngine struct {
	svc    *Service
	nextID int
	sets   map[int]*syncSet
}

func newSyncEngine(svc *Service) *SyncEngine {
	return &SyncEngine{svc: svc, sets: make(map[int]*syncSet)}
}

// StartSyncSet allocates a fresh barrier and returns its id.
func (e *SyncEngine) StartSyncSet(listener SyncListener) int {
	e.svc.assertHeld()
	e.nextID++
	id := e.nextID
	e.sets[id] = &syncSet{
		id:       id,
		listener: listener,
		state:    syncCollecting,
		done:     make(map[*WindowContainer]bool),
		txn:      surface.NewTransaction(),
	}
	return id
}

// AddToSyncSet registers c as a participant. Panics when the set is already
// ready: all participants must be added first, anything else is caller
// misuse.
func (e *SyncEngine) AddToSyncSet(id int, c *WindowContainer) {
	e.svc.assertHeld()
	set := e.set(id)
	if set.state != syncCollecting {
		panic(fmt.Sprintf("wm: AddToSyncSet(%d) after SetReady, state %s", id, set.state))
	}
	if _, ok := set.done[c]; ok {
		return
	}
	set.done[c] = false
}

// SetReady seals the participant list. If everyone already reported, the
// merged transaction is delivered right here, inside this call.
func (e *SyncEngine) SetReady(id int) {
	e.svc.assertHeld()
	set := e.set(id)
	if set.state != syncCollecting {
		panic(fmt.Sprintf("wm: SetReady(%d) twice, state %s", id, set.state))
	}
	set.state = syncReadyWaiting
	e.maybeDeliver(set)
}

// OnSurfacePlacement reports that c finished its pending drawing and
// transaction work. Its pending transaction is merged into every barrier
// waiting on it.
func (e *SyncEngine) OnSurfacePlacement(c *WindowContainer) {
	e.svc.assertHeld()
	for _, set := range e.sets {
		if finished, ok := set.done[c]; !ok || finished {
			continue
		}
		set.done[c] = true
		set.txn.Merge(c.PendingTransaction())
		e.maybeDeliver(set)
	}
}

// onParticipantRemoved treats a torn-down container as completed with an
// empty contribution, so barriers never hang on dead participants.
func (e *SyncEngine) onParticipantRemoved(c *WindowContainer) {
	for _, set := range e.sets {
		if finished, ok := set.done[c]; !ok || finished {
			continue
		}
		set.done[c] = true
		e.maybeDeliver(set)
	}
}

// Pending reports how many sets are still undelivered.
func (e *SyncEngine) Pending() int {
	e.svc.assertHeld()
	return len(e.sets)
}

func (e *SyncEngine) set(id int) *syncSet {
	set := e.sets[id]
	if set == nil {
		panic(fmt.Sprintf("wm: unknown sync set %d", id))
	}
	return set
}

// maybeDeliver hands the merged transaction to the listener when the set
// is ready and every participant has reported. Exactly once per set; the
// set is destroyed before the callback so re-entrant engine use from the
// listener sees consistent state.
func (e *SyncEngine) maybeDeliver(set *syncSet) {
	if set.state != syncReadyWaiting {
		return
	}
	for _, finished := range set.done {
		if !finished {
			return
		}
	}
	set.state = syncDelivered
	delete(e.sets, set.id)
	set.listener.OnTransactionReady(set.id, set.txn)
}
