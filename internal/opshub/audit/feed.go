// Package audit fans committed audit entries out to in-process listeners.
package audit

import (
	"sync"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
)

// Subscriber receives entries in publish order. It runs on the publishing
// goroutine and must not block.
type Subscriber func(version uint64, entry domain.AuditLog)

// Feed holds a monotonically increasing version and the current subscriber
// list. Build one per process and pass it to whoever publishes or listens.
type Feed struct {
	mu      sync.RWMutex
	version uint64
	nextID  int
	subs    map[int]Subscriber
	order   []int
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]Subscriber)}
}

// Subscribe registers fn and returns a function that removes it.
func (f *Feed) Subscribe(fn Subscriber) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.order = append(f.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(id) })
	}
}

func (f *Feed) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subs, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Publish bumps the version once per entry and delivers each entry to every
// subscriber registered at the time of the call. It returns the new version.
func (f *Feed) Publish(entries ...domain.AuditLog) uint64 {
	if len(entries) == 0 {
		return f.Version()
	}

	f.mu.Lock()
	first := f.version + 1
	f.version += uint64(len(entries))
	last := f.version
	subs := make([]Subscriber, 0, len(f.order))
	for _, id := range f.order {
		subs = append(subs, f.subs[id])
	}
	f.mu.Unlock()

	for i, e := range entries {
		for _, fn := range subs {
			fn(first+uint64(i), e)
		}
	}
	return last
}

// Version reports how many entries have been published.
func (f *Feed) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Subscribers reports the current number of listeners.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
