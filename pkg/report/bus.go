package report

import (
	"fmt"
	"sync"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

type subscriber struct {
	id       string
	reporter Reporter
}

// Bus fans every event out to its subscribers in subscription order
type Bus struct {
	subscribers []subscriber
	mu          sync.RWMutex
}

var _ Reporter = &Bus{}

func NewBus() *Bus {
	return &Bus{
		subscribers: make([]subscriber, 0),
	}
}

// Subscribe registers a reporter under a unique id
func (b *Bus) Subscribe(id string, r Reporter) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subscribers {
		if s.id == id {
			return fmt.Errorf("reporter %s is already subscribed", id)
		}
	}

	b.subscribers = append(b.subscribers, subscriber{id: id, reporter: r})
	return nil
}

// Unsubscribe removes a reporter
func (b *Bus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reporter %s is not subscribed", id)
}

func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make([]subscriber, 0)
}

func (b *Bus) Start(s core.InitialState) {
	b.each(func(r Reporter) { r.Start(s) })
}

func (b *Bus) Step(e core.StepEvent) {
	b.each(func(r Reporter) { r.Step(e) })
}

func (b *Bus) Finish(s core.Summary) {
	b.each(func(r Reporter) { r.Finish(s) })
}

func (b *Bus) each(fn func(Reporter)) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		fn(s.reporter)
	}
}
