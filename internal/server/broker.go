package server

import (
	"encoding/json"
	"sync"
)

// Change areas announced on the event stream.
const (
	AreaPhases   = "phases"
	AreaSettings = "settings"
	AreaTokens   = "tokens"
	AreaConfig   = "config"
)

// ChangeEvent tells subscribers which part of the configuration changed so
// they can refetch it.
type ChangeEvent struct {
	Type string `json:"type"`
}

// Broker is an in-process pub/sub fanning change events out to every open
// event stream.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan []byte]struct{})}
}

func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

func (b *Broker) Publish(event ChangeEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Slow subscriber; it will refetch on the next event.
		}
	}
	b.mu.RUnlock()
}
