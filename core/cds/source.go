package cds

import (
	"errors"
	"sync"

	"github.com/kilianp07/carinfo/core/logger"
	"github.com/kilianp07/carinfo/core/stream"
	"github.com/kilianp07/carinfo/internal/eventbus"
)

// ErrHubClosed is returned when publishing raw data into a closed Hub.
var ErrHubClosed = errors.New("cds hub closed")

// Source supplies one payload stream per property.
type Source interface {
	// Live emits only updates received after subscription.
	Live(id PropertyID) stream.Stream[Payload]
	// Cached additionally replays the last known payload on subscription.
	Cached(id PropertyID) stream.Stream[Payload]
}

// Watcher is told when a property gains its first consumer and when it loses
// its last one. Transports use it to manage their upstream subscriptions.
type Watcher interface {
	Watch(id PropertyID)
	Unwatch(id PropertyID)
}

type property struct {
	live     *eventbus.TypedBus[Payload]
	cached   *eventbus.TypedBus[Payload]
	interest int
}

// Hub is the in-process Source. Property subscriptions are reference counted
// across both the live and cached variants.
type Hub struct {
	mu      sync.Mutex
	props   map[PropertyID]*property
	watcher Watcher
	log     logger.Logger
	closed  bool
}

// NewHub creates a Hub. watcher may be nil.
func NewHub(watcher Watcher, log logger.Logger) *Hub {
	return &Hub{props: make(map[PropertyID]*property), watcher: watcher, log: log}
}

// SetWatcher replaces the watcher. Properties already in use are announced
// to the new watcher.
func (h *Hub) SetWatcher(w Watcher) {
	h.mu.Lock()
	h.watcher = w
	h.mu.Unlock()
	if w == nil {
		return
	}
	for _, id := range h.Interested() {
		w.Watch(id)
	}
}

// Live implements Source.
func (h *Hub) Live(id PropertyID) stream.Stream[Payload] { return h.get(id).live }

// Cached implements Source.
func (h *Hub) Cached(id PropertyID) stream.Stream[Payload] { return h.get(id).cached }

func (h *Hub) get(id PropertyID) *property {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.props[id]; ok {
		return p
	}
	p := &property{}
	hooks := []eventbus.Option{
		eventbus.OnActive(func() { h.retain(id) }),
		eventbus.OnIdle(func() { h.release(id) }),
	}
	p.live = eventbus.NewTyped[Payload](hooks...)
	p.cached = eventbus.NewTyped[Payload](append(hooks, eventbus.WithReplay())...)
	if h.closed {
		p.live.Close()
		p.cached.Close()
	}
	h.props[id] = p
	return p
}

func (h *Hub) retain(id PropertyID) {
	h.mu.Lock()
	p := h.props[id]
	p.interest++
	first := p.interest == 1
	w := h.watcher
	h.mu.Unlock()
	if first {
		h.debug("watch", id)
		if w != nil {
			w.Watch(id)
		}
	}
}

func (h *Hub) release(id PropertyID) {
	h.mu.Lock()
	p := h.props[id]
	if p.interest > 0 {
		p.interest--
	}
	last := p.interest == 0
	w := h.watcher
	h.mu.Unlock()
	if last {
		h.debug("unwatch", id)
		if w != nil {
			w.Unwatch(id)
		}
	}
}

func (h *Hub) debug(msg string, id PropertyID) {
	if h.log != nil {
		h.log.Debugw(msg, map[string]any{"property": string(id)})
	}
}

// Interested lists the properties that currently have consumers.
func (h *Hub) Interested() []PropertyID {
	h.mu.Lock()
	defer h.mu.Unlock()
	var ids []PropertyID
	for id, p := range h.props {
		if p.interest > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Publish pushes a payload for id to live and cached subscribers. The cached
// variant keeps it even when nobody is listening.
func (h *Hub) Publish(id PropertyID, p Payload) {
	prop := h.get(id)
	prop.live.Publish(p)
	prop.cached.Publish(p)
}

// PublishJSON decodes data and publishes it.
func (h *Hub) PublishJSON(id PropertyID, data []byte) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return ErrHubClosed
	}
	p, err := DecodePayload(data)
	if err != nil {
		return err
	}
	h.Publish(id, p)
	return nil
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, p := range h.props {
		p.live.Close()
		p.cached.Close()
	}
}
