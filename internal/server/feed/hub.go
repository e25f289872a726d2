package feed

import (
	"encoding/json"
	"sync"
)

// Peer is one connected subscriber. The mutex serializes frame writes so
// concurrent publishes do not interleave JSON on the wire.
type Peer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func NewPeer(encoder *json.Encoder) *Peer {
	return &Peer{encoder: encoder}
}

func (p *Peer) WriteEvent(event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(event)
}

// Hub tracks subscriber sets per channel.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	mu          sync.Mutex
	subscribers map[*Peer]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

func (h *Hub) room(channel string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[channel]
	if ok {
		return r
	}

	r = &room{subscribers: make(map[*Peer]struct{})}
	h.rooms[channel] = r
	return r
}

// Join subscribes a peer to a channel.
func (h *Hub) Join(channel string, peer *Peer) {
	r := h.room(channel)
	r.mu.Lock()
	r.subscribers[peer] = struct{}{}
	r.mu.Unlock()
}

// Leave unsubscribes a peer. Safe to call for a peer that never joined.
func (h *Hub) Leave(channel string, peer *Peer) {
	r := h.room(channel)
	r.mu.Lock()
	delete(r.subscribers, peer)
	r.mu.Unlock()
}

// Publish delivers an event to every subscriber of the channel. Peers whose
// connection is broken fail the write and are dropped; a failing peer never
// blocks delivery to the others.
func (h *Hub) Publish(channel string, event Event) {
	r := h.room(channel)

	r.mu.Lock()
	peers := make([]*Peer, 0, len(r.subscribers))
	for p := range r.subscribers {
		peers = append(peers, p)
	}
	r.mu.Unlock()

	var broken []*Peer
	for _, p := range peers {
		if err := p.WriteEvent(event); err != nil {
			broken = append(broken, p)
		}
	}

	if len(broken) > 0 {
		r.mu.Lock()
		for _, p := range broken {
			delete(r.subscribers, p)
		}
		r.mu.Unlock()
	}
}

// SubscriberCount reports how many peers follow a channel.
func (h *Hub) SubscriberCount(channel string) int {
	r := h.room(channel)
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
