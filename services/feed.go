// services/feed.go - Live announcement feed hub
package services

import (
	"sync"

	"hacksphere/models"
)

// FeedHub fans announcement events out to connected websocket clients.
// Sends are non-blocking: a client that cannot keep up drops events rather
// than stalling the publisher.
type FeedHub struct {
	mu      sync.Mutex
	clients map[chan *models.Announcement]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[chan *models.Announcement]struct{})}
}

// Subscribe registers a client and returns its event channel.
func (h *FeedHub) Subscribe() chan *models.Announcement {
	ch := make(chan *models.Announcement, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the client and closes its channel.
func (h *FeedHub) Unsubscribe(ch chan *models.Announcement) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast delivers the announcement to every subscriber.
func (h *FeedHub) Broadcast(a *models.Announcement) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- a:
		default:
			// slow client, drop the event
		}
	}
}

// Count returns the number of connected clients.
func (h *FeedHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
