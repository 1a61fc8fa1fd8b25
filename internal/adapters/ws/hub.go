// Package ws pushes live message events to subscribed clients.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event is the wire shape broadcast to clients of a channel.
type Event struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type subscription struct {
	client  *Client
	channel string
}

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *subscription
	unsubscribe chan *subscription

	events chan *Event

	log *slog.Logger
}

func NewHub(parent context.Context, log *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *subscription),
		unsubscribe: make(chan *subscription),

		events: make(chan *Event, 100),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "user", client.Email, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if !h.clients[client] {
				continue
			}

			delete(h.clients, client)
			close(client.send)
			h.log.Info("ws: client unregistered", "user", client.Email, "total_clients", len(h.clients))

			for channel, subs := range h.channels {
				if _, subscribed := subs[client]; subscribed {
					delete(subs, client)
					if len(subs) == 0 {
						delete(h.channels, channel)
					}
				}
			}

		case sub := <-h.subscribe:
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.log.Debug("ws: client subscribed", "user", sub.client.Email, "channel", sub.channel)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					if len(subs) == 0 {
						delete(h.channels, sub.channel)
					}
					h.log.Debug("ws: client unsubscribed", "user", sub.client.Email, "channel", sub.channel)
				}
			}

		case event := <-h.events:
			h.handleEvent(event)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Register hands a client to the run loop. It reports false once the
// hub has stopped, so callers never block on a drained channel.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

func (h *Hub) Subscribe(c *Client, channel string) {
	select {
	case h.subscribe <- &subscription{client: c, channel: channel}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) Unsubscribe(c *Client, channel string) {
	select {
	case h.unsubscribe <- &subscription{client: c, channel: channel}:
	case <-h.ctx.Done():
	}
}

// Broadcast queues an event for delivery to the channel's subscribers.
func (h *Hub) Broadcast(event *Event) {
	select {
	case h.events <- event:
	case <-h.ctx.Done():
	}
}

func (h *Hub) handleEvent(event *Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	for client := range h.channels[event.Channel] {
		select {
		case client.send <- message:
		default:
			// Slow consumer, skip rather than block the hub.
			h.log.Warn("ws: send buffer full, event dropped", "user", client.Email, "channel", event.Channel)
		}
	}
}
