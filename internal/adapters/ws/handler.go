package ws

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"loftly/internal/domain"
	"loftly/internal/event"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	auth     domain.AuthService
	log      *slog.Logger
}

func NewHandler(hub *Hub, auth domain.AuthService, log *slog.Logger, allowedOrigins []string) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			allowed := slices.Contains(allowedOrigins, origin)
			if !allowed {
				log.Warn("ws auth: origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		auth:     auth,
		log:      log,
	}
}

// Serve upgrades an authenticated request to a websocket connection.
// The token comes from the access_token cookie or a token query param
// since browsers cannot set headers on websocket dials.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		if cookie, err := r.Cookie("access_token"); err == nil {
			tokenString = cookie.Value
		}
	}

	user, err := h.auth.Authenticate(r.Context(), tokenString)
	if err != nil {
		h.log.Warn("ws auth: no valid credentials")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws auth: upgrade failed", "error", err)
		return
	}

	c := NewClient(h.hub, conn, h.log, user.Email)
	if !h.hub.Register(c) {
		conn.Close()
		return
	}

	go func() {
		g := new(errgroup.Group)
		g.Go(c.writePump)
		g.Go(c.readPump)

		if err := g.Wait(); err != nil {
			h.log.Warn("ws: client disconnected unexpectedly", "error", err, "user", c.Email)
		}
	}()
}

// RegisterSubscribers bridges the in-process event bus onto the hub's
// per-rental channels.
func RegisterSubscribers(bus *event.Bus, hub *Hub) {
	bus.Subscribe(domain.EventMessageCreated, func(e any) {
		ev, ok := e.(*domain.MessageCreatedEvent)
		if !ok {
			return
		}

		hub.Broadcast(&Event{
			Channel: fmt.Sprintf("rentals:%d", ev.Message.RentalID),
			Event:   domain.EventMessageCreated,
			Payload: ev,
		})
	})
}
