package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST API is already open cross-origin behind the auth middleware;
	// the upgrade carries the same bearer token, so origin adds nothing.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AttachChannel upgrades the request to a websocket and joins the caller's
// notification channel. Membership comes from the verified actor the auth
// middleware attached — the client does not (and cannot) choose a channel.
//
// The read loop discards inbound frames; the channel is push-only. It exists
// to observe the close handshake and unregister the session.
func (h *Handler) AttachChannel(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		slog.DebugContext(r.Context(), "websocket upgrade failed", "actor_id", caller.ID, "error", err)
		return
	}

	h.hub.Register(caller.ID, conn)
	slog.InfoContext(r.Context(), "channel joined", "actor_id", caller.ID, "role", caller.Role)

	defer func() {
		h.hub.Unregister(caller.ID, conn)
		_ = conn.Close()
		slog.InfoContext(r.Context(), "channel left", "actor_id", caller.ID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
