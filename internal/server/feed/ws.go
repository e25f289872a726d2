package feed

import (
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/okunev/chatlite/internal/logging"
	"github.com/okunev/chatlite/internal/server/auth"
)

// TokenVerifier validates a feed handshake token and returns the identity
// it was issued for.
type TokenVerifier func(token string) (*auth.Identity, error)

// Handler returns the WebSocket endpoint. The client passes its channel and
// session token as query parameters; after a successful handshake it receives
// every event published to the channel until it disconnects.
func Handler(hub *Hub, defaultChannel string, verify TokenVerifier, logger logging.Logger) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		req := conn.Request()
		ctx := req.Context()

		token := req.URL.Query().Get("token")
		identity, err := verify(token)
		if err != nil {
			logger.Warn(ctx, "feed handshake rejected", "error", err)
			return
		}

		channel := req.URL.Query().Get("channel")
		if channel == "" {
			channel = defaultChannel
		}

		peer := NewPeer(json.NewEncoder(conn))
		hub.Join(channel, peer)
		defer hub.Leave(channel, peer)

		logger.Debug(ctx, "feed subscriber joined",
			"channel", channel, "username", identity.Username, "device_id", identity.DeviceID)

		// The feed is one-way. Drain inbound frames so pings keep the
		// connection alive, and exit on close or error.
		decoder := json.NewDecoder(conn)
		for {
			var discard json.RawMessage
			if err := decoder.Decode(&discard); err != nil {
				if err != io.EOF {
					logger.Debug(ctx, "feed subscriber read error", "error", err)
				}
				return
			}
		}
	})
}
