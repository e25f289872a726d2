package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/websocket"
)

// Event is one frame received from the realtime feed.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Subscribe connects to the server's realtime feed for a channel and forwards
// incoming events to the provided channel until the connection drops or ctx
// is cancelled. The events channel is closed before Subscribe returns.
func (c *Client) Subscribe(ctx context.Context, channel string, events chan<- Event) error {
	defer close(events)

	wsURL, err := feedURL(c.baseURL, channel, c.token)
	if err != nil {
		return err
	}

	origin := c.baseURL
	if origin == "" {
		origin = "http://localhost"
	}

	conn, err := websocket.Dial(wsURL, "", origin)
	if err != nil {
		return fmt.Errorf("feed dial: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	for {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func feedURL(baseURL, channel, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"

	q := u.Query()
	q.Set("channel", channel)
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
