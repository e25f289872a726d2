package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/okunev/chatlite/internal/client/api"
)

// Watch streams live events from the current channel until the user presses
// Enter or the connection drops.
func (a *App) Watch(ctx context.Context) error {

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	channel := a.currentChannel()

	events := make(chan api.Event, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.subscribe(watchCtx, channel, events)
	}()

	fmt.Printf("Watching #%s (press Enter to stop)\n", channel)

	stdinDone := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(stdinDone)
		cancel()
	}()

	for ev := range events {
		fmt.Println(formatEvent(ev))
	}

	err := <-errCh

	// When the feed ends on its own the stdin goroutine is still blocked
	// on ReadString; wait it out so it cannot swallow the next REPL line.
	select {
	case <-stdinDone:
	default:
		fmt.Println("Feed closed, press Enter to continue")
		<-stdinDone
	}

	if err != nil && watchCtx.Err() == nil {
		log.Println(err.Error())
		return err
	}
	return nil
}

func formatEvent(ev api.Event) string {
	switch ev.Type {
	case "message.created", "message.updated":
		var m struct {
			ID        string    `json:"id"`
			Username  string    `json:"username"`
			Body      string    `json:"body"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(ev.Payload, &m); err != nil {
			break
		}
		suffix := ""
		if ev.Type == "message.updated" {
			suffix = " (edited)"
		}
		return fmt.Sprintf("[%s] %s: %s%s", m.CreatedAt.Local().Format("15:04"), m.Username, m.Body, suffix)

	case "message.deleted":
		var m struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Payload, &m); err != nil {
			break
		}
		return fmt.Sprintf("message %s was deleted", m.ID)

	case "message.reacted":
		var r struct {
			MessageID string `json:"message_id"`
			Username  string `json:"username"`
			Emoji     string `json:"emoji"`
			Added     bool   `json:"added"`
		}
		if err := json.Unmarshal(ev.Payload, &r); err != nil {
			break
		}
		verb := "reacted with"
		if !r.Added {
			verb = "removed"
		}
		return fmt.Sprintf("%s %s %s on %s", r.Username, verb, r.Emoji, r.MessageID)

	case "typing.started":
		var t struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(ev.Payload, &t); err != nil {
			break
		}
		return fmt.Sprintf("%s is typing...", t.Username)

	case "presence.updated":
		var p struct {
			Username string `json:"username"`
			Online   bool   `json:"online"`
		}
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			break
		}
		if p.Online {
			return fmt.Sprintf("%s is online", p.Username)
		}
		return fmt.Sprintf("%s went offline", p.Username)
	}

	return fmt.Sprintf("event %s", ev.Type)
}
