package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/okunev/chatlite/internal/client/api"
)

const listPageSize = 20

// List shows the most recent messages in the current channel, oldest first
// so the newest line ends up next to the prompt.
func (a *App) List(ctx context.Context) error {

	messages, err := a.api.ListMessages(ctx, a.currentChannel(), listPageSize)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for i := len(messages) - 1; i >= 0; i-- {
		fmt.Println(formatMessage(&messages[i]))
	}

	return nil
}

func formatMessage(m *api.Message) string {
	body := m.Body
	if m.Deleted {
		body = "(deleted)"
	}

	s := fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Local().Format("15:04"), m.Username, body)
	if m.EditedAt != nil && !m.Deleted {
		s += " (edited)"
	}
	if len(m.Reactions) > 0 {
		counts := make(map[string]int)
		order := make([]string, 0)
		for _, r := range m.Reactions {
			if counts[r.Emoji] == 0 {
				order = append(order, r.Emoji)
			}
			counts[r.Emoji]++
		}
		parts := make([]string, 0, len(order))
		for _, emoji := range order {
			parts = append(parts, fmt.Sprintf("%s %d", emoji, counts[emoji]))
		}
		s += "  [" + strings.Join(parts, ", ") + "]"
	}
	s += "  #" + m.ID
	return s
}
