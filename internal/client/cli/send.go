package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Send posts a message to the current channel. When text is empty the user
// is prompted for it.
func (a *App) Send(ctx context.Context, text string) error {

	if text == "" {
		var err error
		text, err = GetSimpleText(a.reader, "Enter message", os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	_, color := a.identity()
	msg, err := a.api.SendMessage(ctx, a.currentChannel(), color, text)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("sent %s\n", msg.ID)
	return nil
}
