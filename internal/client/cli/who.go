package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Who shows who is online in the current channel and who is typing right now.
func (a *App) Who(ctx context.Context) error {

	channel := a.currentChannel()

	online, err := a.api.Online(ctx, channel)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(online) == 0 {
		fmt.Println("Nobody is online")
	} else {
		names := make([]string, 0, len(online))
		for _, p := range online {
			names = append(names, p.Username)
		}
		fmt.Printf("Online (%d): %s\n", len(names), strings.Join(names, ", "))
	}

	typers, err := a.api.Typers(ctx, channel)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(typers) > 0 {
		fmt.Printf("Typing: %s\n", strings.Join(typers, ", "))
	}

	return nil
}
