package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// SetStatus sets the status text shown next to the username.
func (a *App) SetStatus(ctx context.Context) error {

	status, err := GetSimpleText(a.reader, "Enter status text (empty to clear)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	acc.Status = status

	if _, err := a.api.UpsertAccount(ctx, *acc); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("status updated")
	return nil
}

// Join switches the REPL to another channel and announces presence there.
func (a *App) Join(ctx context.Context, channel string) error {
	a.setChannel(channel)

	if a.isLoggedIn() {
		if err := a.api.Heartbeat(ctx, channel); err != nil {
			log.Println(err.Error())
			return err
		}
	}

	fmt.Printf("joined #%s\n", channel)
	return nil
}
