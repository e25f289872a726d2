package cli

import (
	"context"
	"log"
	"os"

	"github.com/okunev/chatlite/internal/client/api"
)

// Login picks a username for this device, opens a session and saves the
// account in the device registry. Running it again with another name switches
// accounts; the server silently drops the least recently used one when the
// device is at capacity.
func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	color, err := GetSimpleText(a.reader, "Enter display color (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.OpenSession(ctx, a.deviceID, username); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	saved, err := a.api.UpsertAccount(ctx, api.Account{
		DeviceID: a.deviceID,
		Username: username,
		Color:    color,
	})
	if err != nil {
		log.Printf("error saving account: %s", err.Error())
		return err
	}

	a.setIdentity(saved.Username, saved.Color)
	log.Printf("Logged in as %s", saved.Username)

	if err := a.api.Heartbeat(ctx, a.currentChannel()); err != nil {
		log.Printf("heartbeat failed: %s", err.Error())
	}

	return nil
}
