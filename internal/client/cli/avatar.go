package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/okunev/chatlite/internal/client/api"
	"github.com/okunev/chatlite/internal/netx"
)

// Avatar uploads an image file and attaches it to the current account.
func (a *App) Avatar(ctx context.Context) error {

	path, err := GetSimpleText(a.reader, "Enter path to image file", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	key, url, err := a.api.AvatarUploadURL(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := netx.UploadToPresignedURL(url, http.DetectContentType(data), data); err != nil {
		log.Println(err.Error())
		return err
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	acc.Avatar = key

	if _, err := a.api.UpsertAccount(ctx, *acc); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("avatar updated")
	return nil
}

// currentAccount returns the saved account for the logged-in username, so
// commands that change one field keep the others intact.
func (a *App) currentAccount(ctx context.Context) (*api.Account, error) {
	username, color := a.identity()

	accounts, err := a.api.ListAccounts(ctx, a.deviceID, 0)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return &api.Account{DeviceID: a.deviceID, Username: username, Color: color}, nil
}
