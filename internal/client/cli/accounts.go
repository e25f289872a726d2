package cli

import (
	"context"
	"fmt"
	"log"
)

// Accounts shows the accounts saved on this device, most recently used first.
func (a *App) Accounts(ctx context.Context) error {

	accounts, err := a.api.ListAccounts(ctx, a.deviceID, 0)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	count, err := a.api.CountAccounts(ctx, a.deviceID)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	current, _ := a.identity()

	fmt.Printf("Saved accounts (%d of %d):\n", count.Count, count.MaxAccounts)
	for _, acc := range accounts {
		marker := " "
		if acc.Username == current {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s", marker, acc.Username)
		if acc.Status != "" {
			line += fmt.Sprintf(" (%s)", acc.Status)
		}
		line += fmt.Sprintf("  last used %s", acc.LastUsed.Local().Format("2006-01-02 15:04"))
		fmt.Println(line)
	}

	return nil
}
