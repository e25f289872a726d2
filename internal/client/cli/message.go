package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Edit replaces the body of one of the user's own messages.
func (a *App) Edit(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter message id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	body, err := GetSimpleText(a.reader, "Enter new text", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	msg, err := a.api.EditMessage(ctx, id, body)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("edited %s\n", msg.ID)
	return nil
}

// Delete removes one of the user's own messages, leaving a tombstone
// in the channel history.
func (a *App) Delete(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter message id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.DeleteMessage(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("deleted")
	return nil
}

// React toggles an emoji reaction on a message.
func (a *App) React(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter message id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	emoji, err := GetSimpleText(a.reader, "Enter emoji", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	added, err := a.api.ToggleReaction(ctx, id, emoji)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if added {
		fmt.Println("reaction added")
	} else {
		fmt.Println("reaction removed")
	}
	return nil
}
