package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if username, _ := a.identity(); username != "" {
		s = username + "@" + a.currentChannel()
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to chatlite CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	_ = a.Login(ctx)

	go func() {
		a.StartPresenceWatcher(ctx, a.config.HeartbeatInterval)
	}()

	runREPL(ctx, a, a.getStatus, scanner)
}
