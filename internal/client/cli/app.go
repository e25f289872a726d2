package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/okunev/chatlite/internal/client/api"
	"github.com/okunev/chatlite/internal/client/config"
)

type App struct {
	config    *config.Config
	api       *api.Client
	deviceID  string
	reader    *bufio.Reader
	subscribe func(ctx context.Context, channel string, events chan<- api.Event) error

	// mu guards the session state below, which the presence watcher
	// goroutine reads while the REPL mutates it.
	mu       sync.Mutex
	username string
	color    string
	channel  string
}

func NewApp(c *config.Config) (*App, error) {

	deviceID, err := loadDeviceID()
	if err != nil {
		log.Printf("error initializing device identity: %s", err.Error())
		return nil, err
	}

	client := api.NewClient(c.ServerBaseURL)

	return &App{
		config:    c,
		api:       client,
		deviceID:  deviceID,
		channel:   c.DefaultChannel,
		reader:    bufio.NewReader(os.Stdin),
		subscribe: client.Subscribe,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	username, _ := a.identity()
	return username != ""
}

func (a *App) identity() (username, color string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.username, a.color
}

func (a *App) setIdentity(username, color string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.username = username
	a.color = color
}

func (a *App) currentChannel() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.channel
}

func (a *App) setChannel(channel string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.channel = channel
}

// StartPresenceWatcher periodically refreshes the user's presence in the
// current channel so other members keep seeing them as online.
func (a *App) StartPresenceWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			hbCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := a.api.Heartbeat(hbCtx, a.currentChannel()); err != nil {
				log.Printf("heartbeat failed: %s", err.Error())
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
