package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestHub_PublishReachesChannelSubscribersOnly(t *testing.T) {
	hub := NewHub()

	var generalBuf, devBuf bytes.Buffer
	general := NewPeer(json.NewEncoder(&generalBuf))
	dev := NewPeer(json.NewEncoder(&devBuf))

	hub.Join("general", general)
	hub.Join("dev", dev)

	hub.Publish("general", Event{Type: EventMessageCreated, Payload: map[string]string{"body": "hi"}})

	if !strings.Contains(generalBuf.String(), EventMessageCreated) {
		t.Fatalf("general subscriber missed event: %q", generalBuf.String())
	}
	if devBuf.Len() != 0 {
		t.Fatalf("dev subscriber must not receive general events: %q", devBuf.String())
	}
}

func TestHub_BrokenPeerIsDropped(t *testing.T) {
	hub := NewHub()

	var okBuf bytes.Buffer
	ok := NewPeer(json.NewEncoder(&okBuf))
	broken := NewPeer(json.NewEncoder(failingWriter{}))

	hub.Join("general", ok)
	hub.Join("general", broken)

	hub.Publish("general", Event{Type: EventPresenceUpdated})

	if hub.SubscriberCount("general") != 1 {
		t.Fatalf("broken peer not dropped: %d subscribers", hub.SubscriberCount("general"))
	}
	if okBuf.Len() == 0 {
		t.Fatal("healthy peer should still receive the event")
	}
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	hub := NewHub()

	var buf bytes.Buffer
	peer := NewPeer(json.NewEncoder(&buf))

	hub.Join("general", peer)
	hub.Leave("general", peer)
	hub.Publish("general", Event{Type: EventTypingStarted})

	if buf.Len() != 0 {
		t.Fatalf("unsubscribed peer received event: %q", buf.String())
	}

	// leaving twice is harmless
	hub.Leave("general", peer)
}

func TestHub_ConcurrentPublishDoesNotInterleave(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	var buf bytes.Buffer
	peer := NewPeer(json.NewEncoder(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})))
	hub.Join("general", peer)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish("general", Event{Type: EventMessageCreated, Payload: map[string]string{"body": "x"}})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	decoder := json.NewDecoder(&buf)
	count := 0
	for decoder.More() {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			t.Fatalf("frame %d corrupted: %v", count, err)
		}
		count++
	}
	if count != 20 {
		t.Fatalf("expected 20 frames, decoded %d", count)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
