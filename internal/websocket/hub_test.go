package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 8)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.IsUserOnline(1) })

	require.NoError(t, hub.Broadcast(Event{
		Type:    EventContactReceived,
		Payload: map[string]string{"subject": "Encomenda"},
	}))

	select {
	case raw := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, EventContactReceived, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHub_MultipleSessionsPerUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 8)}
	second := &Client{Hub: hub, UserID: 1, Send: make(chan []byte, 8)}
	hub.Register(first)
	hub.Register(second)
	waitFor(t, func() bool { return hub.IsUserOnline(1) })

	require.NoError(t, hub.Broadcast(Event{Type: EventContactReceived}))

	for _, client := range []*Client{first, second} {
		select {
		case <-client.Send:
		case <-time.After(2 * time.Second):
			t.Fatal("session missed the event")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 8)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.IsUserOnline(7) })

	hub.Unregister(client)
	waitFor(t, func() bool { return !hub.IsUserOnline(7) })

	// The send channel is closed on unregister.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_UnregisterTwice(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	departing := &Client{Hub: hub, UserID: 7, Send: make(chan []byte, 8)}
	staying := &Client{Hub: hub, UserID: 8, Send: make(chan []byte, 8)}
	hub.Register(departing)
	hub.Register(staying)
	waitFor(t, func() bool { return hub.IsUserOnline(7) && hub.IsUserOnline(8) })

	// The read pump and the buffer-full path can both report the same
	// departure. The second one must not close an already closed channel.
	hub.Unregister(departing)
	hub.Unregister(departing)
	waitFor(t, func() bool { return !hub.IsUserOnline(7) })

	// The hub goroutine survives and still delivers events.
	require.NoError(t, hub.Broadcast(Event{Type: EventContactReceived}))
	select {
	case <-staying.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after repeated unregister")
	}
}

func TestHub_IsUserOnline_Unknown(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.IsUserOnline(99))
}
