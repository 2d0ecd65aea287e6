package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(manager *Manager, userID, courseID string, queueSize int) *Client {
	return &Client{
		UserID:   userID,
		CourseID: courseID,
		Send:     make(chan any, queueSize),
		manager:  manager,
	}
}

func register(t *testing.T, manager *Manager, client *Client) {
	select {
	case manager.register <- client:
	case <-time.After(time.Second):
		t.Fatal("registration timed out")
	}
	// registration is handled by the run loop; wait until visible
	deadline := time.Now().Add(time.Second)
	for manager.CourseClientCount(client.CourseID) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

func TestManager_BroadcastReachesOnlyCourseClients(t *testing.T) {
	manager := NewManager(8)
	go manager.Run()

	mathClient := newTestClient(manager, "u1", "math", 8)
	mathClient2 := newTestClient(manager, "u2", "math", 8)
	historyClient := newTestClient(manager, "u3", "history", 8)

	register(t, manager, mathClient)
	register(t, manager, mathClient2)
	register(t, manager, historyClient)

	manager.BroadcastToCourse("math", "hello math")

	for _, c := range []*Client{mathClient, mathClient2} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hello math", msg)
		case <-time.After(time.Second):
			t.Fatal("math client did not receive the broadcast")
		}
	}

	select {
	case msg := <-historyClient.Send:
		t.Fatalf("history client received foreign broadcast: %v", msg)
	default:
	}
}

func TestManager_SlowClientLosesOldestFrame(t *testing.T) {
	manager := NewManager(2)
	go manager.Run()

	slow := newTestClient(manager, "slow", "math", 2)
	register(t, manager, slow)

	manager.BroadcastToCourse("math", "one")
	manager.BroadcastToCourse("math", "two")
	manager.BroadcastToCourse("math", "three")

	// Queue capacity is 2: "one" was dropped to make room for "three".
	assert.Equal(t, "two", <-slow.Send)
	assert.Equal(t, "three", <-slow.Send)

	select {
	case msg := <-slow.Send:
		t.Fatalf("unexpected extra frame: %v", msg)
	default:
	}

	// The client is still subscribed after the drop.
	assert.Equal(t, 1, manager.CourseClientCount("math"))
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	manager := NewManager(4)
	go manager.Run()

	client := newTestClient(manager, "u1", "math", 4)
	register(t, manager, client)
	require.Equal(t, 1, manager.CourseClientCount("math"))

	manager.unregister <- client

	deadline := time.Now().Add(time.Second)
	for manager.CourseClientCount("math") != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 0, manager.CourseClientCount("math"))

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed on unregister")

	// Broadcasting into an empty course is a no-op.
	manager.BroadcastToCourse("math", "nobody home")
}

func TestManager_ConcurrentBroadcasts(t *testing.T) {
	manager := NewManager(256)
	go manager.Run()

	client := newTestClient(manager, "u1", "math", 256)
	register(t, manager, client)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				manager.BroadcastToCourse("math", "m")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast goroutines did not finish")
		}
	}

	received := 0
	for {
		select {
		case <-client.Send:
			received++
		default:
			assert.Equal(t, 200, received)
			return
		}
	}
}
