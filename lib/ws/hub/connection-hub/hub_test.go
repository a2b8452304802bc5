package connectionhub

import (
	"fmt"
	"sync"
	"testing"

	dbmodels "ats-backend/models/db"
	wsmodels "ats-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type fakePushStore struct{}

func (fakePushStore) Create(rec dbmodels.PushData) error              { return nil }
func (fakePushStore) List(userID string) ([]dbmodels.PushData, error) { return nil, nil }
func (fakePushStore) Delete(ids []string) error                      { return nil }

func newTestHub() *impl {
	return &impl{
		clients: map[string]clientSession{},
		store:   fakePushStore{},
	}
}

// Registration happens on ws handler goroutines while pushes are flushed
// from request goroutines, so the hub has to survive concurrent access.
func TestHubConcurrentAccess(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for k := 0; k < 32; k++ {
		userID := fmt.Sprintf("user-%d", k%4)
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.AddClient(userID, &websocket.Conn{})
		}()
		go func() {
			defer wg.Done()
			hub.IsConnected(userID)
		}()
	}
	wg.Wait()

	for k := 0; k < 32; k++ {
		userID := fmt.Sprintf("user-%d", k%4)
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.SendMessage(wsmodels.ServerMessage{ToUserID: userID, Msg: "ping"})
		}()
		go func() {
			defer wg.Done()
			hub.IsConnected(userID)
		}()
	}
	wg.Wait()

	for k := 0; k < 4; k++ {
		hub.DeleteClient(fmt.Sprintf("user-%d", k))
	}
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	require.Empty(t, hub.clients)
}

func TestHubDeleteUnknownClient(t *testing.T) {
	hub := newTestHub()
	hub.DeleteClient("nobody")
	require.False(t, hub.IsConnected("nobody"))
}
