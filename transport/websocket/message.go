package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/berserker-backend/internal/berserker"
	"github.com/rocketscienceinc/berserker-backend/internal/entity"
)

const (
	actionConnect     = "connect"
	actionGameNew     = "game:new"
	actionGamePlace   = "game:place"
	actionGameState   = "game:state"
	actionGameLeave   = "game:leave"
	actionGamePlaced  = "game:placed"
	actionServerError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player    *entity.Player       `json:"player,omitempty"`
	Game      *entity.Game         `json:"game,omitempty"`
	Row       *int                 `json:"row,omitempty"`
	Col       *int                 `json:"col,omitempty"`
	Placement *berserker.Placement `json:"placement,omitempty"`
	Error     string               `json:"error,omitempty"`
}

func decodeMessage(data []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &message, nil
}

func (that *Message) decodePayload() (*Payload, error) {
	var payload Payload
	if len(that.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(that.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

// connection serializes writes to one peer; gorilla allows a single
// concurrent writer only.
type connection struct {
	ws        *websocket.Conn
	sessionID string

	writeMutex sync.Mutex
}

func newConnection(ws *websocket.Conn, sessionID string) *connection {
	ws.SetReadLimit(maxMessageSize)

	return &connection{
		ws:        ws,
		sessionID: sessionID,
	}
}

func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// keepAlive pings the peer until the returned stop func is called. The read
// deadline is pushed forward on every pong.
func (that *connection) keepAlive() func() {
	_ = that.ws.SetReadDeadline(time.Now().Add(pongWait))
	that.ws.SetPongHandler(func(string) error {
		return that.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	ticker := time.NewTicker(pingPeriod)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := that.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	return func() {
		close(done)
	}
}

func (that *connection) close() error {
	return that.ws.Close()
}
