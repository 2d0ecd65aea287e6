package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"lms_backend/internal/logger"
	"lms_backend/internal/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// IncomingFrame is what clients send over the socket.
type IncomingFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	Message string `json:"message"`
}

type Client struct {
	UserID   string
	CourseID string
	Conn     *websocket.Conn
	Send     chan any

	manager     *Manager
	chatService services.ChatService
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.UserID, "error", err)
			}
			return
		}

		var frame IncomingFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			logger.Debug("ws frame parse failed", "user_id", c.UserID, "error", err)
			continue
		}

		c.handleFrame(frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				logger.Warn("ws write error", "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame IncomingFrame) {
	switch frame.Action {
	case "send_message":
		var payload sendMessagePayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.Debug("invalid send_message payload", "user_id", c.UserID, "error", err)
			return
		}
		// Persist-then-broadcast runs inside the service; the hub push
		// reaches this client too, so no local echo is needed.
		if _, err := c.chatService.SaveMessage(c.UserID, c.CourseID, payload.Message); err != nil {
			logger.Debug("ws message rejected", "user_id", c.UserID, "error", err)
			c.Send <- map[string]string{"event": "Error", "message": "message rejected"}
		}
	default:
		logger.Debug("unhandled ws action", "action", frame.Action)
	}
}
