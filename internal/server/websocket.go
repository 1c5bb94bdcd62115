package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// MessageType names the kinds of WebSocket messages.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeBot       MessageType = "bot"
	MessageTypeState     MessageType = "state"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is a WebSocket message in either direction.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// wsUpgrade rejects unknown games and plain HTTP requests before the upgrade.
func (s *Server) wsUpgrade(c *fiber.Ctx) error {
	if _, err := s.registry.Get(c.Params("id")); err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (s *Server) handleConnection(c *websocket.Conn) {
	gameID := c.Params("id")

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("game %s: read error: %v", gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		var reply Message
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = errorMessage(fmt.Errorf("%w: %v", errBadRequest, err))
		} else {
			reply = s.handleMessage(gameID, msg)
		}

		if err := c.WriteJSON(reply); err != nil {
			log.Printf("game %s: write error: %v", gameID, err)
			return
		}
	}
}

// handleMessage answers one client message with a gameState or error message.
func (s *Server) handleMessage(gameID string, msg Message) Message {
	e, err := s.registry.Get(gameID)
	if err != nil {
		return errorMessage(err)
	}

	switch msg.Type {
	case MessageTypeMove:
		var req moveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return errorMessage(fmt.Errorf("%w: %v", errBadRequest, err))
		}
		st, err := play(e, req)
		if err != nil {
			return errorMessage(err)
		}
		return stateMessage(newGameResponse(e, st))

	case MessageTypeBot:
		st, err := reply(e)
		if err != nil {
			return errorMessage(err)
		}
		return stateMessage(newGameResponse(e, st))

	case MessageTypeState:
		return stateMessage(newGameResponse(e, e.Game.State()))

	default:
		return errorMessage(fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type))
	}
}

func stateMessage(r gameResponse) Message {
	payload, err := json.Marshal(r)
	if err != nil {
		return errorMessage(err)
	}
	return Message{Type: MessageTypeGameState, Payload: payload}
}

func errorMessage(err error) Message {
	payload, _ := json.Marshal(fiber.Map{
		"error":  err.Error(),
		"status": statusFor(err),
	})
	return Message{Type: MessageTypeError, Payload: payload}
}
