package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/goban-backend/internal/entity"
)

const (
	actionConnect  = "connect"
	actionTurn     = "game:turn"
	actionPass     = "game:pass"
	actionValidate = "game:validate"
	actionUpdate   = "game:update"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Game  *entity.Game  `json:"game,omitempty"`
	Move  *entity.Point `json:"move,omitempty"`
	Legal *bool         `json:"legal,omitempty"`
	Error string        `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}

func decodeMessage(data []byte) (*Message, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, err
	}

	return &message, nil
}
