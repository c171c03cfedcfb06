package websocket

import (
	"encoding/json"
	"time"
)

const (
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeSetFilter = "set_filter"
	MessageTypeClear     = "clear"
	MessageTypeView      = "view"
	MessageTypeCatalog   = "catalog"
	MessageTypeError     = "error"
)

// WSMessage is the envelope for every frame in both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func ParseMessage(raw []byte) (*WSMessage, error) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Encode builds an outbound frame around data.
func Encode(messageType string, data interface{}) ([]byte, error) {
	msg := WSMessage{
		Type:      messageType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = payload
	}
	return json.Marshal(msg)
}
