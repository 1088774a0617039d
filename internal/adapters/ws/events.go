package ws

import "encoding/json"

// EventNewQuotation is sent once for every quotation that was persisted.
const EventNewQuotation = "newQuotation"

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// encode marshals payload into a typed envelope.
func encode(eventType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
