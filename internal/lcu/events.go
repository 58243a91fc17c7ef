package lcu

import (
	"encoding/json"
	"fmt"
)

// WAMP-style opcodes used on the client's push socket.
const (
	opSubscribe = 5
	opEvent     = 8
)

// eventTopic is the firehose subscription covering every JSON API event.
const eventTopic = "OnJsonApiEvent"

// Event topics the bot reacts to. Everything else on the firehose is
// ignored by the engine.
const (
	URIReadyCheck         = "/lol-matchmaking/v1/ready-check"
	URIChampSelectSession = "/lol-champ-select/v1/session"
)

// Event is one push notification from the client.
type Event struct {
	URI       string          `json:"uri"`
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

// subscribeFrame builds the frame that subscribes to the event firehose.
func subscribeFrame() []byte {
	frame, _ := json.Marshal([]any{opSubscribe, eventTopic})
	return frame
}

// parseEvent decodes one socket frame. Frames that are not events, such as
// the empty keep-alive the client sends after subscribing, return
// (nil, nil); malformed frames return an error.
func parseEvent(frame []byte) (*Event, error) {
	if len(frame) == 0 {
		return nil, nil
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal(frame, &envelope); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if len(envelope) < 3 {
		return nil, nil
	}

	var op int
	if err := json.Unmarshal(envelope[0], &op); err != nil {
		return nil, fmt.Errorf("decode opcode: %w", err)
	}
	if op != opEvent {
		return nil, nil
	}

	var event Event
	if err := json.Unmarshal(envelope[2], &event); err != nil {
		return nil, fmt.Errorf("decode event payload: %w", err)
	}
	return &event, nil
}
