package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/npezzotti/go-clubs/internal/types"
)

type BaseMessage struct {
	Id        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is a frame sent by a subscriber. Exactly one of the
// action fields is expected to be set.
type ClientMessage struct {
	BaseMessage
	Subscribe   *Subscribe          `json:"subscribe,omitempty"`
	Unsubscribe *Unsubscribe        `json:"unsubscribe,omitempty"`
	Typing      *types.TypingStatus `json:"typing,omitempty"`
}

type Subscribe struct {
	Topic string `json:"topic"`
}

type Unsubscribe struct {
	Topic string `json:"topic"`
}

// ServerMessage is either an event published on a topic or a response
// to a client frame carrying the same id.
type ServerMessage struct {
	BaseMessage
	Topic    string    `json:"topic,omitempty"`
	Data     any       `json:"data,omitempty"`
	Response *Response `json:"response,omitempty"`
}

type Response struct {
	ResponseCode int    `json:"response_code"`
	Error        string `json:"error,omitempty"`
}

func serializeMessage(msg *ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

func Event(topic string, payload any) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Topic: topic,
		Data:  payload,
	}
}

func NoErrOK(id int) *ServerMessage {
	return response(id, http.StatusOK, "")
}

func NoErrAccepted(id int) *ServerMessage {
	return response(id, http.StatusAccepted, "")
}

func ErrTopicNotFound(id int) *ServerMessage {
	return response(id, http.StatusNotFound, "topic not found")
}

func ErrInvalidMessage(id int) *ServerMessage {
	if id < 0 {
		id = 0
	}
	return response(id, http.StatusBadRequest, "invalid message format")
}

func response(id, code int, errText string) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: code,
			Error:        errText,
		},
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
