package server

import "errors"

const (
	TopicClubs       = "clubs"
	TopicClubsDelete = "clubs/delete"
	TopicMessages    = "messages"
	TopicTyping      = "typing"
)

var (
	ErrUnknownTopic = errors.New("unknown topic")
	ErrHubClosed    = errors.New("hub is shut down")
)

// Topics lists every topic a client may subscribe to.
var Topics = []string{TopicClubs, TopicClubsDelete, TopicMessages, TopicTyping}

type subscribers map[*Client]struct{}

func newTopicRegistry() map[string]subscribers {
	reg := make(map[string]subscribers, len(Topics))
	for _, t := range Topics {
		reg[t] = make(subscribers)
	}
	return reg
}
