package mqtt

import "fmt"

// TopicPrefix is the root of every godoor topic.
const TopicPrefix = "godoor"

// Topics builds the topics of one node.
//
//	topics := mqtt.Topics{ClientID: "front-door"}
//	topics.Event() // "godoor/status/node/front-door/event"
type Topics struct {
	ClientID string
}

// Event is where controller events are published.
func (t Topics) Event() string {
	return fmt.Sprintf("%s/status/node/%s/event", TopicPrefix, t.ClientID)
}

// Ping is where the periodic liveness message is published.
func (t Topics) Ping() string {
	return fmt.Sprintf("%s/status/node/%s/ping", TopicPrefix, t.ClientID)
}

// Command carries command lines for this node.
func (t Topics) Command() string {
	return fmt.Sprintf("%s/control/node/%s/command", TopicPrefix, t.ClientID)
}

// Light carries light level readings for this node.
func (t Topics) Light() string {
	return fmt.Sprintf("%s/sensor/node/%s/light", TopicPrefix, t.ClientID)
}
