package domain

import "time"

// Message is one entry in a chat transcript. Content is micro-format source.
type Message struct {
	ID        string      `json:"id"`
	Sender    Sender      `json:"sender"`
	Kind      MessageKind `json:"kind"`
	Content   string      `json:"content"`
	Topic     Topic       `json:"topic,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// FromUser reports whether the message was typed by the user.
func (m Message) FromUser() bool {
	return m.Sender == SenderUser
}
