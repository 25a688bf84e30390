package models

import "time"

// Message roles. Every message is tagged with exactly one of these.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn's content, owned by exactly one session.
// IDs are assigned by the store and increase strictly in creation order,
// so ordering by id is ordering by time of arrival.
// Collection/table: messages
type Message struct {
	ID        int64     `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
