package models

import "time"

// Session represents one named conversation thread.
// Collection/table: sessions
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// DefaultSessionTitle is used whenever a session is created without a
// usable title.
const DefaultSessionTitle = "New Chat"
