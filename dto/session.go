package dto

import (
	"time"

	"dev-chat/models"
)

// SessionDTO is the public shape of a session.
type SessionDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSessionDTO(s models.Session) SessionDTO {
	return SessionDTO{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt}
}

type CreateSessionRequestDTO struct {
	Title string `json:"title"`
}

type CreateSessionResponseDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type RenameSessionRequestDTO struct {
	Title string `json:"title"`
}
