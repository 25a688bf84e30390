package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dev-chat/dto"
	"dev-chat/services"
	"dev-chat/storage"
)

// ListSessionsHandler godoc
// @Summary      List sessions
// @Description  List all chat sessions, newest first
// @Tags         sessions
// @Produce      json
// @Success      200  {array}  dto.SessionDTO
// @Router       /sessions [get]
func ListSessionsHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := svc.ListSessions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		out := make([]dto.SessionDTO, len(sessions))
		for i, s := range sessions {
			out[i] = dto.NewSessionDTO(s)
		}
		c.JSON(http.StatusOK, out)
	}
}

// CreateSessionHandler godoc
// @Summary      Create session
// @Description  Create a new chat session. A blank title defaults to "New Chat".
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSessionRequestDTO  false  "session title"
// @Success      201   {object}  dto.CreateSessionResponseDTO
// @Router       /sessions [post]
func CreateSessionHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateSessionRequestDTO
		// Body is optional; a missing or malformed one just means default title.
		_ = c.ShouldBindJSON(&req)

		sess, err := svc.CreateSession(c.Request.Context(), req.Title)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, storage.ErrDuplicateID) {
				status = http.StatusConflict
			}
			c.JSON(status, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dto.CreateSessionResponseDTO{ID: sess.ID, Title: sess.Title})
	}
}

// RenameSessionHandler godoc
// @Summary      Rename session
// @Description  Update a session title. Renaming an unknown id is a no-op.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "session id"
// @Param        body  body      dto.RenameSessionRequestDTO  true  "new title"
// @Success      200   {object}  dto.OkResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /sessions/{id} [patch]
func RenameSessionHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RenameSessionRequestDTO
		_ = c.ShouldBindJSON(&req)

		err := svc.RenameSession(c.Request.Context(), c.Param("id"), req.Title)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRequest) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "Title is required."})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.OkResponseDTO{OK: true})
	}
}

// DeleteSessionHandler godoc
// @Summary      Delete session
// @Description  Delete a session and its messages. When the last session is deleted a fresh default one is created.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  dto.OkResponseDTO
// @Router       /sessions/{id} [delete]
func DeleteSessionHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.OkResponseDTO{OK: true})
	}
}

// ListMessagesHandler godoc
// @Summary      Session transcript
// @Description  Full chronological transcript of a session
// @Tags         sessions
// @Produce      json
// @Param        id   path     string  true  "session id"
// @Success      200  {array}  dto.MessageDTO
// @Router       /sessions/{id}/messages [get]
func ListMessagesHandler(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := svc.GetTranscript(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.NewMessageDTOs(msgs))
	}
}
