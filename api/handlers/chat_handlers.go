package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"dev-chat/chat"
	"dev-chat/config"
	"dev-chat/dto"
	"dev-chat/services"
	"dev-chat/storage"
)

// ChatHandler godoc
// @Summary      Chat turn
// @Description  Append the prompt to the session, generate a reply and return the full transcript. Provider failures degrade into demo replies, never into request errors.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /chat [post]
func ChatHandler(svc *services.ChatService, llmCfg config.LLMConfig) gin.HandlerFunc {
	llmCfg = llmCfg.WithDefaults()
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "sessionId and prompt are required."})
			return
		}

		genCfg := chat.GenerateConfig{
			Provider:    req.Provider,
			Model:       req.Model,
			Temperature: llmCfg.Temperature,
			MaxTokens:   llmCfg.MaxTokens,
		}
		if genCfg.Provider == "" {
			genCfg.Provider = llmCfg.DefaultProvider
		}
		if genCfg.Model == "" {
			genCfg.Model = llmCfg.DefaultModel
		}
		if req.Temperature != nil {
			genCfg.Temperature = *req.Temperature
		}
		if req.MaxTokens != nil {
			genCfg.MaxTokens = *req.MaxTokens
		}

		result, err := svc.HandleTurn(c.Request.Context(), req.SessionID, req.Prompt, genCfg)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRequest) || errors.Is(err, storage.ErrUnknownSession) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, dto.ChatResponseDTO{
			Reply:    result.Reply,
			Messages: dto.NewMessageDTOs(result.Messages),
		})
	}
}

// ConfigHandler godoc
// @Summary      Client configuration
// @Description  Reports whether an external provider credential is configured.
// @Tags         config
// @Produce      json
// @Success      200  {object}  dto.ConfigResponseDTO
// @Router       /config [get]
func ConfigHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		hasCredential := os.Getenv("OPENAI_API_KEY") != "" || os.Getenv("GEMINI_API_KEY") != ""
		c.JSON(http.StatusOK, dto.ConfigResponseDTO{HasExternalCredential: hasCredential})
	}
}
