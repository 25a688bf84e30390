package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dev-chat/api/handlers"
	"dev-chat/api/middleware"
	"dev-chat/config"
	_ "dev-chat/docs"
	"dev-chat/services"
	"dev-chat/storage"
)

func New(store storage.Store, chatSvc *services.ChatService, llmCfg config.LLMConfig) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "storage": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/config", handlers.ConfigHandler())

		api.GET("/sessions", handlers.ListSessionsHandler(chatSvc))
		api.POST("/sessions", handlers.CreateSessionHandler(chatSvc))
		api.PATCH("/sessions/:id", handlers.RenameSessionHandler(chatSvc))
		api.DELETE("/sessions/:id", handlers.DeleteSessionHandler(chatSvc))
		api.GET("/sessions/:id/messages", handlers.ListMessagesHandler(chatSvc))

		api.POST("/chat", handlers.ChatHandler(chatSvc, llmCfg))
	}

	return r
}
