package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"dev-chat/api/router"
	"dev-chat/chat"
	"dev-chat/config"
	"dev-chat/logger"
	"dev-chat/services"
	"dev-chat/storage"
)

// startupSessionTitle names the session auto-created on first boot so an
// empty database still has somewhere to chat.
const startupSessionTitle = "First Chat"

// @title           Dev-Chat API
// @version         1.0
// @description     Chat backend with session persistence and demo/LLM reply generation
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to open storage:", err)
	}
	defer store.Close()

	llmCfg := cfg.LLM.WithDefaults()
	engine := chat.NewEngine(time.Duration(llmCfg.RequestTimeoutSeconds) * time.Second)
	chatSvc := services.NewChatService(store, engine)

	if err := chatSvc.EnsureDefaultSession(ctx, startupSessionTitle); err != nil {
		log.Fatal("failed to ensure default session:", err)
	}

	r := router.New(store, chatSvc, llmCfg)

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	handler := cors.Default().Handler(r)
	logger.Log.Infof("dev-chat listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
