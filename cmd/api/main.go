package main

import (
	_ "embed"
	"log"
	"log/slog"
	"net/http"
	"os"

	"satoshigpt/internal/assistant"
	"satoshigpt/internal/handler"
	"satoshigpt/internal/repository"
	"satoshigpt/pkg/llm"
	"satoshigpt/pkg/market"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed web/index.html
var indexHTML []byte

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cmcKey := os.Getenv("COINMARKETCAP_API_KEY")
	if cmcKey == "" {
		log.Fatal("COINMARKETCAP_API_KEY is not set")
	}

	chat := newChatClient()
	marketClient := market.NewCoinMarketCapClient(cmcKey)

	store := repository.NewConversationRepository()
	responder := assistant.New(chat, marketClient)

	chatHandler := handler.NewChatHandler(store, responder)
	conversationHandler := handler.NewConversationHandler(store)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	r.GET("/health", conversationHandler.GetHealth)

	r.GET("/api/conversations", conversationHandler.List)
	r.POST("/api/conversations", conversationHandler.Create)
	r.GET("/api/conversations/:id", conversationHandler.Get)
	r.DELETE("/api/conversations/:id", conversationHandler.Delete)
	r.POST("/api/chat", chatHandler.Chat)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// newChatClient picks the LLM provider from the environment. OpenAI is the
// default; LLM_PROVIDER=anthropic switches backends.
func newChatClient() llm.ChatClient {
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			log.Fatal("ANTHROPIC_API_KEY is not set")
		}
		return llm.NewAnthropicClient(key)
	}

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}
	return llm.NewOpenAIClient(key)
}
