package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/quotation-ai-bot/config"
	"github.com/yourusername/quotation-ai-bot/internal/delivery/telegram"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/gemini"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/parser"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/storage"
	"github.com/yourusername/quotation-ai-bot/internal/usecase"
)

func main() {
	log.Println("🚀 Starting Alchemy Chemicals quotation bot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Chat history: SQLite when a path is configured, memory otherwise.
	var chatRepo repository.ChatRepository
	if cfg.ChatDBPath != "" {
		sqliteRepo, err := storage.NewSQLiteChatRepository(cfg.ChatDBPath, cfg.MaxContextSize)
		if err != nil {
			log.Fatalf("❌ Failed to open chat database: %v", err)
		}
		defer sqliteRepo.Close()
		chatRepo = sqliteRepo
		log.Printf("💾 Chat history: SQLite at %s", cfg.ChatDBPath)
	} else {
		chatRepo = storage.NewMemoryChatRepository(cfg.MaxContextSize)
		log.Println("💾 Chat history: in-memory")
	}

	catalogRepo := storage.NewMemoryCatalogRepository()
	adminRepo := storage.NewMemoryAdminRepository()
	pricelistParser := parser.NewExcelPricelistParser()

	// Gemini is optional; without a key the deterministic parser
	// handles every turn on its own.
	var aiRepo repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("❌ Failed to create Gemini client: %v", err)
		}
		defer client.Close()
		aiRepo = client
		log.Println("🤖 AI mode: Gemini enabled")
	} else {
		log.Println("🔧 AI mode: deterministic parser only")
	}

	if cfg.AdminPassword == "" {
		log.Println("🔒 Admin features disabled (no ADMIN_PASSWORD)")
	}

	dialogueUC := usecase.NewDialogueUseCase(aiRepo, chatRepo, catalogRepo, cfg.ResetOnGreeting, cfg.AITimeout)
	adminUC := usecase.NewAdminUseCase(adminRepo, catalogRepo, chatRepo, pricelistParser, cfg.AdminPassword)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("❌ Failed to create bot: %v", err)
	}

	handler := telegram.NewBotHandler(bot, dialogueUC, adminUC, catalogUC)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("🛑 Shutting down...")
		cancel()
	}()

	handler.Start(ctx)
	log.Println("✅ Bot stopped")
}
