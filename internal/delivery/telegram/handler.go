package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/usecase"
)

// maxUploadSize caps admin price list uploads.
const maxUploadSize = 5 * 1024 * 1024

// BotHandler wires Telegram updates to the use cases. Order contexts
// live here, one per chat, guarded by per-user locks so concurrent
// messages from the same user are processed in order.
type BotHandler struct {
	bot      *tgbotapi.BotAPI
	dialogue usecase.DialogueUseCase
	admin    usecase.AdminUseCase
	catalog  usecase.CatalogUseCase

	mu               sync.Mutex
	orders           map[int64]entity.OrderContext
	userLocks        map[int64]*sync.Mutex
	awaitingPassword map[int64]bool
}

// NewBotHandler creates the handler.
func NewBotHandler(
	bot *tgbotapi.BotAPI,
	dialogue usecase.DialogueUseCase,
	admin usecase.AdminUseCase,
	catalog usecase.CatalogUseCase,
) *BotHandler {
	return &BotHandler{
		bot:              bot,
		dialogue:         dialogue,
		admin:            admin,
		catalog:          catalog,
		orders:           make(map[int64]entity.OrderContext),
		userLocks:        make(map[int64]*sync.Mutex),
		awaitingPassword: make(map[int64]bool),
	}
}

// Start runs the update loop until ctx is cancelled.
func (h *BotHandler) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)

	log.Printf("🤖 Bot started: @%s", h.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	switch {
	case msg.Document != nil:
		h.handleDocument(ctx, msg)
	case h.isAwaitingPassword(userID):
		h.handlePassword(ctx, msg)
	case msg.IsCommand():
		h.handleCommand(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		h.handleText(ctx, msg)
	default:
		h.send(chatID, "Please send me a text message describing your order, or /help.")
	}
}

func (h *BotHandler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		h.setOrder(userID, entity.OrderContext{})
		h.runTurn(ctx, msg, "hello")
	case "help":
		h.runTurn(ctx, msg, "help")
	case "newquote":
		h.setOrder(userID, entity.OrderContext{})
		h.send(chatID, "🆕 Fresh quotation started. What do you need?")
	case "order":
		h.send(chatID, h.orderStatus(userID))
	case "catalog":
		summary, err := h.catalog.Summary(ctx)
		if err != nil {
			log.Printf("failed to build catalog summary: %v", err)
			h.send(chatID, "Sorry, the catalog is unavailable right now.")
			return
		}
		h.send(chatID, summary)
	case "clear":
		h.setOrder(userID, entity.OrderContext{})
		h.send(chatID, "🗑 Order details cleared. Start whenever you're ready.")
	case "admin":
		h.setAwaitingPassword(userID, true)
		h.send(chatID, "🔐 Send the admin password.")
	case "logout":
		if err := h.admin.Logout(ctx, userID); err != nil {
			log.Printf("logout failed: %v", err)
		}
		h.send(chatID, "👋 Logged out of admin mode.")
	case "status":
		if !h.admin.IsAdmin(ctx, userID) {
			h.send(chatID, "Admin rights required. Use /admin to log in.")
			return
		}
		info, err := h.admin.GetCatalogInfo(ctx)
		if err != nil {
			log.Printf("catalog info failed: %v", err)
			h.send(chatID, "Failed to read catalog status.")
			return
		}
		h.send(chatID, info)
	case "reset":
		if !h.admin.IsAdmin(ctx, userID) {
			h.send(chatID, "Admin rights required. Use /admin to log in.")
			return
		}
		if err := h.admin.CleanAll(ctx, userID); err != nil {
			log.Printf("reset failed: %v", err)
			h.send(chatID, "Reset failed: "+err.Error())
			return
		}
		h.send(chatID, "♻️ Catalog restored to defaults and chat history cleared.")
	default:
		h.send(chatID, "Unknown command. Try /help.")
	}
}

func (h *BotHandler) handlePassword(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	h.setAwaitingPassword(userID, false)

	// Remove the password message from the chat.
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		log.Printf("failed to delete password message: %v", err)
	}

	if err := h.admin.Login(ctx, userID, msg.Text); err != nil {
		h.send(chatID, "❌ Login failed: "+err.Error())
		return
	}
	h.send(chatID, "✅ Admin mode enabled.\n\nUpload an .xlsx price list to replace the catalog, "+
		"/status for catalog info, /reset to restore defaults, /logout to leave.")
}

func (h *BotHandler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	prior := h.order(userID)
	response, next, quoteReady, err := h.dialogue.ProcessTurn(ctx, userID, msg.From.UserName, msg.Text, prior)
	if err != nil {
		log.Printf("turn failed for user %d: %v", userID, err)
		h.send(chatID, "Sorry, something went wrong. Please try again.")
		return
	}
	h.setOrder(userID, next)

	h.send(chatID, response)

	if quoteReady {
		h.sendQuoteDocument(chatID, next, response)
		h.send(chatID, "📌 What next? You can adjust any detail (e.g. *\"make it 100kg\"*) "+
			"for an updated quote, or /newquote to start over.")
	}
}

// runTurn feeds a synthetic utterance through the dialogue flow, used
// by commands that map onto intents.
func (h *BotHandler) runTurn(ctx context.Context, msg *tgbotapi.Message, text string) {
	userID := msg.From.ID

	prior := h.order(userID)
	response, next, _, err := h.dialogue.ProcessTurn(ctx, userID, msg.From.UserName, text, prior)
	if err != nil {
		log.Printf("turn failed for user %d: %v", userID, err)
		h.send(msg.Chat.ID, "Sorry, something went wrong. Please try again.")
		return
	}
	h.setOrder(userID, next)
	h.send(msg.Chat.ID, response)
}

// sendQuoteDocument attaches the quotation as a downloadable text file.
func (h *BotHandler) sendQuoteDocument(chatID int64, order entity.OrderContext, quoteText string) {
	name := fmt.Sprintf("quotation_%s_%s.txt", order.Product, time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  name,
		Bytes: []byte(stripMarkdown(quoteText)),
	})
	doc.Caption = "📄 Your quotation as a file"
	if _, err := h.bot.Send(doc); err != nil {
		log.Printf("failed to send quotation file: %v", err)
	}
}

func (h *BotHandler) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !h.admin.IsAdmin(ctx, userID) {
		h.send(chatID, "Only admins can upload price lists. Use /admin to log in.")
		return
	}

	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.send(chatID, "Please upload an .xlsx price list.")
		return
	}
	if doc.FileSize > maxUploadSize {
		h.send(chatID, "File too large, the limit is 5 MB.")
		return
	}

	data, err := h.downloadFile(doc.FileID)
	if err != nil {
		log.Printf("failed to download %s: %v", doc.FileName, err)
		h.send(chatID, "Failed to download the file, please try again.")
		return
	}

	count, err := h.admin.UploadPricelist(ctx, userID, data, doc.FileName)
	if err != nil {
		h.send(chatID, "❌ Price list rejected: "+err.Error())
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Catalog updated: %d products loaded from %s", count, doc.FileName))
}

func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	resp, err := http.Get(file.Link(h.bot.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

// orderStatus renders the current context for the /order command.
func (h *BotHandler) orderStatus(userID int64) string {
	o := h.order(userID)
	if o.IsEmpty() {
		return "📋 No order details yet. Just tell me what you need!"
	}

	line := func(label, value string) string {
		if value == "" {
			return fmt.Sprintf("• %s: —", label)
		}
		return fmt.Sprintf("• %s: %s", label, value)
	}

	qty := ""
	if o.Quantity > 0 {
		qty = fmt.Sprintf("%dkg", o.Quantity)
	}

	return strings.Join([]string{
		"📋 **Current order details:**",
		line("Product", o.Product),
		line("Specification", o.Specification),
		line("Quantity", qty),
		line("Grade", o.Grade),
		line("Delivery", o.City),
	}, "\n")
}

func (h *BotHandler) send(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(m); err != nil {
		// Markdown entities in user text can break parsing; retry plain.
		m.ParseMode = ""
		if _, err := h.bot.Send(m); err != nil {
			log.Printf("failed to send message to %d: %v", chatID, err)
		}
	}
}

func (h *BotHandler) userLock(userID int64) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock, ok := h.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		h.userLocks[userID] = lock
	}
	return lock
}

func (h *BotHandler) order(userID int64) entity.OrderContext {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.orders[userID]
}

func (h *BotHandler) setOrder(userID int64, o entity.OrderContext) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders[userID] = o
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.awaitingPassword[userID] = v
}

// stripMarkdown removes formatting markers for the plain-text file copy.
func stripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "*", "", "`", "").Replace(s)
}
