package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// historyWindow bounds how many past turns feed the AI prompt.
const historyWindow = 10

// shortInquiryMaxWords is the length cap for treating a message as a
// bare product inquiry ("ashwagandha?") rather than an order statement.
const shortInquiryMaxWords = 4

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// DialogueUseCase orchestrates one conversation turn: classify the
// intent, extract order details, then either prompt for what is missing
// or price the order and format the quotation.
type DialogueUseCase interface {
	// ProcessTurn handles one utterance against the caller-owned order
	// context and returns the reply text, the updated context and
	// whether the reply is a finished quotation.
	ProcessTurn(ctx context.Context, userID int64, username, text string, prior entity.OrderContext) (string, entity.OrderContext, bool, error)
}

type dialogueUseCase struct {
	aiRepo          repository.AIRepository // nil disables the AI path
	chatRepo        repository.ChatRepository
	catalogRepo     repository.CatalogRepository
	resetOnGreeting bool
	aiTimeout       time.Duration
}

// NewDialogueUseCase creates a DialogueUseCase. aiRepo may be nil, in
// which case only the deterministic parser runs.
func NewDialogueUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	catalogRepo repository.CatalogRepository,
	resetOnGreeting bool,
	aiTimeout time.Duration,
) DialogueUseCase {
	return &dialogueUseCase{
		aiRepo:          aiRepo,
		chatRepo:        chatRepo,
		catalogRepo:     catalogRepo,
		resetOnGreeting: resetOnGreeting,
		aiTimeout:       aiTimeout,
	}
}

// ProcessTurn handles one utterance to completion.
func (u *dialogueUseCase) ProcessTurn(ctx context.Context, userID int64, username, text string, prior entity.OrderContext) (string, entity.OrderContext, bool, error) {
	catalog, err := u.catalogRepo.Get(ctx)
	if err != nil {
		return "", prior, false, fmt.Errorf("failed to get catalog: %w", err)
	}

	response := ""
	next := prior
	quoteReady := false

	switch ClassifyIntent(text) {
	case IntentGreeting:
		response = welcomeText
		// A greeting is treated as a conversation restart signal.
		// Policy choice, configurable via RESET_ON_GREETING.
		if u.resetOnGreeting {
			next.Reset()
		}
	case IntentHelp:
		response = helpText
	case IntentThanks:
		response = thanksText
	default:
		response, next, quoteReady = u.handleOrderTurn(ctx, userID, text, prior, catalog)
	}

	u.saveTurn(ctx, userID, username, text, response)
	return response, next, quoteReady, nil
}

// handleOrderTurn runs the extraction pipeline: AI path first when
// configured, deterministic parser otherwise or on any AI failure.
func (u *dialogueUseCase) handleOrderTurn(ctx context.Context, userID int64, text string, prior entity.OrderContext, catalog *entity.Catalog) (string, entity.OrderContext, bool) {
	if u.aiRepo != nil {
		if response, next, quoteReady, ok := u.processWithAI(ctx, userID, text, prior, catalog); ok {
			return response, next, quoteReady
		}
	}

	next := ExtractOrderInfo(catalog, text, prior)

	// A product switch can leave a stale specification behind; drop it
	// rather than price the wrong tier.
	if next.Product != prior.Product && next.Specification != "" {
		if product, ok := catalog.Product(next.Product); ok {
			if _, ok := product.Spec(next.Specification); !ok {
				next.Specification = ""
			}
		}
	}

	// Short utterance naming only a product: show its tier menu.
	if menu, ok := u.specMenuFor(ctx, text, catalog); ok {
		return menu, next, false
	}

	if missing := next.MissingFields(); len(missing) > 0 {
		return buildMissingPrompt(catalog, next), next, false
	}

	return u.priceAndFormat(catalog, next, prior)
}

// priceAndFormat invokes the pricing engine over a complete context.
func (u *dialogueUseCase) priceAndFormat(catalog *entity.Catalog, next, prior entity.OrderContext) (string, entity.OrderContext, bool) {
	quote, err := ComputeQuote(catalog, next)
	if err == nil {
		return FormatQuotation(quote), next, true
	}

	var moqErr *BelowMinimumOrderError
	if errors.As(err, &moqErr) {
		// Keep the context so the user can adjust the quantity and
		// retry without re-entering everything else.
		return "❌ " + moqErr.Error(), next, false
	}

	var keyErr *UnknownCatalogKeyError
	if errors.As(err, &keyErr) {
		// Stale key after a price list change: fail closed, clear the
		// offending field and re-prompt.
		next = clearField(next, keyErr.Field)
		return "Sorry, part of your order no longer matches our current catalog. " +
			buildMissingPrompt(catalog, next), next, false
	}

	log.Printf("pricing failed: %v", err)
	return "Sorry, I couldn't price that order. Could you rephrase?", prior, false
}

// specMenuFor detects a short product-only inquiry and renders the
// product's specification menu.
func (u *dialogueUseCase) specMenuFor(ctx context.Context, text string, catalog *entity.Catalog) (string, bool) {
	if len(strings.Fields(text)) > shortInquiryMaxWords {
		return "", false
	}

	fresh := ExtractOrderInfo(catalog, text, entity.OrderContext{})
	if fresh.Product == "" || fresh.Quantity > 0 || fresh.Specification != "" ||
		fresh.Grade != "" || fresh.City != "" {
		return "", false
	}

	menu, err := NewCatalogUseCase(u.catalogRepo).SpecificationMenu(ctx, fresh.Product)
	if err != nil {
		return "", false
	}
	return menu, true
}

// saveTurn records the turn in chat history, best effort.
func (u *dialogueUseCase) saveTurn(ctx context.Context, userID int64, username, text, response string) {
	message := entity.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		Response:  response,
		Timestamp: time.Now(),
	}
	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		log.Printf("failed to save message: %v", err)
	}
}

// clearField unsets one order context field by name.
func clearField(o entity.OrderContext, field string) entity.OrderContext {
	switch field {
	case entity.FieldProduct:
		o.Product = ""
	case entity.FieldSpecification:
		o.Specification = ""
	case entity.FieldQuantity:
		o.Quantity = 0
	case entity.FieldGrade:
		o.Grade = ""
	case entity.FieldCity:
		o.City = ""
	}
	return o
}

// buildMissingPrompt acknowledges what is already known and asks for
// the missing fields in the fixed order: product, specification,
// quantity, grade, city.
func buildMissingPrompt(catalog *entity.Catalog, o entity.OrderContext) string {
	var parts []string

	if ack := acknowledgeKnown(catalog, o); ack != "" {
		parts = append(parts, ack)
	}

	parts = append(parts, "\nI just need:")
	for _, field := range o.MissingFields() {
		parts = append(parts, fieldQuestion(catalog, o, field))
	}

	parts = append(parts, "\n💡 **Tip:** You can tell me everything at once like:")
	parts = append(parts, `*"50kg Ashwagandha 5%, pharmaceutical grade, Mumbai delivery"*`)

	return strings.Join(parts, "\n")
}

func acknowledgeKnown(catalog *entity.Catalog, o entity.OrderContext) string {
	var known []string
	if o.Product != "" {
		name := titleCase(o.Product)
		if p, ok := catalog.Product(o.Product); ok {
			name = p.Name
		}
		known = append(known, fmt.Sprintf("**%s**", name))
	}
	if o.Specification != "" {
		known = append(known, fmt.Sprintf("**%s**", o.Specification))
	}
	if o.Quantity > 0 {
		known = append(known, fmt.Sprintf("**%dkg**", o.Quantity))
	}
	if o.Grade != "" {
		known = append(known, fmt.Sprintf("**%s grade**", titleCase(o.Grade)))
	}
	if o.City != "" {
		known = append(known, fmt.Sprintf("**delivery to %s**", titleCase(o.City)))
	}
	if len(known) == 0 {
		return ""
	}
	return fmt.Sprintf("Great! I have: %s ✅", strings.Join(known, ", "))
}

func fieldQuestion(catalog *entity.Catalog, o entity.OrderContext, field string) string {
	switch field {
	case entity.FieldProduct:
		names := make([]string, 0, len(catalog.Products))
		for _, p := range catalog.Products {
			names = append(names, titleCase(p.Key))
		}
		return fmt.Sprintf("• Which product? (%s)", strings.Join(names, "/"))
	case entity.FieldSpecification:
		if p, ok := catalog.Product(o.Product); ok {
			return fmt.Sprintf("• Which concentration? (%s)", strings.Join(p.SpecLabels(), "/"))
		}
		return "• Which concentration? (e.g. 5%)"
	case entity.FieldQuantity:
		return "• How many kg?"
	case entity.FieldGrade:
		names := make([]string, 0, len(catalog.Grades))
		for _, g := range catalog.Grades {
			names = append(names, titleCase(g.Key))
		}
		return fmt.Sprintf("• Which grade? (%s)", strings.Join(names, "/"))
	case entity.FieldCity:
		names := make([]string, 0, len(catalog.Zones))
		for _, z := range catalog.Zones {
			names = append(names, titleCase(z.Key))
		}
		return fmt.Sprintf("• Delivery location? (%s)", strings.Join(names, "/"))
	}
	return ""
}
