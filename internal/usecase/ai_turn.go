package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// aiReply is the structured answer expected from the language model.
type aiReply struct {
	Response            string         `json:"response"`
	Intent              string         `json:"intent"`
	OrderContext        map[string]any `json:"order_context"`
	ShouldGenerateQuote bool           `json:"should_generate_quote"`
}

// processWithAI runs one turn through the language model. The last
// return value reports whether the AI path produced a usable answer;
// false means the caller must fall back to the deterministic parser.
func (u *dialogueUseCase) processWithAI(ctx context.Context, userID int64, text string, prior entity.OrderContext, catalog *entity.Catalog) (string, entity.OrderContext, bool, bool) {
	aiCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	history, err := u.chatRepo.GetHistory(aiCtx, userID, historyWindow)
	if err != nil {
		log.Printf("failed to get chat history: %v", err)
	}

	prompt := buildAIPrompt(catalog, history, prior, text)

	raw, err := u.aiRepo.Complete(aiCtx, prompt)
	if err != nil {
		log.Printf("AI completion failed, falling back to parser: %v", err)
		return "", prior, false, false
	}

	reply, err := parseAIReply(raw)
	if err != nil {
		log.Printf("AI reply unusable, falling back to parser: %v", err)
		return "", prior, false, false
	}

	next := mergeAIContext(catalog, prior, reply.OrderContext)

	if reply.ShouldGenerateQuote && next.IsComplete() {
		quote, err := ComputeQuote(catalog, next)
		if err != nil {
			var moqErr *BelowMinimumOrderError
			if errors.As(err, &moqErr) {
				return "❌ " + moqErr.Error(), next, false, true
			}
			log.Printf("AI-driven pricing failed, falling back to parser: %v", err)
			return "", prior, false, false
		}
		return FormatQuotation(quote), next, true, true
	}

	if strings.TrimSpace(reply.Response) == "" {
		return "", prior, false, false
	}
	return reply.Response, next, false, true
}

// buildAIPrompt assembles the full model prompt: assistant role,
// catalog summary, recent history, current order context and the new
// message, plus the JSON answer contract.
func buildAIPrompt(catalog *entity.Catalog, history []entity.Message, prior entity.OrderContext, text string) string {
	var b strings.Builder

	b.WriteString("You are an AI sales assistant for Alchemy Chemicals, a premium herbal extract manufacturer in India.\n")
	b.WriteString("Help customers get quotations for herbal extracts. Be warm, concise and professional.\n\n")

	b.WriteString(BuildCatalogSummary(catalog))
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("CONVERSATION HISTORY (oldest first):\n")
		for _, m := range history {
			b.WriteString("Customer: " + m.Text + "\n")
			if m.Response != "" {
				b.WriteString("Assistant: " + m.Response + "\n")
			}
		}
		b.WriteString("\n")
	}

	contextJSON, err := json.Marshal(prior)
	if err != nil {
		contextJSON = []byte("{}")
	}
	b.WriteString("CURRENT ORDER CONTEXT (what we know so far):\n")
	b.Write(contextJSON)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("NEW CUSTOMER MESSAGE: \"%s\"\n\n", text))

	b.WriteString(`INSTRUCTIONS:
1. Extract any order details from the message and merge them with the current order context. Never drop details the customer already gave.
2. Map product, grade and city mentions to the catalog keys above, tolerating misspellings.
3. If all five details (product, specification, quantity, grade, city) are known, set should_generate_quote to true.
4. Otherwise ask for the missing details in a friendly way.
5. Answer ONLY with a JSON object of this exact shape:
{"response": "<your reply to the customer>", "intent": "order", "order_context": {"product": null, "specification": null, "quantity": null, "grade": null, "city": null}, "should_generate_quote": false}
Use null for details that are still unknown.`)

	return b.String()
}

// parseAIReply extracts and decodes the JSON object from a model
// answer that may be wrapped in prose or markdown fences.
func parseAIReply(raw string) (*aiReply, error) {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in AI reply")
	}

	var reply aiReply
	if err := json.Unmarshal([]byte(match), &reply); err != nil {
		return nil, fmt.Errorf("failed to decode AI reply: %w", err)
	}
	return &reply, nil
}

// mergeAIContext folds model-extracted fields into the prior context.
// Every value is validated against the catalog before it is accepted;
// unrecognized values are discarded rather than trusted.
func mergeAIContext(catalog *entity.Catalog, prior entity.OrderContext, fields map[string]any) entity.OrderContext {
	next := prior
	if fields == nil {
		return next
	}

	if raw, ok := stringField(fields, entity.FieldProduct); ok {
		if key, ok := ResolveKey(raw, catalog.ProductEntries()); ok {
			next.Product = key
		}
	}

	if raw, ok := stringField(fields, entity.FieldSpecification); ok {
		if label, ok := normalizeSpecification(catalog, next.Product, raw); ok {
			next.Specification = label
		}
	}

	if qty, ok := intField(fields, entity.FieldQuantity); ok && qty > 0 {
		next.Quantity = qty
	}

	if raw, ok := stringField(fields, entity.FieldGrade); ok {
		if key, ok := ResolveKey(raw, catalog.GradeEntries()); ok {
			next.Grade = key
		}
	}

	if raw, ok := stringField(fields, entity.FieldCity); ok {
		if key, ok := ResolveKey(raw, catalog.ZoneEntries()); ok {
			next.City = key
		}
	}

	return next
}

// normalizeSpecification maps a free-form concentration value onto a
// catalog label. When the product is unknown the raw "N%" form is kept
// so a later product mention can validate it.
func normalizeSpecification(catalog *entity.Catalog, productKey, raw string) (string, bool) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return "", false
	}
	if !strings.HasSuffix(label, "%") {
		if _, err := strconv.ParseFloat(label, 64); err != nil {
			return "", false
		}
		label += "%"
	}

	product, ok := catalog.Product(productKey)
	if !ok {
		return label, true
	}
	if _, ok := product.Spec(label); ok {
		return label, true
	}

	// Second chance on numeric value: "5.0%" should match "5%".
	want, err := strconv.ParseFloat(strings.TrimSuffix(label, "%"), 64)
	if err != nil {
		return "", false
	}
	for _, spec := range product.Specifications {
		have, err := strconv.ParseFloat(strings.TrimSuffix(spec.Label, "%"), 64)
		if err == nil && have == want {
			return spec.Label, true
		}
	}
	return "", false
}

func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func intField(fields map[string]any, key string) (int, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.ToLower(t), "kg")))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
