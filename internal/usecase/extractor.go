package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// Quantity patterns in priority order: explicit units first, then the
// conversational "for/need/want N" forms.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*kgs?\b`),
	regexp.MustCompile(`(\d+)\s*kilograms?\b`),
	regexp.MustCompile(`(\d+)\s*kilos?\b`),
	regexp.MustCompile(`\bfor\s+(\d+)\b`),
	regexp.MustCompile(`\bneed\s+(\d+)\b`),
	regexp.MustCompile(`\bwant\s+(\d+)\b`),
}

var specificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*percent\b`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*concentration\b`),
}

var bareNumberPattern = regexp.MustCompile(`^\d+$`)

// ExtractOrderInfo reads one utterance against the prior order context
// and returns the merged result. It never mutates prior: a newly
// detected value overwrites, an undetected field keeps its old value.
// This supports both "all at once" and incremental multi-turn input.
func ExtractOrderInfo(catalog *entity.Catalog, utterance string, prior entity.OrderContext) entity.OrderContext {
	next := prior
	lower := strings.ToLower(utterance)

	// Product: a newly named product always replaces the old one,
	// switching products mid-conversation is supported.
	if key, ok := ResolveKey(lower, catalog.ProductEntries()); ok {
		next.Product = key
	}

	if qty, ok := extractQuantity(lower, utterance); ok {
		next.Quantity = qty
	}

	if spec, ok := extractSpecification(catalog, lower, next.Product); ok {
		next.Specification = spec
	}

	if grade, ok := extractGrade(catalog, lower); ok {
		next.Grade = grade
	}

	if city, ok := extractCity(catalog, lower); ok {
		next.City = city
	}

	return next
}

// extractQuantity tries the patterns in priority order; a message that
// is nothing but digits is taken as a quantity. That shortcut handles
// single-word follow-up answers ("how many kg?" -> "50") but can
// misfire when the user is answering a different pending question —
// documented behavior, kept from the original flow.
func extractQuantity(lower, raw string) (int, bool) {
	for _, p := range quantityPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			if qty, err := strconv.Atoi(m[1]); err == nil {
				return qty, true
			}
		}
	}

	if trimmed := strings.TrimSpace(raw); bareNumberPattern.MatchString(trimmed) {
		if qty, err := strconv.Atoi(trimmed); err == nil {
			return qty, true
		}
	}

	return 0, false
}

// extractSpecification looks for a percentage mention. When the product
// is already known the value is validated against its defined tiers; a
// number that matches no tier is treated as not found rather than
// guessing a wrong one.
func extractSpecification(catalog *entity.Catalog, lower, productKey string) (string, bool) {
	var rawNumber string
	for _, p := range specificationPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			rawNumber = m[1]
			break
		}
	}
	if rawNumber == "" {
		return "", false
	}

	label := rawNumber + "%"
	product, known := catalog.Product(productKey)
	if !known {
		return label, true
	}

	if _, ok := product.Spec(label); ok {
		return label, true
	}

	// Second chance: match by numeric value ignoring the percent sign,
	// so "5.0" still finds the "5%" tier.
	if want, err := strconv.ParseFloat(rawNumber, 64); err == nil {
		for _, s := range product.Specifications {
			if have, err := strconv.ParseFloat(strings.TrimSuffix(s.Label, "%"), 64); err == nil && have == want {
				return s.Label, true
			}
		}
	}

	return "", false
}

// extractGrade is a containment match over grade keys and aliases.
func extractGrade(catalog *entity.Catalog, lower string) (string, bool) {
	for _, g := range catalog.Grades {
		if strings.Contains(lower, g.Key) {
			return g.Key, true
		}
		for _, alias := range g.Aliases {
			if strings.Contains(lower, alias) {
				return g.Key, true
			}
		}
	}
	return "", false
}

// extractCity tests word-boundary patterns for each known city and each
// of its aliases; the first city in catalog order with any hit wins.
func extractCity(catalog *entity.Catalog, lower string) (string, bool) {
	for _, zone := range catalog.Zones {
		names := append([]string{zone.Key}, zone.Aliases...)
		for _, name := range names {
			if cityMentioned(lower, name) {
				return zone.Key, true
			}
		}
	}
	return "", false
}

func cityMentioned(lower, name string) bool {
	quoted := regexp.QuoteMeta(name)
	patterns := []string{
		fmt.Sprintf(`\b(?:in|to|at|for|deliver to|delivery to|ship to)\s+%s\b`, quoted),
		fmt.Sprintf(`\b%s\b\s*(?:delivery|deliver|ship)`, quoted),
		fmt.Sprintf(`\b%s\b`, quoted),
	}
	for _, p := range patterns {
		if regexp.MustCompile(p).MatchString(lower) {
			return true
		}
	}
	return false
}
