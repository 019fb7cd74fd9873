package usecase

import (
	"regexp"
	"strings"
)

// Intent is the cheap per-turn classification used to short-circuit
// extraction for conversational niceties.
type Intent int

const (
	IntentOrder Intent = iota // default: run the extractor
	IntentGreeting
	IntentHelp
	IntentThanks
)

// String returns the intent tag used in logs and AI replies.
func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentHelp:
		return "help"
	case IntentThanks:
		return "thanks"
	default:
		return "order"
	}
}

// intentRule maps a detector to an intent tag. Rules are evaluated in
// order and the first hit wins, so the table stays independently
// testable and easy to extend.
type intentRule struct {
	intent Intent
	match  func(lower string) bool
}

var greetingWords = []string{
	"hi", "hello", "hey", "namaste",
	"good morning", "good afternoon", "good evening",
}

var intentRules = []intentRule{
	{IntentGreeting, isGreeting},
	{IntentHelp, containsAny("help", "how to", "what can you")},
	{IntentThanks, containsAny("thank you", "thanks", "thx")},
}

// ClassifyIntent tags one utterance. Anything that is not a greeting,
// a help request or a thank-you is treated as order conversation.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range intentRules {
		if rule.match(lower) {
			return rule.intent
		}
	}
	return IntentOrder
}

// isGreeting matches a greeting word at the start or end of the
// message, or the whole message.
func isGreeting(lower string) bool {
	for _, g := range greetingWords {
		if lower == g {
			return true
		}
		if regexp.MustCompile(`^` + g + `\b`).MatchString(lower) {
			return true
		}
		if regexp.MustCompile(`\b` + g + `$`).MatchString(lower) {
			return true
		}
	}
	return false
}

func containsAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}
