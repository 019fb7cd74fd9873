package usecase

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"hi", IntentGreeting},
		{"Hello", IntentGreeting},
		{"namaste", IntentGreeting},
		{"good morning", IntentGreeting},
		{"hello, i need 50kg ashwagandha", IntentGreeting},
		{"help", IntentHelp},
		{"how to order?", IntentHelp},
		{"what can you do", IntentHelp},
		{"thanks a lot", IntentThanks},
		{"thank you!", IntentThanks},
		{"thx", IntentThanks},
		{"50kg curcumin 95%", IntentOrder},
		{"pharmaceutical grade to delhi", IntentOrder},
		{"highway delivery to pune", IntentOrder},
		{"", IntentOrder},
	}

	for _, tt := range tests {
		if got := ClassifyIntent(tt.input); got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIntentString(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentOrder, "order"},
		{IntentGreeting, "greeting"},
		{IntentHelp, "help"},
		{IntentThanks, "thanks"},
	}

	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.intent, got, tt.want)
		}
	}
}
