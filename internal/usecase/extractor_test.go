package usecase

import (
	"testing"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/storage"
)

func TestExtractOrderInfo_FullSentence(t *testing.T) {
	catalog := storage.DefaultCatalog()

	got := ExtractOrderInfo(&catalog,
		"I need 50kg Ashwagandha 5%, pharmaceutical grade, delivery to Mumbai",
		entity.OrderContext{})

	want := entity.OrderContext{
		Product:       "ashwagandha",
		Specification: "5%",
		Quantity:      50,
		Grade:         "pharmaceutical",
		City:          "mumbai",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractOrderInfo_IncrementalMerge(t *testing.T) {
	catalog := storage.DefaultCatalog()

	ctx := entity.OrderContext{}
	turns := []struct {
		utterance string
		want      entity.OrderContext
	}{
		{"ashwagandha please", entity.OrderContext{Product: "ashwagandha"}},
		{"5%", entity.OrderContext{Product: "ashwagandha", Specification: "5%"}},
		{"50", entity.OrderContext{Product: "ashwagandha", Specification: "5%", Quantity: 50}},
		{"pharma grade", entity.OrderContext{Product: "ashwagandha", Specification: "5%", Quantity: 50, Grade: "pharmaceutical"}},
		{"ship to bombay", entity.OrderContext{Product: "ashwagandha", Specification: "5%", Quantity: 50, Grade: "pharmaceutical", City: "mumbai"}},
	}

	for _, turn := range turns {
		ctx = ExtractOrderInfo(&catalog, turn.utterance, ctx)
		if ctx != turn.want {
			t.Fatalf("after %q: got %+v, want %+v", turn.utterance, ctx, turn.want)
		}
	}

	if !ctx.IsComplete() {
		t.Errorf("context should be complete, missing %v", ctx.MissingFields())
	}
}

func TestExtractOrderInfo_NoProductNamed(t *testing.T) {
	catalog := storage.DefaultCatalog()

	// "need" must not land on neem; every other field still extracts.
	got := ExtractOrderInfo(&catalog,
		"I need 50kg, pharmaceutical grade, delivery to Mumbai",
		entity.OrderContext{})

	want := entity.OrderContext{
		Quantity: 50,
		Grade:    "pharmaceutical",
		City:     "mumbai",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractOrderInfo_NoSignalKeepsContext(t *testing.T) {
	catalog := storage.DefaultCatalog()

	prior := entity.OrderContext{Product: "curcumin", Specification: "95%", Quantity: 100}
	got := ExtractOrderInfo(&catalog, "ok", prior)
	if got != prior {
		t.Errorf("neutral utterance changed context: got %+v, want %+v", got, prior)
	}
}

func TestExtractOrderInfo_Idempotent(t *testing.T) {
	catalog := storage.DefaultCatalog()

	utterance := "50kg ashwagandha 5% pharma grade mumbai"
	once := ExtractOrderInfo(&catalog, utterance, entity.OrderContext{})
	twice := ExtractOrderInfo(&catalog, utterance, once)
	if once != twice {
		t.Errorf("re-extraction changed context: %+v vs %+v", once, twice)
	}
}

func TestExtractOrderInfo_UndefinedSpecification(t *testing.T) {
	catalog := storage.DefaultCatalog()

	// Ashwagandha has no 7% tier; the mention must not fill the field.
	got := ExtractOrderInfo(&catalog, "ashwagandha 7%", entity.OrderContext{})
	if got.Specification != "" {
		t.Errorf("undefined tier accepted: %q", got.Specification)
	}
	if got.Product != "ashwagandha" {
		t.Errorf("product = %q, want ashwagandha", got.Product)
	}
}

func TestExtractOrderInfo_ProductSwitch(t *testing.T) {
	catalog := storage.DefaultCatalog()

	prior := entity.OrderContext{Product: "curcumin", Quantity: 100}
	got := ExtractOrderInfo(&catalog, "actually make it neem", prior)
	if got.Product != "neem" {
		t.Errorf("product = %q, want neem", got.Product)
	}
	if got.Quantity != 100 {
		t.Errorf("quantity lost on product switch: %d", got.Quantity)
	}
}

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"50kg", 50, true},
		{"50 kgs", 50, true},
		{"100 kilograms", 100, true},
		{"25 kilos", 25, true},
		{"quote for 500", 500, true},
		{"i need 30", 30, true},
		{"i want 75", 75, true},
		{"50", 50, true},
		{"no numbers here", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := extractQuantity(tt.input, tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("extractQuantity(%q) = (%d, %v), want (%d, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractCity(t *testing.T) {
	catalog := storage.DefaultCatalog()

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"delivery to mumbai", "mumbai", true},
		{"ship to bombay", "mumbai", true},
		{"bangalore delivery", "bangalore", true},
		{"in new delhi", "delhi", true},
		{"local pickup", "local", true},
		{"i'll collect locally", "local", true},
		{"no city mentioned", "", false},
	}

	for _, tt := range tests {
		got, ok := extractCity(&catalog, tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("extractCity(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
