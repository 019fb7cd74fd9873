package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

func TestMemoryChatRepository_SaveAndTrim(t *testing.T) {
	repo := NewMemoryChatRepository(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.SaveMessage(ctx, entity.Message{
			ID:        fmt.Sprintf("m%d", i),
			UserID:    1,
			Text:      fmt.Sprintf("turn %d", i),
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	history, err := repo.GetHistory(ctx, 1, 10)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d messages, want 3 (trimmed)", len(history))
	}
	// Oldest first, oldest surviving turn is turn 2.
	if history[0].Text != "turn 2" || history[2].Text != "turn 4" {
		t.Errorf("order wrong: first=%q last=%q", history[0].Text, history[2].Text)
	}
}

func TestMemoryChatRepository_LimitAndIsolation(t *testing.T) {
	repo := NewMemoryChatRepository(10)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		repo.SaveMessage(ctx, entity.Message{ID: fmt.Sprintf("a%d", i), UserID: 1, Text: fmt.Sprintf("a%d", i)})
	}
	repo.SaveMessage(ctx, entity.Message{ID: "b0", UserID: 2, Text: "b0"})

	history, err := repo.GetHistory(ctx, 1, 2)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 2 || history[1].Text != "a3" {
		t.Errorf("limited history wrong: %+v", history)
	}

	other, _ := repo.GetHistory(ctx, 2, 10)
	if len(other) != 1 {
		t.Errorf("user isolation broken: %+v", other)
	}

	if err := repo.ClearHistory(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if h, _ := repo.GetHistory(ctx, 1, 10); len(h) != 0 {
		t.Errorf("history not cleared: %+v", h)
	}
	if h, _ := repo.GetHistory(ctx, 2, 10); len(h) != 1 {
		t.Errorf("clear removed the wrong user's history")
	}

	if err := repo.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if h, _ := repo.GetHistory(ctx, 2, 10); len(h) != 0 {
		t.Errorf("clear all incomplete: %+v", h)
	}
}

func TestMemoryChatRepository_GetAllMessagesNewestFirst(t *testing.T) {
	repo := NewMemoryChatRepository(10)
	ctx := context.Background()
	base := time.Now()

	repo.SaveMessage(ctx, entity.Message{ID: "a0", UserID: 1, Text: "a0", Timestamp: base})
	repo.SaveMessage(ctx, entity.Message{ID: "b0", UserID: 2, Text: "b0", Timestamp: base.Add(2 * time.Second)})
	repo.SaveMessage(ctx, entity.Message{ID: "a1", UserID: 1, Text: "a1", Timestamp: base.Add(time.Second)})

	all, err := repo.GetAllMessages(ctx, 10)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 || all[0].Text != "b0" || all[1].Text != "a1" || all[2].Text != "a0" {
		t.Errorf("expected newest first across users, got %+v", all)
	}

	limited, _ := repo.GetAllMessages(ctx, 2)
	if len(limited) != 2 || limited[0].Text != "b0" {
		t.Errorf("limit broken: %+v", limited)
	}
}

func TestMemoryCatalogRepository_ReplaceAndReset(t *testing.T) {
	repo := NewMemoryCatalogRepository()
	ctx := context.Background()

	catalog, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(catalog.Products) != 5 || catalog.Source != "builtin" {
		t.Fatalf("seed catalog wrong: %d products, source %q", len(catalog.Products), catalog.Source)
	}

	products := []entity.Product{{
		Key:  "moringa",
		Name: "Moringa Extract",
		Specifications: []entity.Specification{
			{Label: "10%", BasePrice: 1200, MOQ: 50},
		},
	}}
	if err := repo.ReplaceProducts(ctx, products, "upload.xlsx"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	catalog, _ = repo.Get(ctx)
	if len(catalog.Products) != 1 || catalog.Source != "upload.xlsx" {
		t.Errorf("replace not applied: %d products, source %q", len(catalog.Products), catalog.Source)
	}
	// Pricing structure survives product uploads.
	if len(catalog.Tiers) != 4 || catalog.TaxRate != 0.18 {
		t.Errorf("pricing structure lost on upload")
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	catalog, _ = repo.Get(ctx)
	if len(catalog.Products) != 5 || catalog.Source != "builtin" {
		t.Errorf("reset did not restore the seed")
	}
}

func TestMemoryAdminRepository_Sessions(t *testing.T) {
	repo := NewMemoryAdminRepository()
	ctx := context.Background()

	ok, err := repo.IsAdmin(ctx, 7)
	if err != nil || ok {
		t.Fatalf("fresh user should not be admin: %v %v", ok, err)
	}

	session := entity.AdminSession{UserID: 7, IsAdmin: true, LoginTime: time.Now(), LastActivity: time.Now()}
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ok, _ := repo.IsAdmin(ctx, 7); !ok {
		t.Error("logged-in user should be admin")
	}

	if err := repo.DeleteSession(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := repo.IsAdmin(ctx, 7); ok {
		t.Error("logged-out user should not be admin")
	}
}

func TestMemoryAdminRepository_SessionExpiry(t *testing.T) {
	repo := NewMemoryAdminRepository()
	ctx := context.Background()

	stale := entity.AdminSession{
		UserID:       7,
		IsAdmin:      true,
		LoginTime:    time.Now().Add(-48 * time.Hour),
		LastActivity: time.Now().Add(-48 * time.Hour),
	}
	repo.CreateSession(ctx, stale)

	if ok, _ := repo.IsAdmin(ctx, 7); ok {
		t.Error("expired session should not grant admin")
	}
	if s, _ := repo.GetSession(ctx, 7); s != nil {
		t.Error("expired session should not be returned")
	}
}
