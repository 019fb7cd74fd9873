package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/infrastructure/storage"
)

type fakeParser struct {
	products []entity.Product
	err      error
}

func (f *fakeParser) ParseProducts(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	return f.products, f.err
}

func newTestAdmin(parser *fakeParser, password string) (AdminUseCase, func(context.Context) (*entity.Catalog, error)) {
	catalogRepo := storage.NewMemoryCatalogRepository()
	uc := NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		catalogRepo,
		storage.NewMemoryChatRepository(20),
		parser,
		password,
	)
	return uc, catalogRepo.Get
}

func TestAdminLogin(t *testing.T) {
	uc, _ := newTestAdmin(&fakeParser{}, "secret")
	ctx := context.Background()

	if err := uc.Login(ctx, 1, "wrong"); err == nil {
		t.Error("wrong password should fail")
	}
	if uc.IsAdmin(ctx, 1) {
		t.Error("failed login must not grant admin")
	}

	if err := uc.Login(ctx, 1, "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !uc.IsAdmin(ctx, 1) {
		t.Error("login should grant admin")
	}

	if err := uc.Logout(ctx, 1); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if uc.IsAdmin(ctx, 1) {
		t.Error("logout should revoke admin")
	}
}

func TestAdminLogin_Disabled(t *testing.T) {
	uc, _ := newTestAdmin(&fakeParser{}, "")
	if err := uc.Login(context.Background(), 1, "anything"); err == nil {
		t.Error("empty configured password must disable login")
	}
}

func TestUploadPricelist(t *testing.T) {
	parser := &fakeParser{products: []entity.Product{{
		Key:            "moringa",
		Name:           "Moringa Extract",
		Specifications: []entity.Specification{{Label: "10%", BasePrice: 1200, MOQ: 50}},
	}}}
	uc, getCatalog := newTestAdmin(parser, "secret")
	ctx := context.Background()

	if _, err := uc.UploadPricelist(ctx, 1, []byte("x"), "list.xlsx"); err == nil {
		t.Error("upload without login should fail")
	}

	if err := uc.Login(ctx, 1, "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	count, err := uc.UploadPricelist(ctx, 1, []byte("x"), "list.xlsx")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	catalog, _ := getCatalog(ctx)
	if len(catalog.Products) != 1 || catalog.Products[0].Key != "moringa" {
		t.Errorf("catalog not replaced: %+v", catalog.Products)
	}
	if catalog.Source != "list.xlsx" {
		t.Errorf("source = %q, want list.xlsx", catalog.Source)
	}
}

func TestUploadPricelist_ParserError(t *testing.T) {
	uc, _ := newTestAdmin(&fakeParser{err: fmt.Errorf("corrupt file")}, "secret")
	ctx := context.Background()

	if err := uc.Login(ctx, 1, "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := uc.UploadPricelist(ctx, 1, []byte("x"), "bad.xlsx"); err == nil {
		t.Error("parser error should propagate")
	}
}

func TestCleanAll(t *testing.T) {
	parser := &fakeParser{products: []entity.Product{{
		Key:            "moringa",
		Specifications: []entity.Specification{{Label: "10%", BasePrice: 1200, MOQ: 50}},
	}}}
	uc, getCatalog := newTestAdmin(parser, "secret")
	ctx := context.Background()

	if err := uc.Login(ctx, 1, "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := uc.UploadPricelist(ctx, 1, []byte("x"), "list.xlsx"); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := uc.CleanAll(ctx, 1); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	catalog, _ := getCatalog(ctx)
	if len(catalog.Products) != 5 || catalog.Source != "builtin" {
		t.Errorf("catalog not restored: %d products, source %q", len(catalog.Products), catalog.Source)
	}
}
