package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// AdminUseCase covers the password-gated operator flows: price list
// uploads, catalog inspection and data reset.
type AdminUseCase interface {
	Login(ctx context.Context, userID int64, password string) error
	Logout(ctx context.Context, userID int64) error
	IsAdmin(ctx context.Context, userID int64) bool
	// UploadPricelist replaces the product catalog from an uploaded
	// spreadsheet and returns the number of products loaded.
	UploadPricelist(ctx context.Context, userID int64, data []byte, filename string) (int, error)
	GetCatalogInfo(ctx context.Context) (string, error)
	// CleanAll restores the seeded catalog and wipes chat history.
	CleanAll(ctx context.Context, userID int64) error
}

type adminUseCase struct {
	adminRepo   repository.AdminRepository
	catalogRepo repository.CatalogRepository
	chatRepo    repository.ChatRepository
	parser      repository.PricelistParser
	password    string
}

// NewAdminUseCase creates an AdminUseCase. An empty password disables
// all logins.
func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	catalogRepo repository.CatalogRepository,
	chatRepo repository.ChatRepository,
	parser repository.PricelistParser,
	password string,
) AdminUseCase {
	return &adminUseCase{
		adminRepo:   adminRepo,
		catalogRepo: catalogRepo,
		chatRepo:    chatRepo,
		parser:      parser,
		password:    password,
	}
}

func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) error {
	if u.password == "" {
		return fmt.Errorf("admin access is disabled")
	}
	if password != u.password {
		return fmt.Errorf("wrong password")
	}

	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to create admin session: %w", err)
	}

	u.logAction(ctx, userID, "login", "admin login")
	return nil
}

func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	if err := u.adminRepo.DeleteSession(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}

func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) bool {
	ok, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		log.Printf("admin check failed: %v", err)
		return false
	}
	return ok
}

func (u *adminUseCase) UploadPricelist(ctx context.Context, userID int64, data []byte, filename string) (int, error) {
	if !u.IsAdmin(ctx, userID) {
		return 0, fmt.Errorf("admin rights required")
	}

	products, err := u.parser.ParseProducts(ctx, data, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price list: %w", err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("no products found in %s", filename)
	}

	if err := u.catalogRepo.ReplaceProducts(ctx, products, filename); err != nil {
		return 0, fmt.Errorf("failed to replace catalog: %w", err)
	}

	u.logAction(ctx, userID, "upload_pricelist",
		fmt.Sprintf("loaded %d products from %s", len(products), filename))
	return len(products), nil
}

func (u *adminUseCase) GetCatalogInfo(ctx context.Context) (string, error) {
	catalog, err := u.catalogRepo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get catalog: %w", err)
	}

	specs := 0
	for _, p := range catalog.Products {
		specs += len(p.Specifications)
	}

	source := catalog.Source
	if source == "" {
		source = "built-in seed data"
	}

	return fmt.Sprintf(
		"📊 **Catalog status**\n\nProducts: %d\nSpecifications: %d\nSource: %s\nUpdated: %s",
		len(catalog.Products), specs, source,
		catalog.UpdatedAt.Format("02 Jan 2006 15:04"),
	), nil
}

func (u *adminUseCase) CleanAll(ctx context.Context, userID int64) error {
	if !u.IsAdmin(ctx, userID) {
		return fmt.Errorf("admin rights required")
	}

	if err := u.catalogRepo.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}
	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	u.logAction(ctx, userID, "reset_data", "catalog reset and chat history cleared")
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	record := entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := u.adminRepo.LogAction(ctx, record); err != nil {
		log.Printf("failed to log admin action: %v", err)
	}
}
