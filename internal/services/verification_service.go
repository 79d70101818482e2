package services

import (
	"context"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/pricing"

	"github.com/shopspring/decimal"
)

type IssueReason string

const (
	IssueMissing         IssueReason = "missing"
	IssueUnavailable     IssueReason = "unavailable"
	IssuePriceChanged    IssueReason = "price_changed"
	IssueInvalidQuantity IssueReason = "invalid_quantity"
)

type VerificationIssue struct {
	ItemID       uint             `json:"id"`
	Name         string           `json:"name"`
	Reason       IssueReason      `json:"reason"`
	ClaimedPrice decimal.Decimal  `json:"claimedPrice"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
}

// Verification is the outcome of checking a claimed cart against the live menu.
// Items is the corrected cart: missing, unavailable and invalid lines are dropped,
// remaining lines carry the current menu name and price.
type Verification struct {
	Valid    bool                `json:"valid"`
	Items    []models.CartItem   `json:"items"`
	Issues   []VerificationIssue `json:"issues"`
	Subtotal decimal.Decimal     `json:"subtotal"`
}

// MenuCatalog is the part of the menu repository the verifier reads.
type MenuCatalog interface {
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)
	GetItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error)
}

type VerificationService interface {
	Verify(ctx context.Context, claimed []models.CartItem) (*Verification, error)
}

type verificationService struct {
	menu MenuCatalog
}

func NewVerificationService(menu MenuCatalog) VerificationService {
	return &verificationService{menu: menu}
}

func (s *verificationService) Verify(ctx context.Context, claimed []models.CartItem) (*Verification, error) {
	if len(claimed) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	ids := make([]uint, 0, len(claimed))
	for _, line := range claimed {
		ids = append(ids, line.ID)
	}

	current, err := s.menu.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load menu items", err)
	}
	byID := make(map[uint]models.MenuItem, len(current))
	for _, item := range current {
		byID[item.ID] = item
	}

	result := &Verification{
		Items:  []models.CartItem{},
		Issues: []VerificationIssue{},
	}
	for _, line := range claimed {
		issue := VerificationIssue{ItemID: line.ID, Name: line.Name, ClaimedPrice: line.UnitPrice}

		if line.Quantity < 1 {
			issue.Reason = IssueInvalidQuantity
			result.Issues = append(result.Issues, issue)
			continue
		}

		item, ok := byID[line.ID]
		if !ok {
			issue.Reason = IssueMissing
			result.Issues = append(result.Issues, issue)
			continue
		}
		price := item.Price
		issue.CurrentPrice = &price

		if !item.Orderable() {
			issue.Reason = IssueUnavailable
			result.Issues = append(result.Issues, issue)
			continue
		}

		if !line.UnitPrice.Equal(item.Price) {
			issue.Reason = IssuePriceChanged
			result.Issues = append(result.Issues, issue)
		}

		result.Items = append(result.Items, models.CartItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
		})
	}

	result.Valid = len(result.Issues) == 0
	result.Subtotal = pricing.Subtotal(result.Items)
	return result, nil
}
