package services

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// CartService holds the cart operations for a visitor identity. The cart only
// stores product references; the catalog is the source of truth for display
// data, resolved on every detailed read.
type CartService interface {
	GetCart(ctx context.Context, identity string) ([]models.CartItem, *ServiceError)
	AddItem(ctx context.Context, identity, productSlug string) *ServiceError
	RemoveItem(ctx context.Context, identity, productSlug string) *ServiceError
	DetailedCart(ctx context.Context, identity string) ([]models.DetailedCartItem, *ServiceError)
	Clear(ctx context.Context, identity string) *ServiceError
	MergeCarts(ctx context.Context, fromIdentity, toIdentity string) *ServiceError
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	log      *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, log *zap.Logger) CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &cartService{
		carts:    carts,
		products: products,
		log:      log,
	}
}

// GetCart returns the raw cart lines; an absent cart is an empty slice.
func (s *cartService) GetCart(ctx context.Context, identity string) ([]models.CartItem, *ServiceError) {
	items, err := s.carts.Get(ctx, identity)
	if err != nil {
		s.log.Error("Failed to read cart", zap.String("identity", identity), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to read cart."}
	}
	return items, nil
}

// AddItem increments the quantity for a slug by one, creating the line at
// quantity 1 when absent.
func (s *cartService) AddItem(ctx context.Context, identity, productSlug string) *ServiceError {
	if strings.TrimSpace(productSlug) == "" {
		return &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "A product is required."}
	}
	if err := s.carts.IncrementItem(ctx, identity, productSlug, 1); err != nil {
		s.log.Error("Failed to add cart item", zap.String("identity", identity), zap.String("slug", productSlug), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart."}
	}
	return nil
}

// RemoveItem drops the line for a slug; removing an absent slug succeeds.
func (s *cartService) RemoveItem(ctx context.Context, identity, productSlug string) *ServiceError {
	if strings.TrimSpace(productSlug) == "" {
		return &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "A product is required."}
	}
	if err := s.carts.RemoveItem(ctx, identity, productSlug); err != nil {
		s.log.Error("Failed to remove cart item", zap.String("identity", identity), zap.String("slug", productSlug), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart."}
	}
	return nil
}

// DetailedCart joins the raw cart against the catalog. Lines whose product no
// longer exists are silently dropped from the result.
func (s *cartService) DetailedCart(ctx context.Context, identity string) ([]models.DetailedCartItem, *ServiceError) {
	items, svcErr := s.GetCart(ctx, identity)
	if svcErr != nil {
		return nil, svcErr
	}
	if len(items) == 0 {
		return []models.DetailedCartItem{}, nil
	}

	slugs := make([]string, 0, len(items))
	for _, item := range items {
		slugs = append(slugs, item.ProductSlug)
	}

	details, err := s.products.FindBySlugs(ctx, slugs)
	if err != nil {
		s.log.Error("Failed to resolve cart products", zap.String("identity", identity), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to read cart."}
	}

	bySlug := make(map[string]repository.ProductDetail, len(details))
	for _, d := range details {
		bySlug[d.Slug] = d
	}

	detailed := make([]models.DetailedCartItem, 0, len(items))
	for _, item := range items {
		d, ok := bySlug[item.ProductSlug]
		if !ok {
			continue
		}
		detailed = append(detailed, models.DetailedCartItem{
			Slug:            d.Slug,
			Name:            d.Name,
			Description:     d.Description,
			Price:           d.Price,
			Quantity:        item.Quantity,
			ImageURL:        d.ImageURL,
			CategorySlug:    d.CategorySlug,
			SubcategorySlug: d.SubcategorySlug,
		})
	}
	return detailed, nil
}

// Clear replaces the cart with an empty one.
func (s *cartService) Clear(ctx context.Context, identity string) *ServiceError {
	if err := s.carts.Clear(ctx, identity); err != nil {
		s.log.Error("Failed to clear cart", zap.String("identity", identity), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to clear cart."}
	}
	return nil
}

// MergeCarts folds one identity's cart into another, summing quantities, and
// clears the source. Used to carry a pre-login cart into the user's cart.
func (s *cartService) MergeCarts(ctx context.Context, fromIdentity, toIdentity string) *ServiceError {
	if fromIdentity == "" || fromIdentity == toIdentity {
		return nil
	}
	items, svcErr := s.GetCart(ctx, fromIdentity)
	if svcErr != nil {
		return svcErr
	}
	for _, item := range items {
		if err := s.carts.IncrementItem(ctx, toIdentity, item.ProductSlug, item.Quantity); err != nil {
			s.log.Error("Failed to merge cart item", zap.String("from", fromIdentity), zap.String("to", toIdentity), zap.Error(err))
			return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart."}
		}
	}
	return s.Clear(ctx, fromIdentity)
}
