package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/repository"
)

const searchResultLimit = 10

type ProductService interface {
	GetBySlug(ctx context.Context, slug string) (*repository.ProductDetail, *ServiceError)
	Search(ctx context.Context, query string) ([]models.Product, *ServiceError)
	ListBySubcategory(ctx context.Context, subcategorySlug string) ([]models.Product, *ServiceError)
}

type productService struct {
	products repository.ProductRepository
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, log *zap.Logger) ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &productService{
		products: products,
		log:      log,
	}
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*repository.ProductDetail, *ServiceError) {
	detail, err := s.products.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found."}
	}
	if err != nil {
		s.log.Error("Failed to fetch product", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch product."}
	}
	return detail, nil
}

func (s *productService) Search(ctx context.Context, query string) ([]models.Product, *ServiceError) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}
	products, err := s.products.Search(ctx, query, searchResultLimit)
	if err != nil {
		s.log.Error("Search failed", zap.String("query", query), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Search failed."}
	}
	return products, nil
}

func (s *productService) ListBySubcategory(ctx context.Context, subcategorySlug string) ([]models.Product, *ServiceError) {
	products, err := s.products.ListBySubcategory(ctx, subcategorySlug)
	if err != nil {
		s.log.Error("Failed to list products", zap.String("subcategory", subcategorySlug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to list products."}
	}
	return products, nil
}
