package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/models"
)

// ProductDetail is a product joined with its category path, as needed by the
// detailed cart and the product page.
type ProductDetail struct {
	models.Product
	CategorySlug string `json:"category_slug"`
}

// ProductRepository defines the read interface over the catalog
type ProductRepository interface {
	FindBySlug(ctx context.Context, slug string) (*ProductDetail, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]ProductDetail, error)
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
	ListBySubcategory(ctx context.Context, subcategorySlug string) ([]models.Product, error)
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products").
		Select("products.*, subcollections.category_slug").
		Joins("JOIN subcategories ON subcategories.slug = products.subcategory_slug").
		Joins("JOIN subcollections ON subcollections.id = subcategories.subcollection_id")
}

// FindBySlug returns a single product with its category path
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	var detail ProductDetail
	if err := r.detailQuery(ctx).
		Where("products.slug = ?", slug).
		Take(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindBySlugs batch-resolves cart slugs. Slugs with no matching product are
// simply absent from the result.
func (r *GormProductRepository) FindBySlugs(ctx context.Context, slugs []string) ([]ProductDetail, error) {
	if len(slugs) == 0 {
		return []ProductDetail{}, nil
	}
	var details []ProductDetail
	if err := r.detailQuery(ctx).
		Where("products.slug IN ?", slugs).
		Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// Search does a case-insensitive name match for the search box
func (r *GormProductRepository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListBySubcategory returns the products on a subcategory page
func (r *GormProductRepository) ListBySubcategory(ctx context.Context, subcategorySlug string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("subcategory_slug = ?", subcategorySlug).
		Order("slug").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
