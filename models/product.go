package models

// Catalog taxonomy: collection > category > subcollection > subcategory > product.
// Everything is slug-keyed; carts and order snapshots reference products by slug.

type Collection struct {
	Slug string `gorm:"primaryKey" json:"slug"`
	Name string `gorm:"not null" json:"name"`
}

type Category struct {
	Slug           string `gorm:"primaryKey" json:"slug"`
	Name           string `gorm:"not null" json:"name"`
	CollectionSlug string `gorm:"not null;index" json:"collection_slug"`
	ImageURL       string `json:"image_url"`
}

type Subcollection struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	CategorySlug string `gorm:"not null;index" json:"category_slug"`
}

type Subcategory struct {
	Slug            string `gorm:"primaryKey" json:"slug"`
	Name            string `gorm:"not null" json:"name"`
	SubcollectionID int    `gorm:"not null;index" json:"subcollection_id"`
}

type Product struct {
	Slug            string `gorm:"primaryKey" json:"slug"`
	Name            string `gorm:"not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	Price           string `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL        string `json:"image_url"`
	SubcategorySlug string `gorm:"not null;index" json:"subcategory_slug"`
}
