package models

// CartItem is a single line in a visitor's cart. Carts only store product
// references; display data comes from the catalog at read time.
type CartItem struct {
	ProductSlug string `json:"product_slug"`
	Quantity    int    `json:"quantity"`
}

// DetailedCartItem is a cart line joined with live catalog attributes.
// It is computed on read and never persisted.
type DetailedCartItem struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Quantity        int    `json:"quantity"`
	ImageURL        string `json:"image_url"`
	CategorySlug    string `json:"category_slug"`
	SubcategorySlug string `json:"subcategory_slug"`
}
