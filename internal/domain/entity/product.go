package entity

import "time"

// Product listing statuses.
const (
	ProductDraft     = "draft"
	ProductPublished = "published"
	ProductSold      = "sold"
	ProductArchived  = "archived"
)

// Product is a marketplace listing owned by its seller.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	SellerID    string    `json:"seller_id"`
	CategoryID  string    `json:"category_id"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated on reads, not stored on the products row.
	Category *Category `json:"category,omitempty"`
	Seller   *Redacted `json:"seller,omitempty"`
}

// ValidProductStatus reports whether s is one of the listing statuses.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductDraft, ProductPublished, ProductSold, ProductArchived:
		return true
	}
	return false
}
