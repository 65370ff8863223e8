package entity

import "time"

// Review is a buyer comment on a product. A user may leave at most three
// reviews per product; the service layer enforces the cap.
type Review struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	AuthorID  string    `json:"author_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Author *Redacted `json:"author,omitempty"`
}
