package entity

import "time"

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order types.
const (
	OrderPurchase    = "purchase"
	OrderReservation = "reservation"
)

// Order records a purchase or reservation of a product. TotalPrice is fixed
// at creation from the product price and quantity.
type Order struct {
	ID         string    `json:"id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Product *Product  `json:"product,omitempty"`
	Buyer   *Redacted `json:"buyer,omitempty"`
	Seller  *Redacted `json:"seller,omitempty"`
}

// ValidOrderStatus reports whether s is one of the order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
