package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"marketplace-backend/config"
	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/pkg/mailer"
)

// OrderService manages purchases and reservations of listings.
type OrderService struct {
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
	Pub      Publisher
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, pub Publisher, logger *logrus.Logger, cfg *config.Config) *OrderService {
	return &OrderService{Orders: orders, Products: products, Users: users, Pub: pub, Logger: logger, Cfg: cfg}
}

type OrderInput struct {
	ProductID string
	Quantity  int
	Type      string
}

// Create places an order on a published listing. The total price is fixed
// from the listing price at order time. Buyer and seller are each notified
// by email after the order is stored.
func (s *OrderService) Create(ctx context.Context, buyerID string, in OrderInput) (*entity.Order, error) {
	p, err := s.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != entity.ProductPublished {
		return nil, ErrProductUnavailable
	}
	if p.SellerID == buyerID {
		return nil, ErrForbidden
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	orderType := in.Type
	if orderType == "" {
		orderType = entity.OrderPurchase
	}
	if orderType != entity.OrderPurchase && orderType != entity.OrderReservation {
		return nil, ErrInvalidStatus
	}

	o := &entity.Order{
		BuyerID:    buyerID,
		SellerID:   p.SellerID,
		ProductID:  p.ID,
		Quantity:   qty,
		TotalPrice: p.Price * float64(qty),
		Status:     entity.OrderPending,
		Type:       orderType,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	o, err = s.Orders.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, o, p)
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, actorID, id string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.BuyerID != actorID && o.SellerID != actorID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *OrderService) ListByBuyer(ctx context.Context, buyerID string) ([]entity.Order, error) {
	return s.Orders.ListByBuyer(ctx, buyerID)
}

func (s *OrderService) ListBySeller(ctx context.Context, sellerID string) ([]entity.Order, error) {
	return s.Orders.ListBySeller(ctx, sellerID)
}

// UpdateStatus advances an order. The seller drives fulfilment; the buyer
// may only cancel, and only while the order is still pending.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, id, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actorID == o.SellerID:
		// ok
	case actorID == o.BuyerID:
		if status != entity.OrderCancelled || o.Status != entity.OrderPending {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	if o.Status == entity.OrderCompleted || o.Status == entity.OrderCancelled {
		return nil, ErrInvalidStatus
	}

	if err := s.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	// A completed purchase takes the listing off the market.
	if status == entity.OrderCompleted && o.Type == entity.OrderPurchase {
		if _, err := s.Products.UpdateStatus(ctx, o.ProductID, entity.ProductSold); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", o.ProductID).Warn("mark product sold failed")
		}
	}

	return s.Orders.GetByID(ctx, id)
}

// notify queues the confirmation emails. Failures are logged and swallowed.
func (s *OrderService) notify(ctx context.Context, o *entity.Order, p *entity.Product) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		return
	}
	buyer, err := s.Users.GetByID(ctx, o.BuyerID)
	if err != nil {
		s.logNotifyErr(o.ID, err)
		return
	}
	seller, err := s.Users.GetByID(ctx, o.SellerID)
	if err != nil {
		s.logNotifyErr(o.ID, err)
		return
	}

	total := fmt.Sprintf("%.2f", o.TotalPrice)
	jobs := []mailer.EmailJob{
		{
			To:       buyer.Email,
			Template: mailer.TemplateOrderBuyer,
			Data: map[string]any{
				"Name":         buyer.Name,
				"ProductTitle": p.Title,
				"Quantity":     o.Quantity,
				"TotalPrice":   total,
			},
		},
		{
			To:       seller.Email,
			Template: mailer.TemplateOrderSeller,
			Data: map[string]any{
				"Name":         seller.Name,
				"BuyerName":    buyer.Name,
				"ProductTitle": p.Title,
				"Quantity":     o.Quantity,
				"TotalPrice":   total,
			},
		},
	}
	for _, job := range jobs {
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.logNotifyErr(o.ID, err)
		}
	}
}

func (s *OrderService) logNotifyErr(orderID string, err error) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", orderID).Warn("order notification failed")
	}
}
