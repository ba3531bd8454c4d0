package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/pkg/logger"
	"github.com/shashiranjanraj/boutique/pkg/metrics"
)

const (
	maxUpdateAttempts = 3
	orderLockTTL      = 30 * time.Second
)

// Locker serialises writers to one key across processes. A nil Locker or a
// failed Acquire leaves the version compare-and-swap as the only guard.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// OrderInput is the body of POST /api/orders.
type OrderInput struct {
	OrderTaker       string   `json:"orderTaker"       validate:"required,oneof=owner employee"`
	OrderTakerName   string   `json:"orderTakerName"   validate:"required,max=100"`
	CustomerName     string   `json:"customerName"     validate:"required,max=100"`
	CustomerContact  string   `json:"customerContact"  validate:"required"`
	CustomerLocation string   `json:"customerLocation" validate:"required"`
	Product          string   `json:"product"          validate:"required,max=200"`
	Quantity         int      `json:"quantity"         validate:"required,min=1"`
	Measurements     string   `json:"measurements"`
	Specifications   string   `json:"specifications"`
	OrderDate        string   `json:"orderDate"        validate:"omitempty,date"`
	DeliveryDate     string   `json:"deliveryDate"     validate:"required,date"`
	Price            *float64 `json:"price"            validate:"required,gte=0"`
	AdvancePayment   float64  `json:"advancePayment"   validate:"gte=0"`
	PaymentMethod    string   `json:"paymentMethod"    validate:"omitempty,oneof=cash bank_transfer upi card cheque other"`
	Notes            string   `json:"notes"`
}

// OrderPatch is the body of PUT /api/orders/{id}. Only these fields may
// change after creation; nil means "leave as is".
type OrderPatch struct {
	Status             *string  `json:"status"             validate:"omitempty,oneof=pending in_progress ready delivered cancelled"`
	DeliveryDate       *string  `json:"deliveryDate"       validate:"omitempty,date"`
	ActualDeliveryDate *string  `json:"actualDeliveryDate" validate:"omitempty,date"`
	Price              *float64 `json:"price"              validate:"omitempty,gte=0"`
	AdvancePayment     *float64 `json:"advancePayment"     validate:"omitempty,gte=0"`
	Notes              *string  `json:"notes"`
	Measurements       *string  `json:"measurements"`
	Specifications     *string  `json:"specifications"`
	CustomerContact    *string  `json:"customerContact"`
	CustomerLocation   *string  `json:"customerLocation"`
	PaymentMethod      string   `json:"paymentMethod"      validate:"omitempty,oneof=cash bank_transfer upi card cheque other"`
}

// Apply writes the set fields of p onto o.
func (p OrderPatch) Apply(o *models.Order) error {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.DeliveryDate != nil {
		t, err := dateOr(*p.DeliveryDate, o.DeliveryDate)
		if err != nil {
			return err
		}
		o.DeliveryDate = t
	}
	if p.ActualDeliveryDate != nil {
		t, err := optionalDate(*p.ActualDeliveryDate)
		if err != nil {
			return err
		}
		o.ActualDeliveryDate = t
	}
	if p.Price != nil {
		o.Price = *p.Price
	}
	if p.AdvancePayment != nil {
		o.AdvancePayment = *p.AdvancePayment
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.Measurements != nil {
		o.Measurements = *p.Measurements
	}
	if p.Specifications != nil {
		o.Specifications = *p.Specifications
	}
	if p.CustomerContact != nil {
		o.CustomerContact = strings.TrimSpace(*p.CustomerContact)
	}
	if p.CustomerLocation != nil {
		o.CustomerLocation = strings.TrimSpace(*p.CustomerLocation)
	}
	return nil
}

// OrderStats is the body of GET /api/orders/stats.
type OrderStats struct {
	StatusBreakdown []map[string]interface{} `json:"statusBreakdown"`
	TotalOrders     int64                    `json:"totalOrders"`
	TotalValue      float64                  `json:"totalValue"`
}

// OrderService handles order writes and reads. Writes return the derived
// effects alongside the order; applying them is the caller's job.
type OrderService struct {
	orders OrderStore
	locker Locker
}

func NewOrderService(orders OrderStore, locker Locker) *OrderService {
	return &OrderService{orders: orders, locker: locker}
}

// Create stores a new order for userID.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, in OrderInput) (*models.Order, []Effect, error) {
	now := time.Now().UTC()

	orderDate, err := dateOr(in.OrderDate, now)
	if err != nil {
		return nil, nil, err
	}
	delivery, err := dateOr(in.DeliveryDate, time.Time{})
	if err != nil {
		return nil, nil, err
	}
	if delivery.IsZero() {
		return nil, nil, invalid("Delivery date is required")
	}

	o := &models.Order{
		User:             userID,
		OrderTaker:       in.OrderTaker,
		OrderTakerName:   strings.TrimSpace(in.OrderTakerName),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerContact:  strings.TrimSpace(in.CustomerContact),
		CustomerLocation: strings.TrimSpace(in.CustomerLocation),
		Product:          strings.TrimSpace(in.Product),
		Quantity:         in.Quantity,
		Measurements:     in.Measurements,
		Specifications:   in.Specifications,
		OrderDate:        orderDate,
		DeliveryDate:     delivery,
		AdvancePayment:   in.AdvancePayment,
		Status:           models.OrderPending,
		Notes:            in.Notes,
	}
	if in.Price != nil {
		o.Price = *in.Price
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, nil, err
	}
	return o, AdvanceOnCreate(*o, in.PaymentMethod), nil
}

// Update applies patch to the order. The write only lands if the stored
// version and advance are still the ones the patch was applied to; on a
// lost race the order is re-read and the patch re-applied, up to
// maxUpdateAttempts times, after which ErrConflict is returned.
func (s *OrderService) Update(ctx context.Context, userID, id primitive.ObjectID, patch OrderPatch) (*models.Order, []Effect, error) {
	log := logger.WithCtx(ctx)

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "lock:order:"+id.Hex(), orderLockTTL)
		if err != nil {
			log.Debug("order lock not obtained, relying on version check", "order_id", id.Hex(), "error", err)
		} else {
			defer release()
		}
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, err := s.orders.Get(ctx, userID, id)
		if err != nil {
			return nil, nil, err
		}

		before := *current
		next := *current
		if err := patch.Apply(&next); err != nil {
			return nil, nil, err
		}

		ok, err := s.orders.ReplaceIfVersion(ctx, &next, before.Version, before.AdvancePayment)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			return &next, AdvanceOnUpdate(before, next, patch.PaymentMethod), nil
		}

		metrics.OrderUpdateConflicts.Inc()
		log.Warn("order update lost version race", "order_id", id.Hex(), "attempt", attempt)
	}

	return nil, nil, ErrConflict
}

func (s *OrderService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Order, error) {
	return s.orders.Get(ctx, userID, id)
}

func (s *OrderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.List(ctx, userID)
}

func (s *OrderService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.orders.Delete(ctx, userID, id)
}

func (s *OrderService) Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (OrderStats, error) {
	groups, err := s.orders.Stats(ctx, userID, rng)
	if err != nil {
		return OrderStats{}, err
	}
	count, total := totals(groups)
	return OrderStats{
		StatusBreakdown: breakdown(groups, "totalValue"),
		TotalOrders:     count,
		TotalValue:      total,
	}, nil
}
