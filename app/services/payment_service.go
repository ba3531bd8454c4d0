package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

// PaymentForm is the body for creating a payment, and for updating one:
// updates decode over PaymentFormFrom(existing) so omitted fields keep their
// stored values. "relatedOrder": null (or "") unlinks the payment.
type PaymentForm struct {
	CustomerName    string   `json:"customerName"    validate:"required,max=100"`
	CustomerContact string   `json:"customerContact" validate:"required"`
	CustomerEmail   string   `json:"customerEmail"   validate:"omitempty,email"`
	PaymentDate     string   `json:"paymentDate"     validate:"omitempty,date"`
	Amount          *float64 `json:"amount"          validate:"required,gte=0"`
	PaymentMethod   string   `json:"paymentMethod"   validate:"required,oneof=cash bank_transfer upi card cheque other"`
	RelatedOrder    *string  `json:"relatedOrder"    validate:"omitempty,objectid"`
	TransactionID   string   `json:"transactionId"`
	Notes           string   `json:"notes"`
}

// PaymentFormFrom renders a stored payment as a form.
func PaymentFormFrom(p models.Payment) PaymentForm {
	amount := p.Amount
	return PaymentForm{
		CustomerName:    p.CustomerName,
		CustomerContact: p.CustomerContact,
		CustomerEmail:   p.CustomerEmail,
		PaymentDate:     formatDate(p.PaymentDate),
		Amount:          &amount,
		PaymentMethod:   p.PaymentMethod,
		RelatedOrder:    orderLink(p.RelatedOrder),
		TransactionID:   p.TransactionID,
		Notes:           p.Notes,
	}
}

func (f PaymentForm) fill(p *models.Payment) error {
	date, err := dateOr(f.PaymentDate, time.Now().UTC())
	if err != nil {
		return err
	}
	p.CustomerName = strings.TrimSpace(f.CustomerName)
	p.CustomerContact = strings.TrimSpace(f.CustomerContact)
	p.CustomerEmail = strings.ToLower(strings.TrimSpace(f.CustomerEmail))
	p.PaymentDate = date
	if f.Amount != nil {
		p.Amount = *f.Amount
	}
	p.PaymentMethod = f.PaymentMethod
	p.RelatedOrder = linkID(f.RelatedOrder)
	p.TransactionID = strings.TrimSpace(f.TransactionID)
	p.Notes = strings.TrimSpace(f.Notes)
	return nil
}

// PaymentStats is the body of GET /api/payments/stats.
type PaymentStats struct {
	MethodBreakdown []map[string]interface{} `json:"methodBreakdown"`
	TotalPayments   int64                    `json:"totalPayments"`
	TotalAmount     float64                  `json:"totalAmount"`
}

type PaymentService struct {
	payments PaymentStore
	orders   OrderStore
}

func NewPaymentService(payments PaymentStore, orders OrderStore) *PaymentService {
	return &PaymentService{payments: payments, orders: orders}
}

func (s *PaymentService) Create(ctx context.Context, userID primitive.ObjectID, f PaymentForm) (*models.Payment, error) {
	p := &models.Payment{User: userID}
	if err := f.fill(p); err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns matching payments with relatedOrder resolved.
func (s *PaymentService) List(ctx context.Context, userID primitive.ObjectID, f repositories.PaymentFilter) ([]models.PaymentView, error) {
	payments, err := s.payments.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	ids := make([]*primitive.ObjectID, len(payments))
	for i := range payments {
		ids[i] = payments[i].RelatedOrder
	}
	refs, err := resolveOrders(ctx, s.orders, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PaymentView, len(payments))
	for i, p := range payments {
		out[i] = models.PaymentView{Payment: p, RelatedOrder: refs[orderHex(p.RelatedOrder)]}
	}
	return out, nil
}

func (s *PaymentService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.PaymentView, error) {
	p, err := s.payments.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	refs, err := resolveOrders(ctx, s.orders, userID, []*primitive.ObjectID{p.RelatedOrder})
	if err != nil {
		return nil, err
	}
	return &models.PaymentView{Payment: *p, RelatedOrder: refs[orderHex(p.RelatedOrder)]}, nil
}

// Update overwrites the editable fields of the stored payment with f.
func (s *PaymentService) Update(ctx context.Context, userID, id primitive.ObjectID, f PaymentForm) (*models.Payment, error) {
	p, err := s.payments.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := f.fill(p); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.payments.Delete(ctx, userID, id)
}

func (s *PaymentService) Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (PaymentStats, error) {
	groups, err := s.payments.Stats(ctx, userID, rng)
	if err != nil {
		return PaymentStats{}, err
	}
	count, total := totals(groups)
	return PaymentStats{
		MethodBreakdown: breakdown(groups, "totalAmount"),
		TotalPayments:   count,
		TotalAmount:     total,
	}, nil
}

// resolveOrders loads the distinct non-nil ids and indexes their refs by hex.
// Dangling references resolve to nil.
func resolveOrders(ctx context.Context, orders OrderStore, userID primitive.ObjectID, ids []*primitive.ObjectID) (map[string]*models.OrderRef, error) {
	seen := make(map[primitive.ObjectID]bool)
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id != nil && !seen[*id] {
			seen[*id] = true
			unique = append(unique, *id)
		}
	}

	refs := make(map[string]*models.OrderRef, len(unique))
	if len(unique) == 0 {
		return refs, nil
	}

	found, err := orders.FindByIDs(ctx, userID, unique)
	if err != nil {
		return nil, err
	}
	for _, o := range found {
		refs[o.ID.Hex()] = o.Ref()
	}
	return refs, nil
}
