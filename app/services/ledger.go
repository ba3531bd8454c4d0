package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/pkg/metrics"
)

// PendingOrder is an order not yet covered by the payments linked to it.
type PendingOrder struct {
	OrderID       primitive.ObjectID `json:"orderId"`
	Product       string             `json:"product"`
	OrderDate     time.Time          `json:"orderDate"`
	DeliveryDate  time.Time          `json:"deliveryDate"`
	Status        string             `json:"status"`
	TotalPrice    float64            `json:"totalPrice"`
	PaidAmount    float64            `json:"paidAmount"`
	PendingAmount float64            `json:"pendingAmount"`
}

// PaymentEntry is one line of a customer's payment history.
type PaymentEntry struct {
	PaymentID     primitive.ObjectID  `json:"paymentId"`
	Amount        float64             `json:"amount"`
	PaymentDate   time.Time           `json:"paymentDate"`
	PaymentMethod string              `json:"paymentMethod"`
	RelatedOrder  *primitive.ObjectID `json:"relatedOrder"`
	Notes         string              `json:"notes"`
}

// CustomerSummary is a customer's consolidated order and payment standing.
//
// PendingAmount is TotalOrderValue - TotalPaid and may go negative when the
// customer has overpaid. TotalAdvancePaid is reported for comparison only;
// advances are counted through the payments they produced.
type CustomerSummary struct {
	CustomerName     string         `json:"customerName"`
	CustomerContact  string         `json:"customerContact"`
	CustomerLocation string         `json:"customerLocation"`
	TotalOrders      int            `json:"totalOrders"`
	TotalOrderValue  float64        `json:"totalOrderValue"`
	TotalAdvancePaid float64        `json:"totalAdvancePaid"`
	TotalPaid        float64        `json:"totalPaid"`
	PendingAmount    float64        `json:"pendingAmount"`
	PendingOrders    []PendingOrder `json:"pendingOrders"`
	PaymentHistory   []PaymentEntry `json:"paymentHistory"`
}

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Summarize reconciles orders against payments. It is pure: the same inputs
// always give the same summary. orders should be newest first; the first one
// supplies the customer identity.
func Summarize(q repositories.CustomerQuery, orders []models.Order, payments []models.Payment) CustomerSummary {
	out := CustomerSummary{
		CustomerName:    q.Name,
		CustomerContact: q.Contact,
		TotalOrders:     len(orders),
		PendingOrders:   []PendingOrder{},
		PaymentHistory:  make([]PaymentEntry, 0, len(payments)),
	}
	if len(orders) > 0 {
		out.CustomerName = orders[0].CustomerName
		out.CustomerContact = orders[0].CustomerContact
		out.CustomerLocation = orders[0].CustomerLocation
	}

	paidTotal := decimal.Zero
	paidByOrder := make(map[primitive.ObjectID]decimal.Decimal)
	for _, p := range payments {
		amt := money(p.Amount)
		paidTotal = paidTotal.Add(amt)
		if p.RelatedOrder != nil {
			paidByOrder[*p.RelatedOrder] = paidByOrder[*p.RelatedOrder].Add(amt)
		}
		out.PaymentHistory = append(out.PaymentHistory, PaymentEntry{
			PaymentID:     p.ID,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			RelatedOrder:  p.RelatedOrder,
			Notes:         p.Notes,
		})
	}

	orderTotal := decimal.Zero
	advanceTotal := decimal.Zero
	for _, o := range orders {
		price := money(o.Price)
		orderTotal = orderTotal.Add(price)
		advanceTotal = advanceTotal.Add(money(o.AdvancePayment))

		paid := paidByOrder[o.ID]
		if paid.LessThan(price) {
			out.PendingOrders = append(out.PendingOrders, PendingOrder{
				OrderID:       o.ID,
				Product:       o.Product,
				OrderDate:     o.OrderDate,
				DeliveryDate:  o.DeliveryDate,
				Status:        o.Status,
				TotalPrice:    o.Price,
				PaidAmount:    paid.InexactFloat64(),
				PendingAmount: price.Sub(paid).InexactFloat64(),
			})
		}
	}

	out.TotalOrderValue = orderTotal.InexactFloat64()
	out.TotalAdvancePaid = advanceTotal.InexactFloat64()
	out.TotalPaid = paidTotal.InexactFloat64()
	out.PendingAmount = orderTotal.Sub(paidTotal).InexactFloat64()
	return out
}

// DriftEntry is an order whose advance is larger than the payments derived
// from it, which is what a swallowed linkage failure leaves behind.
type DriftEntry struct {
	OrderID         primitive.ObjectID `json:"orderId"`
	CustomerName    string             `json:"customerName"`
	CustomerContact string             `json:"customerContact"`
	Product         string             `json:"product"`
	AdvancePayment  float64            `json:"advancePayment"`
	LinkedPaid      float64            `json:"linkedPaid"`
	Missing         float64            `json:"missing"`
}

// FindDrift flags orders whose advancePayment exceeds the advance payments
// linked to them. Manual payments on the same order do not count. It never
// suggests a repair.
func FindDrift(orders []models.Order, payments []models.Payment) []DriftEntry {
	linked := make(map[primitive.ObjectID]decimal.Decimal)
	for _, p := range payments {
		if p.RelatedOrder != nil && p.Origin == models.OriginAdvance {
			linked[*p.RelatedOrder] = linked[*p.RelatedOrder].Add(money(p.Amount))
		}
	}

	out := []DriftEntry{}
	for _, o := range orders {
		adv := money(o.AdvancePayment)
		paid := linked[o.ID]
		if adv.GreaterThan(paid) {
			out = append(out, DriftEntry{
				OrderID:         o.ID,
				CustomerName:    o.CustomerName,
				CustomerContact: o.CustomerContact,
				Product:         o.Product,
				AdvancePayment:  o.AdvancePayment,
				LinkedPaid:      paid.InexactFloat64(),
				Missing:         adv.Sub(paid).InexactFloat64(),
			})
		}
	}
	return out
}

// LedgerService answers the read-side reconciliation questions.
type LedgerService struct {
	orders   OrderStore
	payments PaymentStore
}

func NewLedgerService(orders OrderStore, payments PaymentStore) *LedgerService {
	return &LedgerService{orders: orders, payments: payments}
}

// CustomerSummary builds the summary for the customer matched by q within
// userID's records.
func (s *LedgerService) CustomerSummary(ctx context.Context, userID primitive.ObjectID, q repositories.CustomerQuery) (CustomerSummary, error) {
	if q.Empty() {
		return CustomerSummary{}, invalid("Please provide customer name or contact")
	}
	defer func(start time.Time) { metrics.SummaryDuration.Observe(time.Since(start).Seconds()) }(time.Now())

	orders, err := s.orders.FindByCustomer(ctx, userID, q)
	if err != nil {
		return CustomerSummary{}, err
	}
	payments, err := s.payments.FindByCustomer(ctx, userID, q)
	if err != nil {
		return CustomerSummary{}, err
	}
	return Summarize(q, orders, payments), nil
}

// AdvanceDrift lists userID's orders whose advances are not fully mirrored
// in derived payments.
func (s *LedgerService) AdvanceDrift(ctx context.Context, userID primitive.ObjectID) ([]DriftEntry, error) {
	orders, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(orders))
	for _, o := range orders {
		if o.AdvancePayment > 0 {
			ids = append(ids, o.ID)
		}
	}

	payments, err := s.payments.FindByOrders(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	return FindDrift(orders, payments), nil
}
