package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

// IncomeForm is the create/update body for an income.
type IncomeForm struct {
	IncomeDate    string   `json:"incomeDate"    validate:"omitempty,date"`
	Source        string   `json:"source"        validate:"required,max=200"`
	IncomeType    string   `json:"incomeType"    validate:"required,oneof=order_payment advance_payment full_payment other_income refund other"`
	Amount        *float64 `json:"amount"        validate:"required,gte=0"`
	PayerName     string   `json:"payerName"     validate:"max=100"`
	PayerContact  string   `json:"payerContact"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=cash bank_transfer upi card cheque other"`
	RelatedOrder  *string  `json:"relatedOrder"  validate:"omitempty,objectid"`
	TransactionID string   `json:"transactionId"`
	Description   string   `json:"description"`
	Notes         string   `json:"notes"`
}

func IncomeFormFrom(in models.Income) IncomeForm {
	amount := in.Amount
	return IncomeForm{
		IncomeDate:    formatDate(in.IncomeDate),
		Source:        in.Source,
		IncomeType:    in.IncomeType,
		Amount:        &amount,
		PayerName:     in.PayerName,
		PayerContact:  in.PayerContact,
		PaymentMethod: in.PaymentMethod,
		RelatedOrder:  orderLink(in.RelatedOrder),
		TransactionID: in.TransactionID,
		Description:   in.Description,
		Notes:         in.Notes,
	}
}

func (f IncomeForm) fill(in *models.Income) error {
	date, err := dateOr(f.IncomeDate, time.Now().UTC())
	if err != nil {
		return err
	}
	in.IncomeDate = date
	in.Source = strings.TrimSpace(f.Source)
	in.IncomeType = f.IncomeType
	if f.Amount != nil {
		in.Amount = *f.Amount
	}
	in.PayerName = strings.TrimSpace(f.PayerName)
	in.PayerContact = strings.TrimSpace(f.PayerContact)
	in.PaymentMethod = f.PaymentMethod
	in.RelatedOrder = linkID(f.RelatedOrder)
	in.TransactionID = strings.TrimSpace(f.TransactionID)
	in.Description = strings.TrimSpace(f.Description)
	in.Notes = strings.TrimSpace(f.Notes)
	return nil
}

type IncomeStats struct {
	TypeBreakdown []map[string]interface{} `json:"typeBreakdown"`
	TotalIncomes  int64                    `json:"totalIncomes"`
	TotalAmount   float64                  `json:"totalAmount"`
}

type IncomeService struct {
	incomes IncomeStore
	orders  OrderStore
}

func NewIncomeService(incomes IncomeStore, orders OrderStore) *IncomeService {
	return &IncomeService{incomes: incomes, orders: orders}
}

func (s *IncomeService) Create(ctx context.Context, userID primitive.ObjectID, f IncomeForm) (*models.Income, error) {
	in := &models.Income{User: userID}
	if err := f.fill(in); err != nil {
		return nil, err
	}
	if err := s.incomes.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// List returns matching incomes with relatedOrder resolved.
func (s *IncomeService) List(ctx context.Context, userID primitive.ObjectID, f repositories.IncomeFilter) ([]models.IncomeView, error) {
	incomes, err := s.incomes.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	ids := make([]*primitive.ObjectID, len(incomes))
	for i := range incomes {
		ids[i] = incomes[i].RelatedOrder
	}
	refs, err := resolveOrders(ctx, s.orders, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.IncomeView, len(incomes))
	for i, in := range incomes {
		out[i] = models.IncomeView{Income: in, RelatedOrder: refs[orderHex(in.RelatedOrder)]}
	}
	return out, nil
}

func (s *IncomeService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.IncomeView, error) {
	in, err := s.incomes.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	refs, err := resolveOrders(ctx, s.orders, userID, []*primitive.ObjectID{in.RelatedOrder})
	if err != nil {
		return nil, err
	}
	return &models.IncomeView{Income: *in, RelatedOrder: refs[orderHex(in.RelatedOrder)]}, nil
}

func (s *IncomeService) Update(ctx context.Context, userID, id primitive.ObjectID, f IncomeForm) (*models.Income, error) {
	in, err := s.incomes.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := f.fill(in); err != nil {
		return nil, err
	}
	if err := s.incomes.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *IncomeService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.incomes.Delete(ctx, userID, id)
}

func (s *IncomeService) Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (IncomeStats, error) {
	groups, err := s.incomes.Stats(ctx, userID, rng)
	if err != nil {
		return IncomeStats{}, err
	}
	count, total := totals(groups)
	return IncomeStats{
		TypeBreakdown: breakdown(groups, "totalAmount"),
		TotalIncomes:  count,
		TotalAmount:   total,
	}, nil
}
