package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

// MaterialPurchaseForm is the create/update body for a material purchase.
type MaterialPurchaseForm struct {
	PurchaseDate    string   `json:"purchaseDate"    validate:"omitempty,date"`
	ItemName        string   `json:"itemName"        validate:"required,max=200"`
	ItemCategory    string   `json:"itemCategory"    validate:"max=100"`
	Quantity        *float64 `json:"quantity"        validate:"required,gte=0"`
	Unit            string   `json:"unit"`
	SupplierName    string   `json:"supplierName"    validate:"required,max=100"`
	SupplierContact string   `json:"supplierContact"`
	SupplierEmail   string   `json:"supplierEmail"   validate:"omitempty,email"`
	CostPerUnit     *float64 `json:"costPerUnit"     validate:"required,gte=0"`
	TotalCost       *float64 `json:"totalCost"       validate:"required,gte=0"`
	PaymentMethod   string   `json:"paymentMethod"   validate:"omitempty,oneof=cash bank_transfer upi card cheque credit other"`
	InvoiceNumber   string   `json:"invoiceNumber"`
	Notes           string   `json:"notes"`
}

func MaterialPurchaseFormFrom(m models.MaterialPurchase) MaterialPurchaseForm {
	qty, cpu, total := m.Quantity, m.CostPerUnit, m.TotalCost
	return MaterialPurchaseForm{
		PurchaseDate:    formatDate(m.PurchaseDate),
		ItemName:        m.ItemName,
		ItemCategory:    m.ItemCategory,
		Quantity:        &qty,
		Unit:            m.Unit,
		SupplierName:    m.SupplierName,
		SupplierContact: m.SupplierContact,
		SupplierEmail:   m.SupplierEmail,
		CostPerUnit:     &cpu,
		TotalCost:       &total,
		PaymentMethod:   m.PaymentMethod,
		InvoiceNumber:   m.InvoiceNumber,
		Notes:           m.Notes,
	}
}

func (f MaterialPurchaseForm) fill(m *models.MaterialPurchase) error {
	date, err := dateOr(f.PurchaseDate, time.Now().UTC())
	if err != nil {
		return err
	}
	m.PurchaseDate = date
	m.ItemName = strings.TrimSpace(f.ItemName)
	m.ItemCategory = strings.TrimSpace(f.ItemCategory)
	if f.Quantity != nil {
		m.Quantity = *f.Quantity
	}
	m.Unit = strings.TrimSpace(f.Unit)
	if m.Unit == "" {
		m.Unit = models.DefaultUnit
	}
	m.SupplierName = strings.TrimSpace(f.SupplierName)
	m.SupplierContact = strings.TrimSpace(f.SupplierContact)
	m.SupplierEmail = strings.ToLower(strings.TrimSpace(f.SupplierEmail))
	if f.CostPerUnit != nil {
		m.CostPerUnit = *f.CostPerUnit
	}
	if f.TotalCost != nil {
		m.TotalCost = *f.TotalCost
	}
	m.PaymentMethod = f.PaymentMethod
	if m.PaymentMethod == "" {
		m.PaymentMethod = models.MethodCash
	}
	m.InvoiceNumber = strings.TrimSpace(f.InvoiceNumber)
	m.Notes = strings.TrimSpace(f.Notes)
	return nil
}

type MaterialPurchaseStats struct {
	SupplierBreakdown []map[string]interface{} `json:"supplierBreakdown"`
	TotalPurchases    int64                    `json:"totalPurchases"`
	TotalCost         float64                  `json:"totalCost"`
}

type MaterialPurchaseService struct {
	purchases MaterialPurchaseStore
}

func NewMaterialPurchaseService(purchases MaterialPurchaseStore) *MaterialPurchaseService {
	return &MaterialPurchaseService{purchases: purchases}
}

func (s *MaterialPurchaseService) Create(ctx context.Context, userID primitive.ObjectID, f MaterialPurchaseForm) (*models.MaterialPurchase, error) {
	m := &models.MaterialPurchase{User: userID}
	if err := f.fill(m); err != nil {
		return nil, err
	}
	if err := s.purchases.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaterialPurchaseService) List(ctx context.Context, userID primitive.ObjectID, f repositories.PurchaseFilter) ([]models.MaterialPurchase, error) {
	return s.purchases.List(ctx, userID, f)
}

func (s *MaterialPurchaseService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.MaterialPurchase, error) {
	return s.purchases.Get(ctx, userID, id)
}

func (s *MaterialPurchaseService) Update(ctx context.Context, userID, id primitive.ObjectID, f MaterialPurchaseForm) (*models.MaterialPurchase, error) {
	m, err := s.purchases.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := f.fill(m); err != nil {
		return nil, err
	}
	if err := s.purchases.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaterialPurchaseService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.purchases.Delete(ctx, userID, id)
}

func (s *MaterialPurchaseService) Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (MaterialPurchaseStats, error) {
	groups, err := s.purchases.Stats(ctx, userID, rng)
	if err != nil {
		return MaterialPurchaseStats{}, err
	}
	count, total := totals(groups)
	return MaterialPurchaseStats{
		SupplierBreakdown: breakdown(groups, "totalCost"),
		TotalPurchases:    count,
		TotalCost:         total,
	}, nil
}
