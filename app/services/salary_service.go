package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

// SalaryForm is the create/update body for a salary payment.
type SalaryForm struct {
	PaymentDate     string   `json:"paymentDate"     validate:"omitempty,date"`
	EmployeeName    string   `json:"employeeName"    validate:"required,max=100"`
	EmployeeID      string   `json:"employeeId"`
	EmployeeContact string   `json:"employeeContact"`
	EmployeeEmail   string   `json:"employeeEmail"   validate:"omitempty,email"`
	Amount          *float64 `json:"amount"          validate:"required,gte=0"`
	PaymentMethod   string   `json:"paymentMethod"   validate:"required,oneof=cash bank_transfer upi cheque other"`
	SalaryPeriod    string   `json:"salaryPeriod"    validate:"max=50"`
	Month           string   `json:"month"`
	Year            int      `json:"year"            validate:"omitempty,gte=1900,lte=3000"`
	TransactionID   string   `json:"transactionId"`
	Notes           string   `json:"notes"`
}

func SalaryFormFrom(s models.Salary) SalaryForm {
	amount := s.Amount
	return SalaryForm{
		PaymentDate:     formatDate(s.PaymentDate),
		EmployeeName:    s.EmployeeName,
		EmployeeID:      s.EmployeeID,
		EmployeeContact: s.EmployeeContact,
		EmployeeEmail:   s.EmployeeEmail,
		Amount:          &amount,
		PaymentMethod:   s.PaymentMethod,
		SalaryPeriod:    s.SalaryPeriod,
		Month:           s.Month,
		Year:            s.Year,
		TransactionID:   s.TransactionID,
		Notes:           s.Notes,
	}
}

func (f SalaryForm) fill(s *models.Salary) error {
	date, err := dateOr(f.PaymentDate, time.Now().UTC())
	if err != nil {
		return err
	}
	s.PaymentDate = date
	s.EmployeeName = strings.TrimSpace(f.EmployeeName)
	s.EmployeeID = strings.TrimSpace(f.EmployeeID)
	s.EmployeeContact = strings.TrimSpace(f.EmployeeContact)
	s.EmployeeEmail = strings.ToLower(strings.TrimSpace(f.EmployeeEmail))
	if f.Amount != nil {
		s.Amount = *f.Amount
	}
	s.PaymentMethod = f.PaymentMethod
	s.SalaryPeriod = strings.TrimSpace(f.SalaryPeriod)
	s.Month = strings.TrimSpace(f.Month)
	s.Year = f.Year
	s.TransactionID = strings.TrimSpace(f.TransactionID)
	s.Notes = strings.TrimSpace(f.Notes)
	return nil
}

type SalaryStats struct {
	EmployeeBreakdown []map[string]interface{} `json:"employeeBreakdown"`
	TotalSalaries     int64                    `json:"totalSalaries"`
	TotalAmount       float64                  `json:"totalAmount"`
}

type SalaryService struct {
	salaries SalaryStore
}

func NewSalaryService(salaries SalaryStore) *SalaryService {
	return &SalaryService{salaries: salaries}
}

func (s *SalaryService) Create(ctx context.Context, userID primitive.ObjectID, f SalaryForm) (*models.Salary, error) {
	sal := &models.Salary{User: userID}
	if err := f.fill(sal); err != nil {
		return nil, err
	}
	if err := s.salaries.Create(ctx, sal); err != nil {
		return nil, err
	}
	return sal, nil
}

func (s *SalaryService) List(ctx context.Context, userID primitive.ObjectID, f repositories.SalaryFilter) ([]models.Salary, error) {
	return s.salaries.List(ctx, userID, f)
}

func (s *SalaryService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Salary, error) {
	return s.salaries.Get(ctx, userID, id)
}

func (s *SalaryService) Update(ctx context.Context, userID, id primitive.ObjectID, f SalaryForm) (*models.Salary, error) {
	sal, err := s.salaries.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := f.fill(sal); err != nil {
		return nil, err
	}
	if err := s.salaries.Update(ctx, sal); err != nil {
		return nil, err
	}
	return sal, nil
}

func (s *SalaryService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.salaries.Delete(ctx, userID, id)
}

func (s *SalaryService) Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (SalaryStats, error) {
	groups, err := s.salaries.Stats(ctx, userID, rng)
	if err != nil {
		return SalaryStats{}, err
	}
	count, total := totals(groups)
	return SalaryStats{
		EmployeeBreakdown: breakdown(groups, "totalAmount"),
		TotalSalaries:     count,
		TotalAmount:       total,
	}, nil
}
