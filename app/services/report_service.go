package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

// FinancialSummary is the body of GET /api/reports/financial-summary.
type FinancialSummary struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalPayments     float64 `json:"totalPayments"`
	TotalMaterialCost float64 `json:"totalMaterialCost"`
	TotalSalaries     float64 `json:"totalSalaries"`
	NetProfit         float64 `json:"netProfit"`
}

// StatsSource is any store that can group its records for a user.
type StatsSource interface {
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

type ReportService struct {
	incomes   StatsSource
	payments  StatsSource
	purchases StatsSource
	salaries  StatsSource
	pool      *workerpool.Pool
}

// NewReportService fans the four stats queries out on pool, or runs them
// one after another when pool is nil.
func NewReportService(incomes, payments, purchases, salaries StatsSource, pool *workerpool.Pool) *ReportService {
	return &ReportService{incomes: incomes, payments: payments, purchases: purchases, salaries: salaries, pool: pool}
}

// FinancialSummary computes net profit = income - (material cost + salaries)
// over rng. Customer payments are reported alongside but do not enter the
// profit figure.
func (s *ReportService) FinancialSummary(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) (FinancialSummary, error) {
	sources := []StatsSource{s.incomes, s.payments, s.purchases, s.salaries}
	sums := make([]float64, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		task := func() {
			defer wg.Done()
			groups, err := src.Stats(ctx, userID, rng)
			if err != nil {
				errs[i] = err
				return
			}
			_, sums[i] = totals(groups)
		}

		wg.Add(1)
		if s.pool == nil || s.pool.SubmitWait(task) != nil {
			task()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return FinancialSummary{}, err
		}
	}

	income, material, salaries := money(sums[0]), money(sums[2]), money(sums[3])
	return FinancialSummary{
		TotalIncome:       sums[0],
		TotalPayments:     sums[1],
		TotalMaterialCost: sums[2],
		TotalSalaries:     sums[3],
		NetProfit:         income.Sub(material.Add(salaries)).InexactFloat64(),
	}, nil
}
