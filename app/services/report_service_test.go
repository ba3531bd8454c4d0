package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

func reportSources() (incomes, payments, purchases, salaries fakeStats) {
	incomes = fakeStats{rows: []repositories.Group{
		{Key: "order_payment", Count: 2, Total: 5000},
		{Key: "other", Count: 1, Total: 1000.5},
	}}
	payments = fakeStats{rows: []repositories.Group{{Key: "cash", Count: 3, Total: 4200}}}
	purchases = fakeStats{rows: []repositories.Group{{Key: "Silk House", Count: 1, Total: 1500.25}}}
	salaries = fakeStats{rows: []repositories.Group{{Key: "Ravi", Count: 1, Total: 2000}}}
	return
}

func TestFinancialSummaryNetProfit(t *testing.T) {
	in, pay, mat, sal := reportSources()

	for name, pool := range map[string]*workerpool.Pool{"inline": nil, "pool": workerpool.New(2, 0)} {
		t.Run(name, func(t *testing.T) {
			if pool != nil {
				defer pool.Shutdown()
			}
			got, err := services.NewReportService(in, pay, mat, sal, pool).
				FinancialSummary(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
			require.NoError(t, err)

			assert.Equal(t, 6000.5, got.TotalIncome)
			assert.Equal(t, 4200.0, got.TotalPayments)
			assert.Equal(t, 1500.25, got.TotalMaterialCost)
			assert.Equal(t, 2000.0, got.TotalSalaries)
			assert.Equal(t, 2500.25, got.NetProfit)
		})
	}
}

func TestFinancialSummaryEmpty(t *testing.T) {
	empty := fakeStats{}
	got, err := services.NewReportService(empty, empty, empty, empty, nil).
		FinancialSummary(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, services.FinancialSummary{}, got)
}

func TestFinancialSummaryPropagatesErrors(t *testing.T) {
	in, pay, mat, _ := reportSources()
	_, err := services.NewReportService(in, pay, mat, fakeStats{err: errBoom}, nil).
		FinancialSummary(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
	assert.ErrorIs(t, err, errBoom)
}

func TestPaymentStatsEmpty(t *testing.T) {
	stats, err := services.NewPaymentService(&fakePayments{}, newFakeOrders()).
		Stats(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPayments)
	assert.Zero(t, stats.TotalAmount)
	assert.Empty(t, stats.MethodBreakdown)
}

func TestPaymentStatsBreakdown(t *testing.T) {
	payments := &fakePayments{statsRows: []repositories.Group{
		{Key: "cash", Count: 2, Total: 700},
		{Key: "upi", Count: 1, Total: 300},
	}}
	stats, err := services.NewPaymentService(payments, newFakeOrders()).
		Stats(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalPayments)
	assert.Equal(t, 1000.0, stats.TotalAmount)
	require.Len(t, stats.MethodBreakdown, 2)
	assert.Equal(t, map[string]interface{}{"_id": "cash", "count": int64(2), "totalAmount": 700.0}, stats.MethodBreakdown[0])
}
