package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

type panickingPayments struct{}

func (panickingPayments) Create(context.Context, *models.Payment) error { panic("store exploded") }

func TestAdvanceOnCreate(t *testing.T) {
	o := models.Order{ID: primitive.NewObjectID(), Product: "Kurti", AdvancePayment: 0}
	assert.Empty(t, services.AdvanceOnCreate(o, ""))

	o.AdvancePayment = 120.5
	effects := services.AdvanceOnCreate(o, "")
	require.Len(t, effects, 1)
	assert.Equal(t, 120.5, effects[0].Payment.Amount)
	assert.Equal(t, models.MethodCash, effects[0].Payment.PaymentMethod)
}

func TestAdvanceOnUpdate(t *testing.T) {
	before := models.Order{ID: primitive.NewObjectID(), Product: "Saree", AdvancePayment: 0.1}
	after := before
	after.AdvancePayment = 0.3

	effects := services.AdvanceOnUpdate(before, after, "")
	require.Len(t, effects, 1)
	assert.Equal(t, 0.2, effects[0].Payment.Amount)

	assert.Empty(t, services.AdvanceOnUpdate(after, before, ""))
	assert.Empty(t, services.AdvanceOnUpdate(after, after, ""))
}

func TestApplySwallowsStoreErrors(t *testing.T) {
	payments := &fakePayments{failWith: errBoom}
	effects := services.AdvanceOnCreate(models.Order{ID: primitive.NewObjectID(), AdvancePayment: 10}, "")

	assert.NotPanics(t, func() {
		services.NewEffectApplier(payments, nil).Apply(context.Background(), effects)
	})
	assert.Empty(t, payments.all())
}

func TestApplySwallowsPanics(t *testing.T) {
	effects := services.AdvanceOnCreate(models.Order{ID: primitive.NewObjectID(), AdvancePayment: 10}, "")
	assert.NotPanics(t, func() {
		services.NewEffectApplier(panickingPayments{}, nil).Apply(context.Background(), effects)
	})
}

func TestApplyOnPoolSurvivesCancelledRequest(t *testing.T) {
	pool := workerpool.New(2, 8)
	payments := &fakePayments{}

	ctx, cancel := context.WithCancel(context.Background())
	effects := services.AdvanceOnCreate(models.Order{ID: primitive.NewObjectID(), AdvancePayment: 75}, "")
	services.NewEffectApplier(payments, pool).Apply(ctx, effects)
	cancel()

	pool.Shutdown()
	got := payments.all()
	require.Len(t, got, 1)
	assert.Equal(t, 75.0, got[0].Amount)
}

func TestApplyFallsBackInlineWhenPoolClosed(t *testing.T) {
	pool := workerpool.New(1, 1)
	pool.Shutdown()
	payments := &fakePayments{}

	effects := services.AdvanceOnCreate(models.Order{ID: primitive.NewObjectID(), AdvancePayment: 40}, "")
	services.NewEffectApplier(payments, pool).Apply(context.Background(), effects)
	assert.Len(t, payments.all(), 1)
}
