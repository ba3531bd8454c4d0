package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
)

func orderInput(price, advance float64) services.OrderInput {
	return services.OrderInput{
		OrderTaker:       models.TakerOwner,
		OrderTakerName:   "Meena",
		CustomerName:     "Asha Rao",
		CustomerContact:  "9876543210",
		CustomerLocation: "Pune",
		Product:          "Bridal lehenga",
		Quantity:         1,
		DeliveryDate:     "2026-12-01",
		Price:            &price,
		AdvancePayment:   advance,
	}
}

func ptr[T any](v T) *T { return &v }

type recordingLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
	fail     bool
}

func (l *recordingLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	if l.fail {
		return nil, errors.New("lock not obtained")
	}
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

func TestCreateMirrorsAdvanceIntoPayment(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders, payments := newFakeOrders(), &fakePayments{}

	svc := services.NewOrderService(orders, nil)
	o, effects, err := svc.Create(ctx, user, orderInput(2000, 500))
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, 1500.0, o.RemainingPayment())
	require.Len(t, effects, 1)

	services.NewEffectApplier(payments, nil).Apply(ctx, effects)

	got := payments.all()
	require.Len(t, got, 1)
	assert.Equal(t, 500.0, got[0].Amount)
	assert.Equal(t, models.MethodCash, got[0].PaymentMethod)
	assert.Equal(t, "Advance payment for order - Bridal lehenga", got[0].Notes)
	require.NotNil(t, got[0].RelatedOrder)
	assert.Equal(t, o.ID, *got[0].RelatedOrder)
	assert.Equal(t, user, got[0].User)

	summary, err := services.NewLedgerService(orders, payments).
		CustomerSummary(ctx, user, repositories.CustomerQuery{Contact: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, summary.TotalPaid)
	assert.Equal(t, 1500.0, summary.PendingAmount)
	require.Len(t, summary.PendingOrders, 1)
	assert.Equal(t, 1500.0, summary.PendingOrders[0].PendingAmount)
}

func TestCreateWithoutAdvanceDerivesNothing(t *testing.T) {
	_, effects, err := services.NewOrderService(newFakeOrders(), nil).
		Create(context.Background(), primitive.NewObjectID(), orderInput(900, 0))
	require.NoError(t, err)
	assert.Empty(t, effects)
}

func TestCreateUsesRequestedPaymentMethod(t *testing.T) {
	in := orderInput(900, 100)
	in.PaymentMethod = models.MethodUPI
	_, effects, err := services.NewOrderService(newFakeOrders(), nil).Create(context.Background(), primitive.NewObjectID(), in)
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, models.MethodUPI, effects[0].Payment.PaymentMethod)
}

func TestCreateRejectsBadDeliveryDate(t *testing.T) {
	in := orderInput(900, 0)
	in.DeliveryDate = "someday"
	_, _, err := services.NewOrderService(newFakeOrders(), nil).Create(context.Background(), primitive.NewObjectID(), in)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestUpdateAdvanceIncreaseAndDecrease(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders, payments := newFakeOrders(), &fakePayments{}
	svc := services.NewOrderService(orders, nil)
	applier := services.NewEffectApplier(payments, nil)

	o, effects, err := svc.Create(ctx, user, orderInput(2000, 500))
	require.NoError(t, err)
	applier.Apply(ctx, effects)

	updated, effects, err := svc.Update(ctx, user, o.ID, services.OrderPatch{AdvancePayment: ptr(800.0)})
	require.NoError(t, err)
	assert.Equal(t, 800.0, updated.AdvancePayment)
	assert.Equal(t, int64(1), updated.Version)
	require.Len(t, effects, 1)
	assert.Equal(t, 300.0, effects[0].Payment.Amount)
	assert.Equal(t, "Payment for order - Bridal lehenga (Additional payment)", effects[0].Payment.Notes)
	applier.Apply(ctx, effects)

	_, effects, err = svc.Update(ctx, user, o.ID, services.OrderPatch{AdvancePayment: ptr(300.0)})
	require.NoError(t, err)
	assert.Empty(t, effects)

	assert.Len(t, payments.all(), 2)

	ledger := services.NewLedgerService(orders, payments)
	q := repositories.CustomerQuery{Name: "asha"}
	first, err := ledger.CustomerSummary(ctx, user, q)
	require.NoError(t, err)
	second, err := ledger.CustomerSummary(ctx, user, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 800.0, first.TotalPaid)
	assert.Equal(t, 300.0, first.TotalAdvancePaid)
}

func TestUpdateFirstAdvanceIsLabelledAdvance(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	svc := services.NewOrderService(newFakeOrders(), nil)

	o, _, err := svc.Create(ctx, user, orderInput(1000, 0))
	require.NoError(t, err)

	_, effects, err := svc.Update(ctx, user, o.ID, services.OrderPatch{AdvancePayment: ptr(250.0), PaymentMethod: models.MethodCard})
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, "Payment for order - Bridal lehenga (Advance payment)", effects[0].Payment.Notes)
	assert.Equal(t, models.MethodCard, effects[0].Payment.PaymentMethod)
}

func TestUpdateLeavesUnsetFieldsAlone(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	svc := services.NewOrderService(newFakeOrders(), nil)

	o, _, err := svc.Create(ctx, user, orderInput(1000, 100))
	require.NoError(t, err)

	updated, effects, err := svc.Update(ctx, user, o.ID, services.OrderPatch{
		Status:             ptr(models.OrderDelivered),
		ActualDeliveryDate: ptr("2026-11-30"),
	})
	require.NoError(t, err)
	assert.Empty(t, effects)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	require.NotNil(t, updated.ActualDeliveryDate)
	assert.Equal(t, 100.0, updated.AdvancePayment)
	assert.Equal(t, 1000.0, updated.Price)
	assert.Equal(t, o.Product, updated.Product)
}

func TestUpdateRetriesLostVersionRace(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders := newFakeOrders()
	svc := services.NewOrderService(orders, nil)

	o, _, err := svc.Create(ctx, user, orderInput(1000, 0))
	require.NoError(t, err)

	orders.loseCAS = 2
	updated, effects, err := svc.Update(ctx, user, o.ID, services.OrderPatch{AdvancePayment: ptr(400.0)})
	require.NoError(t, err)
	assert.Equal(t, 3, orders.casCalls)
	assert.Equal(t, 400.0, updated.AdvancePayment)
	assert.Len(t, effects, 1)
}

func TestUpdateGivesUpAfterThreeLostRaces(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders := newFakeOrders()
	svc := services.NewOrderService(orders, nil)

	o, _, err := svc.Create(ctx, user, orderInput(1000, 0))
	require.NoError(t, err)

	orders.loseCAS = 3
	_, effects, err := svc.Update(ctx, user, o.ID, services.OrderPatch{AdvancePayment: ptr(400.0)})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Nil(t, effects)
	assert.Equal(t, 3, orders.casCalls)

	stored, err := orders.Get(ctx, user, o.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.AdvancePayment)
}

func TestUpdateTakesOrderLock(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	locker := &recordingLocker{}
	svc := services.NewOrderService(newFakeOrders(), locker)

	o, _, err := svc.Create(ctx, user, orderInput(1000, 0))
	require.NoError(t, err)

	_, _, err = svc.Update(ctx, user, o.ID, services.OrderPatch{Notes: ptr("hem 2cm")})
	require.NoError(t, err)
	assert.Equal(t, []string{"lock:order:" + o.ID.Hex()}, locker.keys)
	assert.Equal(t, 1, locker.released)
}

func TestUpdateProceedsWhenLockUnavailable(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	svc := services.NewOrderService(newFakeOrders(), &recordingLocker{fail: true})

	o, _, err := svc.Create(ctx, user, orderInput(1000, 0))
	require.NoError(t, err)

	updated, _, err := svc.Update(ctx, user, o.ID, services.OrderPatch{Status: ptr(models.OrderReady)})
	require.NoError(t, err)
	assert.Equal(t, models.OrderReady, updated.Status)
}

func TestOrderOwnership(t *testing.T) {
	ctx := context.Background()
	owner, intruder := primitive.NewObjectID(), primitive.NewObjectID()
	svc := services.NewOrderService(newFakeOrders(), nil)

	o, _, err := svc.Create(ctx, owner, orderInput(1000, 0))
	require.NoError(t, err)

	_, err = svc.Get(ctx, intruder, o.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, _, err = svc.Update(ctx, intruder, o.ID, services.OrderPatch{Status: ptr(models.OrderCancelled)})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, intruder, o.ID), services.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, owner, o.ID))

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderStatsEmpty(t *testing.T) {
	stats, err := services.NewOrderService(newFakeOrders(), nil).
		Stats(context.Background(), primitive.NewObjectID(), repositories.DateRange{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalValue)
	assert.NotNil(t, stats.StatusBreakdown)
	assert.Empty(t, stats.StatusBreakdown)
}
