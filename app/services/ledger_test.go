package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
)

func linked(id primitive.ObjectID) *primitive.ObjectID { return &id }

func TestSummarizeEmptyCustomer(t *testing.T) {
	q := repositories.CustomerQuery{Name: "Nobody", Contact: "000"}
	got := services.Summarize(q, nil, nil)

	assert.Equal(t, "Nobody", got.CustomerName)
	assert.Equal(t, "000", got.CustomerContact)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.TotalOrderValue)
	assert.Zero(t, got.TotalPaid)
	assert.Zero(t, got.PendingAmount)
	assert.NotNil(t, got.PendingOrders)
	assert.NotNil(t, got.PaymentHistory)
	assert.Empty(t, got.PendingOrders)
	assert.Empty(t, got.PaymentHistory)
}

func TestSummarizeTwoOrdersOneManualPayment(t *testing.T) {
	now := time.Now().UTC()
	a := models.Order{ID: primitive.NewObjectID(), CustomerName: "Asha", CustomerContact: "9999999999", CustomerLocation: "Hyderabad",
		Product: "Lehenga", Price: 1000, AdvancePayment: 200, OrderDate: now, Status: models.OrderPending}
	b := models.Order{ID: primitive.NewObjectID(), CustomerName: "Asha", CustomerContact: "9999999999",
		Product: "Blouse", Price: 500, OrderDate: now.Add(-time.Hour), Status: models.OrderReady}

	payments := []models.Payment{
		{ID: primitive.NewObjectID(), Amount: 200, RelatedOrder: linked(a.ID), PaymentMethod: "cash", Notes: "Advance payment for order - Lehenga"},
		{ID: primitive.NewObjectID(), Amount: 500, RelatedOrder: linked(a.ID), PaymentMethod: "upi"},
	}

	got := services.Summarize(repositories.CustomerQuery{Contact: "9999999999"}, []models.Order{a, b}, payments)

	assert.Equal(t, "Asha", got.CustomerName)
	assert.Equal(t, "Hyderabad", got.CustomerLocation)
	assert.Equal(t, 2, got.TotalOrders)
	assert.Equal(t, 1500.0, got.TotalOrderValue)
	assert.Equal(t, 200.0, got.TotalAdvancePaid)
	assert.Equal(t, 700.0, got.TotalPaid)
	assert.Equal(t, 800.0, got.PendingAmount)

	require.Len(t, got.PendingOrders, 2)
	assert.Equal(t, a.ID, got.PendingOrders[0].OrderID)
	assert.Equal(t, 700.0, got.PendingOrders[0].PaidAmount)
	assert.Equal(t, 300.0, got.PendingOrders[0].PendingAmount)
	assert.Equal(t, 1000.0, got.PendingOrders[0].TotalPrice)
	assert.Equal(t, b.ID, got.PendingOrders[1].OrderID)
	assert.Equal(t, 0.0, got.PendingOrders[1].PaidAmount)
	assert.Equal(t, 500.0, got.PendingOrders[1].PendingAmount)

	assert.Len(t, got.PaymentHistory, 2)
}

func TestSummarizeFullyPaidOrderIsNotPending(t *testing.T) {
	o := models.Order{ID: primitive.NewObjectID(), Price: 300}
	payments := []models.Payment{
		{Amount: 100, RelatedOrder: linked(o.ID)},
		{Amount: 200, RelatedOrder: linked(o.ID)},
		{Amount: 50}, // unlinked, counts towards totalPaid only
	}

	got := services.Summarize(repositories.CustomerQuery{Name: "x"}, []models.Order{o}, payments)
	assert.Empty(t, got.PendingOrders)
	assert.Equal(t, 350.0, got.TotalPaid)
	assert.Equal(t, -50.0, got.PendingAmount)
}

func TestSummarizeDecimalSums(t *testing.T) {
	o := models.Order{ID: primitive.NewObjectID(), Price: 0.3}
	payments := []models.Payment{
		{Amount: 0.1, RelatedOrder: linked(o.ID)},
		{Amount: 0.2, RelatedOrder: linked(o.ID)},
	}
	got := services.Summarize(repositories.CustomerQuery{Name: "x"}, []models.Order{o}, payments)
	assert.Equal(t, 0.3, got.TotalPaid)
	assert.Zero(t, got.PendingAmount)
	assert.Empty(t, got.PendingOrders)
}

func TestCustomerSummaryRequiresNameOrContact(t *testing.T) {
	svc := services.NewLedgerService(newFakeOrders(), &fakePayments{})
	_, err := svc.CustomerSummary(context.Background(), primitive.NewObjectID(), repositories.CustomerQuery{})
	require.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Equal(t, "Please provide customer name or contact", err.Error())
}

func TestCustomerSummaryIsScopedToUser(t *testing.T) {
	ctx := context.Background()
	orders, payments := newFakeOrders(), &fakePayments{}
	me, other := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, orders.Create(ctx, &models.Order{User: other, CustomerName: "Asha", CustomerContact: "1", Price: 900}))
	require.NoError(t, payments.Create(ctx, &models.Payment{User: other, CustomerName: "Asha", CustomerContact: "1", Amount: 100}))

	got, err := services.NewLedgerService(orders, payments).CustomerSummary(ctx, me, repositories.CustomerQuery{Name: "asha"})
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.TotalPaid)
}

func TestFindDrift(t *testing.T) {
	ok := models.Order{ID: primitive.NewObjectID(), AdvancePayment: 500}
	short := models.Order{ID: primitive.NewObjectID(), AdvancePayment: 800, Product: "Saree"}
	none := models.Order{ID: primitive.NewObjectID()}

	payments := []models.Payment{
		{Amount: 500, RelatedOrder: linked(ok.ID), Origin: models.OriginAdvance},
		{Amount: 500, RelatedOrder: linked(short.ID), Origin: models.OriginAdvance},
		{Amount: 300, RelatedOrder: linked(short.ID), PaymentMethod: models.MethodUPI},
	}

	got := services.FindDrift([]models.Order{ok, short, none}, payments)
	require.Len(t, got, 1)
	assert.Equal(t, short.ID, got[0].OrderID)
	assert.Equal(t, 500.0, got[0].LinkedPaid)
	assert.Equal(t, 300.0, got[0].Missing)
}

func TestAdvanceDriftAfterSwallowedLinkageFailure(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders, payments := newFakeOrders(), &fakePayments{failWith: errBoom}

	orderSvc := services.NewOrderService(orders, nil)
	applier := services.NewEffectApplier(payments, nil)

	o, effects, err := orderSvc.Create(ctx, user, orderInput(2000, 500))
	require.NoError(t, err)
	applier.Apply(ctx, effects)

	drift, err := services.NewLedgerService(orders, payments).AdvanceDrift(ctx, user)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Equal(t, o.ID, drift[0].OrderID)
	assert.Equal(t, 500.0, drift[0].Missing)
}

func TestAdvanceDriftIgnoresManualPaymentsOnTheOrder(t *testing.T) {
	ctx := context.Background()
	user := primitive.NewObjectID()
	orders, payments := newFakeOrders(), &fakePayments{failWith: errBoom}

	o, effects, err := services.NewOrderService(orders, nil).Create(ctx, user, orderInput(1000, 200))
	require.NoError(t, err)
	services.NewEffectApplier(payments, nil).Apply(ctx, effects)

	payments.failWith = nil
	amount := 500.0
	_, err = services.NewPaymentService(payments, orders).Create(ctx, user, services.PaymentForm{
		CustomerName:    o.CustomerName,
		CustomerContact: o.CustomerContact,
		Amount:          &amount,
		PaymentMethod:   models.MethodUPI,
		RelatedOrder:    ptr(o.ID.Hex()),
	})
	require.NoError(t, err)

	drift, err := services.NewLedgerService(orders, payments).AdvanceDrift(ctx, user)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Equal(t, o.ID, drift[0].OrderID)
	assert.Zero(t, drift[0].LinkedPaid)
	assert.Equal(t, 200.0, drift[0].Missing)
}

func TestDerivedPaymentsAreMarked(t *testing.T) {
	o := models.Order{ID: primitive.NewObjectID(), AdvancePayment: 300, Product: "Kurta"}

	effects := services.AdvanceOnCreate(o, "")
	require.Len(t, effects, 1)
	assert.Equal(t, models.OriginAdvance, effects[0].Payment.Origin)
	assert.Empty(t, services.FindDrift([]models.Order{o}, []models.Payment{effects[0].Payment}))
}
