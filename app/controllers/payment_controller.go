package controllers

import (
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

const paymentNotFound = "Payment not found"

type PaymentController struct {
	payments *services.PaymentService
	ledger   *services.LedgerService
}

func NewPaymentController(payments *services.PaymentService, ledger *services.LedgerService) *PaymentController {
	return &PaymentController{payments: payments, ledger: ledger}
}

func (pc *PaymentController) Store(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var form services.PaymentForm
	if !c.BindJSON(&form) {
		return
	}
	p, err := pc.payments.Create(c.Context(), user, form)
	if err != nil {
		fail(c, err, paymentNotFound)
		return
	}
	c.Created(p)
}

func (pc *PaymentController) Index(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	list, err := pc.payments.List(c.Context(), user, repositories.PaymentFilter{
		Range:        rng,
		CustomerName: c.Query("customerName"),
	})
	if err != nil {
		fail(c, err, paymentNotFound)
		return
	}
	c.Success(list)
}

func (pc *PaymentController) Show(c *ctx.Context) {
	user, id, ok := target(c, paymentNotFound)
	if !ok {
		return
	}
	p, err := pc.payments.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, paymentNotFound)
		return
	}
	c.Success(p)
}

// Update merges the body over the stored payment.
func (pc *PaymentController) Update(c *ctx.Context) {
	user, id, ok := target(c, paymentNotFound)
	if !ok {
		return
	}
	current, err := pc.payments.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, paymentNotFound)
		return
	}

	form := services.PaymentFormFrom(current.Payment)
	if !c.BindJSON(&form) {
		return
	}
	p, err := pc.payments.Update(c.Context(), user, id, form)
	if err != nil {
		fail(c, err, paymentNotFound)
		return
	}
	c.Success(p)
}

func (pc *PaymentController) Destroy(c *ctx.Context) {
	user, id, ok := target(c, paymentNotFound)
	if !ok {
		return
	}
	if err := pc.payments.Delete(c.Context(), user, id); err != nil {
		fail(c, err, paymentNotFound)
		return
	}
	c.Message("Payment deleted successfully")
}

func (pc *PaymentController) Stats(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := pc.payments.Stats(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(stats)
}

// CustomerSummary reconciles a customer's orders against their payments.
func (pc *PaymentController) CustomerSummary(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	summary, err := pc.ledger.CustomerSummary(c.Context(), user, repositories.CustomerQuery{
		Name:    c.Query("customerName"),
		Contact: c.Query("customerContact"),
	})
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(summary)
}
