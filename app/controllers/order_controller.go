package controllers

import (
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

const orderNotFound = "Order not found"

// OrderController applies the effects of order writes after the order
// response is decided; the response never carries the derived payment.
type OrderController struct {
	orders  *services.OrderService
	ledger  *services.LedgerService
	applier *services.EffectApplier
}

func NewOrderController(orders *services.OrderService, ledger *services.LedgerService, applier *services.EffectApplier) *OrderController {
	return &OrderController{orders: orders, ledger: ledger, applier: applier}
}

func (oc *OrderController) Store(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}

	order, effects, err := oc.orders.Create(c.Context(), user, in)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	oc.applier.Apply(c.Context(), effects)
	c.Created(order)
}

func (oc *OrderController) Index(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	orders, err := oc.orders.List(c.Context(), user)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Success(orders)
}

func (oc *OrderController) Show(c *ctx.Context) {
	user, id, ok := target(c, orderNotFound)
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Success(order)
}

func (oc *OrderController) Update(c *ctx.Context) {
	user, id, ok := target(c, orderNotFound)
	if !ok {
		return
	}
	var patch services.OrderPatch
	if !c.BindJSON(&patch) {
		return
	}

	order, effects, err := oc.orders.Update(c.Context(), user, id, patch)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	oc.applier.Apply(c.Context(), effects)
	c.Success(order)
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	user, id, ok := target(c, orderNotFound)
	if !ok {
		return
	}
	if err := oc.orders.Delete(c.Context(), user, id); err != nil {
		fail(c, err, orderNotFound)
		return
	}
	c.Message("Order deleted successfully")
}

func (oc *OrderController) Stats(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := oc.orders.Stats(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(stats)
}

// AdvanceDrift lists orders whose advance is not fully backed by linked
// payments.
func (oc *OrderController) AdvanceDrift(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	drift, err := oc.ledger.AdvanceDrift(c.Context(), user)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(drift)
}
