package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/pkg/logger"
	"github.com/shashiranjanraj/boutique/pkg/metrics"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

// Effect is a derived write produced by an order operation. The order write
// has already succeeded by the time an Effect exists.
type Effect struct {
	Payment models.Payment
}

func derivedPayment(o models.Order, amount decimal.Decimal, method, notes string) models.Payment {
	if method == "" {
		method = models.MethodCash
	}
	id := o.ID
	return models.Payment{
		User:            o.User,
		CustomerName:    o.CustomerName,
		CustomerContact: o.CustomerContact,
		PaymentDate:     time.Now().UTC(),
		Amount:          amount.InexactFloat64(),
		PaymentMethod:   method,
		RelatedOrder:    &id,
		Notes:           notes,
		Origin:          models.OriginAdvance,
	}
}

// AdvanceOnCreate mirrors a new order's advance into one payment.
func AdvanceOnCreate(o models.Order, method string) []Effect {
	adv := money(o.AdvancePayment)
	if !adv.IsPositive() {
		return nil
	}
	notes := fmt.Sprintf("Advance payment for order - %s", o.Product)
	return []Effect{{Payment: derivedPayment(o, adv, method, notes)}}
}

// AdvanceOnUpdate records the increase in advance between before and after.
// A decrease or no change produces nothing; refunds are never derived.
func AdvanceOnUpdate(before, after models.Order, method string) []Effect {
	newAdv := money(after.AdvancePayment)
	diff := newAdv.Sub(money(before.AdvancePayment))
	if !diff.IsPositive() {
		return nil
	}

	kind := "Additional payment"
	if diff.Equal(newAdv) {
		kind = "Advance payment"
	}
	notes := fmt.Sprintf("Payment for order - %s (%s)", after.Product, kind)
	return []Effect{{Payment: derivedPayment(after, diff, method, notes)}}
}

// EffectApplier writes derived payments. It never returns an error: a failed
// write is logged and counted, not retried, and never touches the order.
type EffectApplier struct {
	payments PaymentCreator
	pool     *workerpool.Pool
}

// NewEffectApplier applies effects inline when pool is nil and on pool
// otherwise.
func NewEffectApplier(payments PaymentCreator, pool *workerpool.Pool) *EffectApplier {
	return &EffectApplier{payments: payments, pool: pool}
}

// Apply consumes effects. On the pool it detaches from ctx cancellation so a
// finished request does not abort the write; a full or closed pool falls
// back to running inline.
func (a *EffectApplier) Apply(ctx context.Context, effects []Effect) {
	if len(effects) == 0 {
		return
	}
	if a.pool == nil {
		a.run(ctx, effects)
		return
	}

	detached := context.WithoutCancel(ctx)
	if err := a.pool.Submit(func() { a.run(detached, effects) }); err != nil {
		logger.WithCtx(ctx).Debug("linkage: pool unavailable, applying inline", "error", err)
		a.run(ctx, effects)
	}
}

func (a *EffectApplier) run(ctx context.Context, effects []Effect) {
	log := logger.WithCtx(ctx)
	for _, e := range effects {
		p := e.Payment
		if err := a.create(ctx, &p); err != nil {
			metrics.RecordLinkage(false)
			log.Error("linkage: derived payment not recorded",
				"error", err,
				"order_id", orderHex(p.RelatedOrder),
				"amount", p.Amount,
			)
			continue
		}
		metrics.RecordLinkage(true)
		log.Info("linkage: derived payment recorded",
			"payment_id", p.ID.Hex(),
			"order_id", orderHex(p.RelatedOrder),
			"amount", p.Amount,
		)
	}
}

// create shields the caller from a panicking store.
func (a *EffectApplier) create(ctx context.Context, p *models.Payment) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return a.payments.Create(ctx, p)
}
