package controllers

import (
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

const purchaseNotFound = "Material purchase not found"

type MaterialPurchaseController struct {
	purchases *services.MaterialPurchaseService
}

func NewMaterialPurchaseController(purchases *services.MaterialPurchaseService) *MaterialPurchaseController {
	return &MaterialPurchaseController{purchases: purchases}
}

func (mc *MaterialPurchaseController) Store(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var form services.MaterialPurchaseForm
	if !c.BindJSON(&form) {
		return
	}
	m, err := mc.purchases.Create(c.Context(), user, form)
	if err != nil {
		fail(c, err, purchaseNotFound)
		return
	}
	c.Created(m)
}

func (mc *MaterialPurchaseController) Index(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	list, err := mc.purchases.List(c.Context(), user, repositories.PurchaseFilter{
		Range:        rng,
		SupplierName: c.Query("supplierName"),
		ItemName:     c.Query("itemName"),
	})
	if err != nil {
		fail(c, err, purchaseNotFound)
		return
	}
	c.Success(list)
}

func (mc *MaterialPurchaseController) Show(c *ctx.Context) {
	user, id, ok := target(c, purchaseNotFound)
	if !ok {
		return
	}
	m, err := mc.purchases.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, purchaseNotFound)
		return
	}
	c.Success(m)
}

func (mc *MaterialPurchaseController) Update(c *ctx.Context) {
	user, id, ok := target(c, purchaseNotFound)
	if !ok {
		return
	}
	current, err := mc.purchases.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, purchaseNotFound)
		return
	}

	form := services.MaterialPurchaseFormFrom(*current)
	if !c.BindJSON(&form) {
		return
	}
	m, err := mc.purchases.Update(c.Context(), user, id, form)
	if err != nil {
		fail(c, err, purchaseNotFound)
		return
	}
	c.Success(m)
}

func (mc *MaterialPurchaseController) Destroy(c *ctx.Context) {
	user, id, ok := target(c, purchaseNotFound)
	if !ok {
		return
	}
	if err := mc.purchases.Delete(c.Context(), user, id); err != nil {
		fail(c, err, purchaseNotFound)
		return
	}
	c.Message("Material purchase deleted successfully")
}

func (mc *MaterialPurchaseController) Stats(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := mc.purchases.Stats(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(stats)
}
