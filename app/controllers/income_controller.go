package controllers

import (
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

const incomeNotFound = "Income not found"

type IncomeController struct {
	incomes *services.IncomeService
}

func NewIncomeController(incomes *services.IncomeService) *IncomeController {
	return &IncomeController{incomes: incomes}
}

func (ic *IncomeController) Store(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var form services.IncomeForm
	if !c.BindJSON(&form) {
		return
	}
	in, err := ic.incomes.Create(c.Context(), user, form)
	if err != nil {
		fail(c, err, incomeNotFound)
		return
	}
	c.Created(in)
}

func (ic *IncomeController) Index(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	list, err := ic.incomes.List(c.Context(), user, repositories.IncomeFilter{
		Range:      rng,
		IncomeType: c.Query("incomeType"),
		Source:     c.Query("source"),
	})
	if err != nil {
		fail(c, err, incomeNotFound)
		return
	}
	c.Success(list)
}

func (ic *IncomeController) Show(c *ctx.Context) {
	user, id, ok := target(c, incomeNotFound)
	if !ok {
		return
	}
	in, err := ic.incomes.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, incomeNotFound)
		return
	}
	c.Success(in)
}

func (ic *IncomeController) Update(c *ctx.Context) {
	user, id, ok := target(c, incomeNotFound)
	if !ok {
		return
	}
	current, err := ic.incomes.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, incomeNotFound)
		return
	}

	form := services.IncomeFormFrom(current.Income)
	if !c.BindJSON(&form) {
		return
	}
	in, err := ic.incomes.Update(c.Context(), user, id, form)
	if err != nil {
		fail(c, err, incomeNotFound)
		return
	}
	c.Success(in)
}

func (ic *IncomeController) Destroy(c *ctx.Context) {
	user, id, ok := target(c, incomeNotFound)
	if !ok {
		return
	}
	if err := ic.incomes.Delete(c.Context(), user, id); err != nil {
		fail(c, err, incomeNotFound)
		return
	}
	c.Message("Income deleted successfully")
}

func (ic *IncomeController) Stats(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := ic.incomes.Stats(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(stats)
}
