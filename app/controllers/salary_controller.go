package controllers

import (
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

const salaryNotFound = "Salary not found"

type SalaryController struct {
	salaries *services.SalaryService
}

func NewSalaryController(salaries *services.SalaryService) *SalaryController {
	return &SalaryController{salaries: salaries}
}

func (sc *SalaryController) Store(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var form services.SalaryForm
	if !c.BindJSON(&form) {
		return
	}
	s, err := sc.salaries.Create(c.Context(), user, form)
	if err != nil {
		fail(c, err, salaryNotFound)
		return
	}
	c.Created(s)
}

func (sc *SalaryController) Index(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	year, err := services.ParseYear(c.Query("year"))
	if err != nil {
		fail(c, err, "")
		return
	}
	list, err := sc.salaries.List(c.Context(), user, repositories.SalaryFilter{
		Range:        rng,
		EmployeeName: c.Query("employeeName"),
		Month:        c.Query("month"),
		Year:         year,
	})
	if err != nil {
		fail(c, err, salaryNotFound)
		return
	}
	c.Success(list)
}

func (sc *SalaryController) Show(c *ctx.Context) {
	user, id, ok := target(c, salaryNotFound)
	if !ok {
		return
	}
	s, err := sc.salaries.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, salaryNotFound)
		return
	}
	c.Success(s)
}

func (sc *SalaryController) Update(c *ctx.Context) {
	user, id, ok := target(c, salaryNotFound)
	if !ok {
		return
	}
	current, err := sc.salaries.Get(c.Context(), user, id)
	if err != nil {
		fail(c, err, salaryNotFound)
		return
	}

	form := services.SalaryFormFrom(*current)
	if !c.BindJSON(&form) {
		return
	}
	s, err := sc.salaries.Update(c.Context(), user, id, form)
	if err != nil {
		fail(c, err, salaryNotFound)
		return
	}
	c.Success(s)
}

func (sc *SalaryController) Destroy(c *ctx.Context) {
	user, id, ok := target(c, salaryNotFound)
	if !ok {
		return
	}
	if err := sc.salaries.Delete(c.Context(), user, id); err != nil {
		fail(c, err, salaryNotFound)
		return
	}
	c.Message("Salary deleted successfully")
}

func (sc *SalaryController) Stats(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	stats, err := sc.salaries.Stats(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(stats)
}
