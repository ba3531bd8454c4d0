package controllers

import (
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// FinancialSummary reports income, costs and net profit over the optional
// startDate/endDate range.
func (rc *ReportController) FinancialSummary(c *ctx.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	rng, ok := dateRange(c)
	if !ok {
		return
	}
	summary, err := rc.reports.FinancialSummary(c.Context(), user, rng)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(summary)
}
