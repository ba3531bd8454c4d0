package routes

import (
	"github.com/shashiranjanraj/boutique/app/controllers"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
	"github.com/shashiranjanraj/boutique/pkg/middleware"
	"github.com/shashiranjanraj/boutique/pkg/router"
)

// Controllers is everything RegisterAPI mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Orders    *controllers.OrderController
	Payments  *controllers.PaymentController
	Incomes   *controllers.IncomeController
	Purchases *controllers.MaterialPurchaseController
	Salaries  *controllers.SalaryController
	Reports   *controllers.ReportController
}

// resource is the CRUD + stats surface shared by the ledger collections.
type resource interface {
	Store(c *ctx.Context)
	Index(c *ctx.Context)
	Show(c *ctx.Context)
	Update(c *ctx.Context)
	Destroy(c *ctx.Context)
	Stats(c *ctx.Context)
}

func mountResource(g *router.Group, name string, rc resource) {
	g.Post("/", name+".store", ctx.Wrap(rc.Store))
	g.Get("/", name+".index", ctx.Wrap(rc.Index))
	g.Get("/stats", name+".stats", ctx.Wrap(rc.Stats))
	g.Get("/{id}", name+".show", ctx.Wrap(rc.Show))
	g.Put("/{id}", name+".update", ctx.Wrap(rc.Update))
	g.Delete("/{id}", name+".destroy", ctx.Wrap(rc.Destroy))
}

func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	authGroup.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	authGroup.Post("/refresh", "auth.refresh", ctx.Wrap(c.Auth.Refresh))

	protected := api.Group("", middleware.Auth)

	orders := protected.Group("/orders")
	orders.Get("/advance-drift", "orders.drift", ctx.Wrap(c.Orders.AdvanceDrift))
	mountResource(orders, "orders", c.Orders)

	payments := protected.Group("/payments")
	payments.Get("/customer-summary", "payments.customer_summary", ctx.Wrap(c.Payments.CustomerSummary))
	mountResource(payments, "payments", c.Payments)

	mountResource(protected.Group("/incomes"), "incomes", c.Incomes)
	mountResource(protected.Group("/material-purchases"), "material_purchases", c.Purchases)
	mountResource(protected.Group("/salaries"), "salaries", c.Salaries)

	protected.Group("/reports").Get("/financial-summary", "reports.financial_summary", ctx.Wrap(c.Reports.FinancialSummary))
}
