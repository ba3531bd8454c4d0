// Package kernel assembles the HTTP application: repositories, services,
// controllers, the global middleware stack and the operational endpoints.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/boutique/app/controllers"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/routes"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/config"
	"github.com/shashiranjanraj/boutique/pkg/cache"
	"github.com/shashiranjanraj/boutique/pkg/database"
	"github.com/shashiranjanraj/boutique/pkg/lock"
	"github.com/shashiranjanraj/boutique/pkg/metrics"
	"github.com/shashiranjanraj/boutique/pkg/middleware"
	"github.com/shashiranjanraj/boutique/pkg/reqid"
	"github.com/shashiranjanraj/boutique/pkg/response"
	"github.com/shashiranjanraj/boutique/pkg/router"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

// Deps are the process-wide resources the kernel builds on. Redis and Pool
// are optional.
type Deps struct {
	Store *database.Store
	Redis *redis.Client
	Pool  *workerpool.Pool
}

type HTTPKernel struct {
	router  *router.Router
	limiter *middleware.Limiter
}

// wire builds the controllers over deps.
func wire(d Deps) routes.Controllers {
	orders := repositories.NewOrderRepository(d.Store.Collection(database.Orders))
	payments := repositories.NewPaymentRepository(d.Store.Collection(database.Payments))
	incomes := repositories.NewIncomeRepository(d.Store.Collection(database.Incomes))
	purchases := repositories.NewMaterialPurchaseRepository(d.Store.Collection(database.MaterialPurchases))
	salaries := repositories.NewSalaryRepository(d.Store.Collection(database.Salaries))
	users := repositories.NewUserRepository(d.Store.Collection(database.Users))

	var locker services.Locker
	if d.Redis != nil {
		locker = lock.NewRedisLocker(d.Redis)
	}

	var linkagePool *workerpool.Pool
	if config.LinkageAsync() {
		linkagePool = d.Pool
	}

	ledger := services.NewLedgerService(orders, payments)

	return routes.Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(users)),
		Orders:    controllers.NewOrderController(services.NewOrderService(orders, locker), ledger, services.NewEffectApplier(payments, linkagePool)),
		Payments:  controllers.NewPaymentController(services.NewPaymentService(payments, orders), ledger),
		Incomes:   controllers.NewIncomeController(services.NewIncomeService(incomes, orders)),
		Purchases: controllers.NewMaterialPurchaseController(services.NewMaterialPurchaseService(purchases)),
		Salaries:  controllers.NewSalaryController(services.NewSalaryService(salaries)),
		Reports:   controllers.NewReportController(services.NewReportService(incomes, payments, purchases, salaries, d.Pool)),
	}
}

// NewHTTPKernel wires the full application. d.Store must be connected.
func NewHTTPKernel(d Deps) *HTTPKernel {
	var counter middleware.Counter
	if d.Redis != nil {
		counter = cache.NewWindowCounter(d.Redis, "ratelimit")
	}
	limiter := middleware.NewLimiter(config.RateLimitPerMinute(), time.Minute, counter)

	r := router.New()

	// Outermost first: metrics see total latency, recovery guards the rest,
	// and the request id exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))
	r.Use(limiter.Middleware)

	mountOperational(r, d)
	routes.RegisterAPI(r, wire(d))

	return &HTTPKernel{router: r, limiter: limiter}
}

func mountOperational(r *router.Router, d Deps) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "Boutique API is running!")
	})
	r.Mount("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", healthHandler(d))
}

// healthHandler answers 200 when Mongo responds and 503 otherwise. Redis is
// reported but never fails the check.
func healthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		body := map[string]string{"mongo": "up", "redis": "disabled"}
		status := http.StatusOK

		if d.Store == nil || d.Store.Ping(ctx) != nil {
			body["mongo"] = "down"
			status = http.StatusServiceUnavailable
		}
		if d.Redis != nil {
			body["redis"] = "up"
			if d.Redis.Ping(ctx).Err() != nil {
				body["redis"] = "down"
			}
		}
		response.Write(w, status, response.Envelope{Status: status, Data: body})
	}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// Close releases the rate limiter's sweeper.
func (k *HTTPKernel) Close() { k.limiter.Close() }

// RouteTable lists the API without connecting to anything.
func RouteTable() []router.RouteInfo {
	r := router.New()
	mountOperational(r, Deps{})
	routes.RegisterAPI(r, routes.Controllers{
		Auth:      &controllers.AuthController{},
		Orders:    &controllers.OrderController{},
		Payments:  &controllers.PaymentController{},
		Incomes:   &controllers.IncomeController{},
		Purchases: &controllers.MaterialPurchaseController{},
		Salaries:  &controllers.SalaryController{},
		Reports:   &controllers.ReportController{},
	})
	return r.Routes()
}
