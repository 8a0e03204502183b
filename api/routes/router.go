package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gathergraze/snackshop-backend/api/controllers"
	"github.com/gathergraze/snackshop-backend/api/middleware"
	authsvc "github.com/gathergraze/snackshop-backend/internal/auth"
	cartsvc "github.com/gathergraze/snackshop-backend/internal/cart"
	catalogsvc "github.com/gathergraze/snackshop-backend/internal/catalog"
	checkoutsvc "github.com/gathergraze/snackshop-backend/internal/checkout"
	companysvc "github.com/gathergraze/snackshop-backend/internal/companies"
	purchasesvc "github.com/gathergraze/snackshop-backend/internal/purchases"
	"github.com/gathergraze/snackshop-backend/pkg/auth/session"
	"github.com/gathergraze/snackshop-backend/pkg/config"
	"github.com/gathergraze/snackshop-backend/pkg/db"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
	"github.com/gathergraze/snackshop-backend/pkg/redis"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	DB        db.Pinger
	Redis     redis.Pinger
	Sessions  session.AccessSessionChecker
	Auth      authsvc.Service
	Companies companysvc.Service
	Catalog   catalogsvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Purchases purchasesvc.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, svcs.DB, svcs.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, svcs.Sessions, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, svcs.Sessions, logg))

		r.Route("/snacks", func(r chi.Router) {
			r.Get("/", controllers.SnackList(svcs.Catalog, logg))
			r.Get("/{snackId}", controllers.SnackGet(svcs.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Put("/items/{snackId}", controllers.CartSetQuantity(svcs.Cart, logg))
			r.Post("/items/{snackId}/add", controllers.CartAddOne(svcs.Cart, logg))
			r.Post("/items/{snackId}/remove", controllers.CartRemoveOne(svcs.Cart, logg))
		})

		r.Post("/checkout", controllers.CheckoutCommit(svcs.Checkout, svcs.Cart, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", controllers.CompanyList(svcs.Companies, logg))
				r.Post("/", controllers.CompanyCreate(svcs.Companies, logg))
				r.Get("/{companyId}", controllers.CompanyGet(svcs.Companies, logg))
				r.Put("/{companyId}", controllers.CompanyUpdate(svcs.Companies, logg))
				r.Delete("/{companyId}", controllers.CompanyDelete(svcs.Companies, logg))
				r.Post("/{companyId}/snacks", controllers.SnackCreate(svcs.Catalog, logg))
			})

			r.Route("/snacks/{snackId}", func(r chi.Router) {
				r.Put("/", controllers.SnackUpdate(svcs.Catalog, logg))
				r.Delete("/", controllers.SnackDelete(svcs.Catalog, logg))
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", controllers.AdminQueryPurchases(svcs.Purchases, logg))
				r.Get("/export", controllers.AdminExportPurchases(svcs.Purchases, logg))
			})
		})
	})

	return r
}
