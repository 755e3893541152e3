package http

import (
	"net/http"
	"time"

	"offer-marketplace/internal/adapter/middleware"
	"offer-marketplace/internal/authz"
	"offer-marketplace/internal/features"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Router bundles what RegisterRoutes needs.
type Router struct {
	Health      *Handler
	Offers      *OfferHandler
	Investments *InvestmentHandler
	Auth        *AuthHandler
	Users       *UserHandler

	Tokens            middleware.TokenVerifier
	Redis             *redis.Client
	IdempotencyTTL    time.Duration
	Flags             features.Flags
	AuthRatePerMinute int
	Metrics           http.Handler
	HTTPMetrics       *middleware.Metrics
	Log               logrus.FieldLogger
}

// NewServer builds the echo instance with the shared middleware chain and
// every route registered.
func NewServer(r Router) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(r.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(r.Log))
	if r.HTTPMetrics != nil {
		e.Use(r.HTTPMetrics.Middleware())
	}
	e.Use(echomw.BodyLimit("1M"))

	RegisterRoutes(e, r)
	return e
}

func RegisterRoutes(e *echo.Echo, r Router) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")
	authn := middleware.Authenticate(r.Tokens)
	admin := middleware.Require(authz.IsAdmin)
	idem := middleware.Idempotency(r.Redis, r.IdempotencyTTL, r.Log)

	a := api.Group("/auth")
	limited := middleware.RateLimit(r.AuthRatePerMinute)
	a.POST("/register", r.Auth.Register, limited, middleware.RequireFeature(r.Flags, features.Registration))
	a.POST("/login", r.Auth.Login, limited)
	a.POST("/logout", r.Auth.Logout, authn)
	a.POST("/change-password", r.Auth.ChangePassword, authn, limited)
	a.GET("/me", r.Auth.Me, authn)
	a.GET("/access", r.Auth.Access, middleware.OptionalAuth(r.Tokens))

	o := api.Group("/offers", middleware.RequireFeature(r.Flags, features.Offers), authn)
	o.POST("", r.Offers.Create, middleware.Require(authz.CanCreateOffer), idem)
	o.GET("", r.Offers.List, admin)
	o.GET("/available", r.Offers.ListAvailable)
	o.GET("/:id", r.Offers.Get)
	o.PUT("/:id", r.Offers.Update, admin)
	o.PUT("/:id/status", r.Offers.UpdateStatus, admin)

	i := api.Group("/investments", middleware.RequireFeature(r.Flags, features.Investments), authn)
	i.POST("", r.Investments.Create, middleware.Require(authz.CanInvest), idem)
	i.GET("", r.Investments.List)
	i.GET("/investor", r.Investments.ListMine)
	i.GET("/admin", r.Investments.ListAdmin, admin)
	i.GET("/:id", r.Investments.Get)
	i.PUT("/:id", r.Investments.UpdateStatus, middleware.Require(authz.CanManageInvestments))
	i.PUT("/:id/cancel", r.Investments.Cancel)

	api.GET("/users", r.Users.List, authn, admin)
}
