package http

import (
	"context"
	"net/http"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/application/category"
	"github.com/codeedexprojects/poky-backend/internal/application/product"
	"github.com/codeedexprojects/poky-backend/internal/application/registration"
	"github.com/codeedexprojects/poky-backend/internal/application/review"
	"github.com/codeedexprojects/poky-backend/internal/application/session"
	"github.com/codeedexprojects/poky-backend/internal/application/slider"
	"github.com/codeedexprojects/poky-backend/internal/application/subcategory"
	"github.com/codeedexprojects/poky-backend/internal/application/wishlist"
	"github.com/codeedexprojects/poky-backend/internal/config"
	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/dynamo"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/google"
	jwtinfra "github.com/codeedexprojects/poky-backend/internal/infrastructure/jwt"
	s3infra "github.com/codeedexprojects/poky-backend/internal/infrastructure/s3"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/smtp"
	"github.com/codeedexprojects/poky-backend/internal/transport/http/handler"
	appmiddleware "github.com/codeedexprojects/poky-backend/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// SessionStore is the registration/reset session backend: Redis in
// production, the in-process store otherwise.
type SessionStore interface {
	PutPending(ctx context.Context, p *domain.PendingRegistration, ttl time.Duration) error
	GetPending(ctx context.Context, email string) (*domain.PendingRegistration, error)
	DeletePending(ctx context.Context, email string) (bool, error)
	PutReset(ctx context.Context, r *domain.PasswordResetSession, ttl time.Duration) error
	GetReset(ctx context.Context, email string) (*domain.PasswordResetSession, error)
	DeleteReset(ctx context.Context, email string) (bool, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        *dynamo.UserRepo
	CouponRepo      *dynamo.CouponRepo
	CategoryRepo    *dynamo.CategoryRepo
	SubCategoryRepo *dynamo.SubCategoryRepo
	ProductRepo     *dynamo.ProductRepo
	SliderRepo      *dynamo.SliderRepo
	ReviewRepo      *dynamo.ReviewRepo
	WishlistRepo    *dynamo.WishlistRepo
	OrderRepo       *dynamo.OrderRepo
	SessionStore    SessionStore
	S3Store         *s3infra.Store
	Mailer          smtp.Mailer
	GoogleVerifier  *google.Verifier
	JWTProvider     *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw, optionalAuthMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
		optionalAuthMw = appmiddleware.OptionalAuth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
		optionalAuthMw = authMw
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	registrationDeps := registration.ServiceDeps{
		UserRepo:     deps.UserRepo,
		SessionStore: deps.SessionStore,
		CouponRepo:   deps.CouponRepo,
		Mailer:       deps.Mailer,
		SessionTTL:   cfg.RegistrationTTL,
	}
	sessionDeps := session.ServiceDeps{
		UserRepo:   deps.UserRepo,
		CouponRepo: deps.CouponRepo,
	}
	if deps.JWTProvider != nil {
		registrationDeps.Tokens = deps.JWTProvider
		sessionDeps.Tokens = deps.JWTProvider
	}
	if deps.GoogleVerifier != nil {
		sessionDeps.Google = deps.GoogleVerifier
	}
	registrationSvc := registration.NewService(registrationDeps)
	sessionSvc := session.NewService(sessionDeps)
	categorySvc := category.NewService(category.ServiceDeps{
		CategoryRepo: deps.CategoryRepo,
		Images:       deps.S3Store,
	})
	subcategorySvc := subcategory.NewService(subcategory.ServiceDeps{
		SubCategoryRepo: deps.SubCategoryRepo,
		CategoryRepo:    deps.CategoryRepo,
		Images:          deps.S3Store,
	})
	productSvc := product.NewService(product.ServiceDeps{
		ProductRepo:  deps.ProductRepo,
		ReviewRepo:   deps.ReviewRepo,
		WishlistRepo: deps.WishlistRepo,
		Images:       deps.S3Store,
	})
	sliderSvc := slider.NewService(slider.ServiceDeps{
		SliderRepo: deps.SliderRepo,
		Images:     deps.S3Store,
	})
	reviewSvc := review.NewService(review.ServiceDeps{
		ReviewRepo:  deps.ReviewRepo,
		ProductRepo: deps.ProductRepo,
		UserRepo:    deps.UserRepo,
		OrderRepo:   deps.OrderRepo,
		Images:      deps.S3Store,
	})
	wishlistSvc := wishlist.NewService(wishlist.ServiceDeps{
		WishlistRepo: deps.WishlistRepo,
		ProductRepo:  deps.ProductRepo,
	})

	healthH := handler.NewHealthHandler()
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	subcategoryH := handler.NewSubCategoryHandler(subcategorySvc)
	productH := handler.NewProductHandler(productSvc)
	sliderH := handler.NewSliderHandler(sliderSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	wishlistH := handler.NewWishlistHandler(wishlistSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/users/register", registrationH.Register)
		r.With(sensitiveRL.Limit).Post("/users/verify-otp", registrationH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/users/resend-otp", registrationH.ResendOTP)
		r.With(sensitiveRL.Limit).Post("/users/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/users/google", sessionH.GoogleLogin)
		r.With(sensitiveRL.Limit).Post("/password-recovery/{action}", registrationH.PasswordRecovery)

		// Catalog reads are public; a Bearer token personalizes wishlist flags.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMw)

			r.Get("/categories", categoryH.List)
			r.Get("/categories/{id}", categoryH.Get)
			r.Get("/categories/{categoryID}/subcategories", subcategoryH.ListByCategory)
			r.Get("/categories/{categoryID}/products", productH.ListByCategory)
			r.Get("/categories/{categoryID}/subcategories/{subCategoryID}/products", productH.ListBySubCategory)
			r.Get("/subcategories", subcategoryH.List)
			r.Get("/subcategories/{id}", subcategoryH.Get)
			r.Get("/products", productH.List)
			r.Get("/products/search", productH.Search)
			r.Get("/products/{id}", productH.Get)
			r.Get("/products/{id}/similar", productH.Similar)
			r.Get("/products/{id}/reviews", reviewH.ListByProduct)
			r.Get("/sliders", sliderH.List)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/profile", sessionH.Profile)
			r.Get("/users/coupons", sessionH.Coupons)
			r.Post("/users/change-password", sessionH.ChangePassword)

			r.Get("/wishlist", wishlistH.List)
			r.Post("/wishlist", wishlistH.Add)
			r.Delete("/wishlist/{productID}", wishlistH.Remove)

			r.Post("/reviews", reviewH.Add)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/categories", categoryH.Create)
				r.Put("/categories/{id}", categoryH.Update)
				r.Delete("/categories/{id}", categoryH.Delete)

				r.Post("/subcategories", subcategoryH.Create)
				r.Put("/subcategories/{id}", subcategoryH.Update)
				r.Delete("/subcategories/{id}", subcategoryH.Delete)

				r.Post("/products", productH.Create)
				r.Put("/products/{id}", productH.Update)
				r.Delete("/products/{id}", productH.Delete)

				r.Post("/sliders", sliderH.Create)
				r.Put("/sliders/{id}", sliderH.Update)
				r.Delete("/sliders/{id}", sliderH.Delete)
			})
		})
	})

	return r
}
