package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/config"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/dynamo"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/google"
	jwtinfra "github.com/codeedexprojects/poky-backend/internal/infrastructure/jwt"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/memstore"
	redisstore "github.com/codeedexprojects/poky-backend/internal/infrastructure/redis"
	s3infra "github.com/codeedexprojects/poky-backend/internal/infrastructure/s3"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/smtp"
	transporthttp "github.com/codeedexprojects/poky-backend/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Registration sessions live in Redis when configured, otherwise in an
	// in-process TTL store.
	var sessionStore transporthttp.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := redisstore.NewClient(cfg)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		sessionStore = redisstore.NewRegistrationStore(redisClient)
	} else {
		log.Println("REDIS_URL not set, using in-process session store")
		sessionStore = memstore.NewRegistrationStore()
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName, cfg.AWSRegion)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// Google ID token verifier (optional).
	var googleVerifier *google.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = google.NewVerifier(cfg.GoogleClientID)
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, Google login disabled")
	}

	deps := &transporthttp.Deps{
		UserRepo:        dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		CouponRepo:      dynamo.NewCouponRepo(dynamoClient, cfg.DynamoTables.Coupons),
		CategoryRepo:    dynamo.NewCategoryRepo(dynamoClient, cfg.DynamoTables.Categories),
		SubCategoryRepo: dynamo.NewSubCategoryRepo(dynamoClient, cfg.DynamoTables.SubCategories),
		ProductRepo:     dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products),
		SliderRepo:      dynamo.NewSliderRepo(dynamoClient, cfg.DynamoTables.Sliders),
		ReviewRepo:      dynamo.NewReviewRepo(dynamoClient, cfg.DynamoTables.Reviews),
		WishlistRepo:    dynamo.NewWishlistRepo(dynamoClient, cfg.DynamoTables.Wishlists),
		OrderRepo:       dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		SessionStore:    sessionStore,
		S3Store:         s3Store,
		Mailer:          mailer,
		GoogleVerifier:  googleVerifier,
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
