package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-marketplace/config"
	"talent-marketplace/database"
	adminapi "talent-marketplace/internal/api/admin"
	authapi "talent-marketplace/internal/api/auth"
	bandsapi "talent-marketplace/internal/api/bands"
	"talent-marketplace/internal/api/billing"
	listingsapi "talent-marketplace/internal/api/listings"
	mediaapi "talent-marketplace/internal/api/media"
	"talent-marketplace/internal/api/plans"
	profilesapi "talent-marketplace/internal/api/profiles"
	stripewebhooks "talent-marketplace/internal/api/stripewebhook"
	usersapi "talent-marketplace/internal/api/users"
	routes "talent-marketplace/internal/app/http"
	"talent-marketplace/internal/app/http/middleware"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/domain/scoring"
	"talent-marketplace/internal/infra/cache"
	"talent-marketplace/internal/infra/geo"
	"talent-marketplace/internal/infra/mailer"
	"talent-marketplace/internal/infra/postgres"
	"talent-marketplace/internal/infra/storage"
	"talent-marketplace/internal/logger"
	"talent-marketplace/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

const (
	mailWorkers = 4
	mailBuffer  = 256
	tokenTTL    = 24 * time.Hour
)

func main() {
	config.LoadEnv()
	if err := logger.Init(!config.IsProduction(), logger.LogLevel(config.LOG_LEVEL)); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB(config.DB_URL)
	db := database.DB

	if err := validation.RegisterWithGin(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	stripe.Key = config.STRIPE_SECRET_KEY

	ctx := context.Background()

	var scoreCache scoring.Cache
	if config.REDIS_URL != "" {
		rc, err := cache.NewRedis(ctx, config.REDIS_URL)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		scoreCache = rc
	} else {
		log.Warn("REDIS_URL not set, profile scores are not cached")
	}

	objects, err := storage.NewS3(ctx, storage.Options{
		Endpoint:  config.S3_ENDPOINT,
		Region:    config.S3_REGION,
		Bucket:    config.S3_BUCKET,
		AccessKey: config.S3_ACCESS_KEY,
		SecretKey: config.S3_SECRET_KEY,
		PublicURL: config.S3_PUBLIC_URL,
	})
	if err != nil {
		log.Fatal("Failed to configure object storage", zap.Error(err))
	}

	var sender mailing.Sender = mailer.Log{}
	if config.SMTP_HOST != "" {
		sender = mailer.NewSMTP(config.SMTP_HOST, config.SMTP_PORT, config.SMTP_USERNAME, config.SMTP_PASSWORD, config.SMTP_FROM)
	} else {
		log.Warn("SMTP_HOST not set, emails are only logged")
	}
	dispatcher := mailing.NewDispatcher(sender, mailWorkers, mailBuffer)
	dispatcher.Start()
	defer dispatcher.Stop()
	mail := mailing.NewService(postgres.NewMailingStore(db), dispatcher)

	var locator restrictions.GeoLocator
	if config.GEOIP_DB_PATH != "" {
		g, err := geo.Open(config.GEOIP_DB_PATH)
		if err != nil {
			log.Fatal("Failed to open GeoIP database", zap.Error(err))
		}
		defer g.Close()
		locator = g
	}

	scores := scoring.NewService(postgres.NewScoreLoader(db), scoreCache, config.SCORE_CACHE_TTL)
	userStore := postgres.NewUserStore(db)
	subs := postgres.NewSubscriptions(db, scores)
	gate := access.NewGate(subs)
	bandStore := postgres.NewBandStore(db)
	restrictionStore := postgres.NewRestrictionStore(db)
	countries := restrictions.NewGate(
		restrictionStore,
		restrictions.NewResolver(locator, config.DEFAULT_COUNTRY),
		restrictions.ParseList(config.RESTRICTED_COUNTRIES),
		subs,
	)

	handlers := routes.Handlers{
		Auth: &authapi.Handler{
			DB:     db,
			Mail:   mail,
			Google: authapi.GoogleOAuthConfig(config.GOOGLE_CLIENT_ID, config.GOOGLE_CLIENT_SECRET, config.GOOGLE_REDIRECT_URL),
			Cfg: authapi.Config{
				JWTSecret:              config.JWT_SECRET,
				TokenTTL:               tokenTTL,
				AppURL:                 config.APP_URL,
				APIURL:                 config.API_URL,
				GoogleClientID:         config.GOOGLE_CLIENT_ID,
				GoogleFrontendRedirect: config.GOOGLE_FRONTEND_REDIRECT,
				SecureCookies:          config.IsProduction(),
			},
		},
		Users: &usersapi.Handler{
			DB: db, Users: userStore, Subs: subs, Bands: bandStore,
			Access: gate, Scores: scores, AppURL: config.APP_URL,
		},
		Profiles: &profilesapi.Handler{
			DB: db, Users: userStore, Loader: postgres.NewScoreLoader(db),
			Scores: scores, AppURL: config.APP_URL,
		},
		Media: &mediaapi.Handler{
			DB: db, Users: userStore, Bands: bandStore, Storage: objects, Scores: scores,
		},
		Listings: &listingsapi.Handler{DB: db, Users: userStore, Access: gate, Scores: scores},
		Bands: &bandsapi.Handler{
			Service: bands.NewService(bandStore, subs, scores),
			Store:   bandStore,
			Users:   userStore,
			Scores:  scores,
		},
		Billing: &billing.Handler{
			DB: db, Users: userStore, Subs: subs, Countries: countries,
			Access: gate, AppURL: config.APP_URL, AppEnv: config.APP_ENV,
		},
		Plans:   &plans.Handler{DB: db, ProductIDs: plans.ParseProductIDs(config.STRIPE_PRODUCT_IDS)},
		Webhook: &stripewebhooks.Handler{DB: db, Subs: subs, Secret: config.STRIPE_WEBHOOK_SECRET},
		Admin: &adminapi.Handler{
			DB: db, Subs: subs, Countries: countries, Pending: restrictionStore,
			Mail: mail, Scores: scores,
		},
		LoadUser: userStore.Get,
		Gate:     gate,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
