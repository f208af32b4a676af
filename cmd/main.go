package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sufiansar/GloryShoppingBackend/internal/api"
	"github.com/sufiansar/GloryShoppingBackend/internal/cache"
	"github.com/sufiansar/GloryShoppingBackend/internal/config"
	"github.com/sufiansar/GloryShoppingBackend/internal/consumer"
	"github.com/sufiansar/GloryShoppingBackend/internal/notify"
	"github.com/sufiansar/GloryShoppingBackend/internal/repository"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
	"github.com/sufiansar/GloryShoppingBackend/migrations"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				logger.Info().Msg("connected to database")
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("database not ready, retrying")
		time.Sleep(3 * time.Second)
	}
	return nil, err
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migrations.AutoMigrate(db, 5); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	store := cache.NewStore(rdb)

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, config.OrderTopic)
	defer kafkaWriter.Close()
	notifier := notify.NewKafkaNotifier(kafkaWriter)

	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	userService := service.NewUserService(userRepo, store, cfg.JWTSecret)
	brandService := service.NewBrandService(brandRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, brandRepo, categoryRepo)
	variantService := service.NewVariantService(variantRepo, productRepo, store)
	cartService := service.NewCartService(cartRepo, variantRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, variantRepo, productRepo, store, notifier)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	sectionService := service.NewSectionService(sectionRepo)
	statsService := service.NewStatsService(statsRepo)

	kafkaReader := config.NewKafkaReader(cfg.KafkaBrokers, config.OrderTopic, "stock-worker")
	defer kafkaReader.Close()
	stockConsumer := consumer.NewStockConsumer(kafkaReader, variantRepo, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := stockConsumer.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("stock consumer stopped")
		}
	}()

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     50,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	api.Register(e, api.Handlers{
		Users:      api.NewUserHandler(userService),
		Products:   api.NewProductHandler(productService, reviewService),
		Variants:   api.NewVariantHandler(variantService),
		Brands:     api.NewBrandHandler(brandService),
		Categories: api.NewCategoryHandler(categoryService),
		Reviews:    api.NewReviewHandler(reviewService),
		Sections:   api.NewSectionHandler(sectionService),
		Carts:      api.NewCartHandler(cartService),
		Orders:     api.NewOrderHandler(orderService),
		Stats:      api.NewStatsHandler(statsService),
	}, cfg.JWTSecret)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
