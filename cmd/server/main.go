package main

import (
	"log"
	"os"
	"time"

	"shop-service/internal/cache"
	"shop-service/internal/config"
	httpctl "shop-service/internal/controllers/http"
	"shop-service/internal/controllers/http/middleware"
	"shop-service/internal/infra/mysql"
	"shop-service/internal/infra/payment"
	"shop-service/internal/infra/rabbitmq"
	"shop-service/internal/logging"
	"shop-service/internal/notify"
	mysqlrepo "shop-service/internal/repository/mysql"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load(os.Getenv("SHOP_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	db, err := mysql.New(cfg.MySQL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	reviewRepo := mysqlrepo.NewReviewRepository(db)

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	}

	var gateway payment.Gateway
	if cfg.GatewayConfigured() {
		gateway = payment.NewStripeGateway(cfg.Stripe.SecretKey)
	} else {
		logger.Warn("stripe secret key absent, running checkout in offline mode")
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.Rabbit.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	notifier := notify.NewNotifier(
		notify.NewChatTransport(cfg.Slack),
		mailerOrNil(cfg),
	)

	orders := services.NewOrderService(orderRepo, gateway, cfg.Stripe.Currency, notifier, publisher)
	if rdb != nil {
		orders.SetCheckoutLock(cache.NewRedisCheckoutLock(rdb, 30*time.Second))
	}
	carts := services.NewCartService(cartRepo, cache.NewProductCache(productRepo, rdb))
	catalog := services.NewCatalogService(productRepo, reviewRepo)

	handler := httpctl.NewHandler(orders, carts, catalog)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Prometheus())

	handler.RegisterRoutes(r, middleware.Auth(cfg.Security.JWTSecret))

	logger.Info("starting shop service", "addr", cfg.App.HTTPAddr)
	if err := r.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

// mailerOrNil avoids storing a typed nil *SMTPMailer in the Mailer interface.
func mailerOrNil(cfg config.Config) notify.Mailer {
	if m := notify.NewSMTPMailer(cfg.SMTP); m != nil {
		return m
	}
	return nil
}
