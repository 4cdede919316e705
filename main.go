package main

import (
	"log"
	"time"

	"learnhub/config"
	controllers "learnhub/controllers/course"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/repositories"
	"learnhub/routers/courseRoutes"
	"learnhub/services/catalog"
	"learnhub/services/enrollment"
	"learnhub/services/events"
	"learnhub/services/metrics"
	"learnhub/services/notifications"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	cfg := config.AppConfig
	db := database.Database.Db

	var (
		cat   catalog.Catalog
		ident catalog.Identity
	)
	if cfg.CatalogURL != "" {
		remote := catalog.NewRemote(cfg.CatalogURL)
		cat, ident = remote, remote
		log.Printf("Using remote catalog at %s", cfg.CatalogURL)
	} else {
		local := catalog.NewDB(db)
		cat, ident = local, local
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if kp, ok := publisher.(*events.KafkaPublisher); ok {
		defer kp.Close()
		log.Printf("Publishing enrollment events to topic %s", cfg.KafkaTopic)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	svc := enrollment.NewService(
		repositories.NewCartRepository(db),
		repositories.NewEnrollmentRepository(db),
		repositories.NewProgressRepository(db),
		repositories.NewOrderRepository(db),
		cat,
		ident,
		enrollment.Options{
			Events:           publisher,
			Notifier:         notifications.NewEmailNotifier(utils.NewMailer(cfg.SendgridAPIKey, cfg.EmailSender), ident),
			Metrics:          m,
			FallbackWorkload: cfg.CertificateFallbackWorkload,
		},
	)
	ec := controllers.NewEnrollmentController(svc)

	var counter middleware.Counter
	if cfg.RedisAddr != "" {
		counter = middleware.NewRedisCounter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		log.Println("Warning: REDIS_ADDR not set. Certificate lookups are not rate limited.")
	}

	scheduler, err := utils.InitializeCartReminderScheduler(
		cfg.CartReminderCron, svc, time.Duration(cfg.CartReminderHours)*time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to start cart reminder scheduler: %v", err)
	}
	defer scheduler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))
	app.Use(middleware.Metrics(m))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	courseRoutes.SetupEnrollmentRoutes(app, ec, courseRoutes.VerifyLimit{
		Limiter:  middleware.NewRateLimiter(counter),
		Requests: cfg.VerifyRateLimit,
		Window:   time.Duration(cfg.VerifyRateWindowSeconds) * time.Second,
	})
	courseRoutes.SetupAdminRoutes(app, ec)

	log.Printf("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
