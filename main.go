package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Mayur79/ecommercebackend/cache"
	"github.com/Mayur79/ecommercebackend/config"
	"github.com/Mayur79/ecommercebackend/controller"
	"github.com/Mayur79/ecommercebackend/gateway"
	"github.com/Mayur79/ecommercebackend/kafka"
	"github.com/Mayur79/ecommercebackend/middleware"
	"github.com/Mayur79/ecommercebackend/model"
	"github.com/Mayur79/ecommercebackend/routes"
)

func initDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
	); err != nil {
		log.Fatal(err)
	}
	return db
}

func main() {
	cfg := config.Load()
	db := initDB(cfg)

	// Redis and Kafka are optional collaborators: the catalog cache and
	// the event stream. The server runs without either.
	var store *cache.Cache
	if cfg.RedisAddr != "" {
		var err error
		store, err = cache.New(cfg.RedisAddr)
		if err != nil {
			log.Printf("redis unavailable, catalog cache disabled: %v", err)
		}
	}

	var producer *kafka.Producer
	if cfg.KafkaBroker != "" {
		var err error
		producer, err = kafka.NewProducer(cfg.KafkaBroker)
		if err != nil {
			log.Printf("kafka unavailable, events disabled: %v", err)
		}
	}

	gw := gateway.NewBraintree(cfg.Braintree)

	app := fiber.New()
	app.Use(logger.New())

	auth := middleware.AuthRequired(cfg.JWTSecret)
	routes.RegisterAuthRoutes(app, controller.NewAuthController(db, cfg.JWTSecret), auth)
	routes.RegisterCategoryRoutes(app, controller.NewCategoryController(db), auth)
	routes.RegisterProductRoutes(app, controller.NewProductController(db, gw, store, producer), auth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello Everyone")
	})

	log.Println("server running on port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("fiber error: ", err)
	}
}
