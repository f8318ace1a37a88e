package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/tanvirhossain/contesthub/internal/config"
	"github.com/tanvirhossain/contesthub/internal/db"
	"github.com/tanvirhossain/contesthub/internal/handlers"
	"github.com/tanvirhossain/contesthub/internal/httperr"
	"github.com/tanvirhossain/contesthub/internal/middleware"
	"github.com/tanvirhossain/contesthub/internal/models"
	"github.com/tanvirhossain/contesthub/internal/services"
	"github.com/tanvirhossain/contesthub/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}
	cfg := config.Load()

	database, err := db.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	images, err := storage.NewImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("MinIO connection failed: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	users := services.NewUserService(database, cfg.QueryTimeout)
	contests := services.NewContestService(database, cfg.QueryTimeout)
	payments := services.NewPaymentService(database, cfg.StripeSecretKey, cfg.QueryTimeout)

	auth := middleware.NewAuth(tokens, users)

	authHandler := handlers.NewAuthHandler(tokens)
	userHandler := handlers.NewUserHandler(users)
	contestHandler := handlers.NewContestHandler(contests, images)
	paymentHandler := handlers.NewPaymentHandler(payments)

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		UnescapePath: true,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	// Auth Routes
	authGroup := app.Group("/auth")
	authGroup.Post("/jwt", authHandler.CreateToken)
	authGroup.Get("/logout", authHandler.Logout)

	// User Routes
	userGroup := app.Group("/users")
	userGroup.Get("/", auth.RequireRoles(models.RoleAdmin), userHandler.List)
	userGroup.Get("/:email", userHandler.GetByEmail)
	userGroup.Post("/:email", userHandler.CreateOrGet)
	userGroup.Patch("/:id", auth.RequireRoles(models.RoleAdmin), userHandler.Update)

	// Contest Routes. Static paths register before /:id so fiber does not
	// swallow them as contest IDs.
	contestGroup := app.Group("/contests")
	contestGroup.Get("/", contestHandler.List)
	contestGroup.Post("/", auth.RequireRoles(models.RoleCreator), contestHandler.Create)
	contestGroup.Get("/popular", contestHandler.Popular)
	contestGroup.Get("/admin", auth.RequireRoles(models.RoleAdmin), contestHandler.ListAll)
	contestGroup.Get("/creator/:contestId/:creatorId",
		auth.RequireRoles(models.RoleAdmin, models.RoleCreator), contestHandler.ForCreator)
	contestGroup.Get("/:id", contestHandler.GetByID)

	// Payment Routes
	app.Post("/payments/intent", auth.Authenticated, paymentHandler.CreateIntent)

	log.Fatal(app.Listen(":" + cfg.Port))
}
