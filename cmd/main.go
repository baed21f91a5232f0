package main

import (
	"log"
	"strings"

	"github.com/arzan03/BloodAid/internal/config"
	"github.com/arzan03/BloodAid/internal/db"
	"github.com/arzan03/BloodAid/internal/handlers"
	"github.com/arzan03/BloodAid/internal/middleware"
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/arzan03/BloodAid/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	// Initialize MinIO
	storage.InitMinio(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey)

	// Connect to MongoDB and bind the services to it
	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.DBName)
	services.InitAuthService(cfg.JWTSecret)
	services.InitUserService(mongoDB)
	services.InitRequestService(mongoDB)
	services.InitFundingService(mongoDB, cfg.StripeSecretKey)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Blood Donation Server Running ✅")
	})

	// Auth
	app.Post("/api/auth/jwt", handlers.IssueToken)

	// Users
	app.Post("/api/users", handlers.RegisterUser)
	app.Get("/api/donors/search", handlers.SearchDonors)
	app.Get("/api/users/me", middleware.AuthMiddleware, handlers.GetMe)
	app.Patch("/api/users/me", middleware.AuthMiddleware, handlers.UpdateMe)
	app.Post("/api/users/me/avatar", middleware.AuthMiddleware, handlers.UploadAvatar)
	app.Get("/api/users", middleware.AuthMiddleware, middleware.AdminOnly, handlers.ListUsers)
	app.Patch("/api/users/:id/status", middleware.AuthMiddleware, middleware.AdminOnly, handlers.UpdateUserStatus)
	app.Patch("/api/users/:id/role", middleware.AuthMiddleware, middleware.AdminOnly, handlers.UpdateUserRole)

	// Donation requests
	app.Post("/api/requests", middleware.AuthMiddleware, middleware.ActiveUserOnly, handlers.CreateRequest)
	app.Get("/api/requests/public", handlers.ListPublicRequests)
	app.Get("/api/requests", middleware.AuthMiddleware, handlers.ListRequests)
	app.Get("/api/requests/:id", middleware.AuthMiddleware, handlers.GetRequest)
	app.Patch("/api/requests/:id", middleware.AuthMiddleware, handlers.UpdateRequest)
	app.Delete("/api/requests/:id", middleware.AuthMiddleware, handlers.DeleteRequest)
	app.Patch("/api/requests/:id/confirm-donate", middleware.AuthMiddleware, handlers.ConfirmDonate)
	app.Patch("/api/requests/:id/status", middleware.AuthMiddleware, handlers.UpdateRequestStatus)

	// Fundings
	app.Post("/api/fundings/payment-intent", middleware.AuthMiddleware, handlers.CreatePaymentIntent)
	app.Post("/api/fundings", middleware.AuthMiddleware, handlers.CreateFunding)
	app.Get("/api/fundings", middleware.AuthMiddleware, handlers.ListFundings)
	app.Get("/api/fundings/total", middleware.AuthMiddleware, middleware.VolunteerOrAdmin, handlers.FundingTotal)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
