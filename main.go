package main

import (
	"log"
	"time"

	"market-helper-be/internal/cache"
	"market-helper-be/internal/config"
	"market-helper-be/internal/controllers"
	"market-helper-be/internal/database"
	"market-helper-be/internal/jwt"
	"market-helper-be/internal/mailer"
	"market-helper-be/internal/middleware"
	"market-helper-be/internal/repository"
	"market-helper-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load and validate configuration; a missing signing secret must stop
	// the server instead of signing with an empty key
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	listRepo := repository.NewMarketListRepository(db)

	// Initialize JWT service and mailer
	jwtService := jwt.NewJWTService(cfg.JWTSecret)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	// Initialize services
	sessionService := service.NewSessionService(
		userRepo,
		tokenRepo,
		jwtService,
		mail,
		cacheClient,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		time.Duration(cfg.ResetTokenTTLMinutes)*time.Minute,
		cfg.FrontendURL,
	)
	userService := service.NewUserService(userRepo, tokenRepo, listRepo, cacheClient)
	listService := service.NewMarketListService(listRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(sessionService)
	usersController := controllers.NewUsersController(userService)
	listController := controllers.NewMarketListController(listService)
	qrcodeController := controllers.NewQRCodeController(listService, cfg.FrontendURL)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API v1 routes group
	api := router.Group("/api/v1")
	{
		// Registration and sign-in are the only unauthenticated routes
		api.POST("/users", usersController.Register)
		api.POST("/auth/signin", authController.SignIn)

		// Protected routes - require a valid session token
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(sessionService))
		{
			protected.POST("/auth/signout", authController.SignOut)
			protected.POST("/auth/reset-password", authController.ResetPassword)

			protected.GET("/users", usersController.ListUsers)
			protected.DELETE("/users", usersController.WipeAll)

			protected.POST("/market-list", listController.CreateList)
			protected.GET("/market-list/:listID", listController.GetList)
			protected.PATCH("/market-list/:listID", listController.UpdateList)
			protected.DELETE("/market-list/:listID", listController.DeleteList)

			protected.GET("/market-list/:listID/items", listController.GetListItems)
			protected.POST("/market-list/:listID/items", listController.CreateItem)
			protected.GET("/market-list/:listID/items/:itemID", listController.GetItem)
			protected.DELETE("/market-list/:listID/items/:itemID", listController.DeleteItem)

			protected.GET("/market-list/:listID/qrcode", qrcodeController.GenerateQRCode)
		}
	}

	// Start the server on port 8080
	log.Println("Server starting on http://localhost:8080")
	router.Run(":8080")
}
