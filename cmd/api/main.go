package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-isitvegan-api/internal/config"
	"go-isitvegan-api/internal/handler"
	"go-isitvegan-api/internal/middleware"
	"go-isitvegan-api/internal/model"
	"go-isitvegan-api/internal/recognition"
	"go-isitvegan-api/internal/repository"
	"go-isitvegan-api/internal/service"
	"go-isitvegan-api/internal/storage"
	"go-isitvegan-api/internal/ws"
	"go-isitvegan-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DSN())
	db.AutoMigrate(&model.Product{}, &model.Ingredient{}, &model.ActionLog{}, &model.User{})

	// 3. Seed default editor account (no-op when unset or already present)
	seedDefaultEditor(db)

	// 4. Setup WebSocket Hub (live catalog change feed)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	actionLogRepo := repository.NewActionLogRepo(db)
	userRepo := repository.NewUserRepo(db)

	storageClient := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)
	recognitionClient := recognition.NewClient(cfg.RecognitionURL, cfg.RecognitionKey)

	catalogService := service.NewCatalogService(
		productRepo, ingredientRepo, actionLogRepo,
		storageClient, recognitionClient, wsHub,
		cfg.SupabaseURL, cfg.SupabaseBucket,
	)
	authService := service.NewAuthService(userRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Is It Vegan API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS: all origins, handles OPTIONS preflight

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/products/update-image", catalogHandler.UpdateProductImage)
	protected.Post("/products/from-photo", catalogHandler.CreateProductFromPhoto)
	protected.Get("/products/:code", catalogHandler.GetProduct)
	protected.Get("/ingredients/:title", catalogHandler.GetIngredient)
	protected.Get("/stats", catalogHandler.GetCatalogStats)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultEditor creates the initial editor account from ADMIN_EMAIL /
// ADMIN_PASSWORD when it does not exist yet.
func seedDefaultEditor(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	editor := &model.User{
		Email:    email,
		FullName: "Catalog Editor",
		IsActive: true,
	}
	if err := editor.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash editor password: %v", err)
		return
	}
	if err := userRepo.Create(editor); err != nil {
		log.Printf("Warning: Failed to create editor account: %v", err)
		return
	}
	log.Printf("Editor account created: %s", email)
}
