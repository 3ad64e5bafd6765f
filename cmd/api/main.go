package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inventory-spa/internal/config"
	"inventory-spa/internal/handler"
	"inventory-spa/internal/middleware"
	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
	"inventory-spa/internal/service"
	"inventory-spa/internal/upload"
	"inventory-spa/internal/view"
	"inventory-spa/internal/ws"
	"inventory-spa/pkg/database"
	"inventory-spa/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.StockItem{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 3. Upload store
	uploads, staticDir, err := newUploadStore(ctx, cfg)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	stockRepo := repository.NewStockRepo(db)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, tokens)
	stockService := service.NewStockService(stockRepo, uploads, wsHub)
	dashService := service.NewDashboardService(stockRepo)
	catalogs := service.NewCatalogs()

	registry := view.NewRegistry()
	view.RegisterControllers(registry, view.Deps{
		Auth:     authService,
		Stock:    service.NewStockGateway(authService, stockService),
		Catalogs: catalogs,
	})
	sessions := session.New(session.Config{
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:inventory_session",
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	authHandler := handler.NewAuthHandler(authService)
	stockHandler := handler.NewStockHandler(stockService)
	dashHandler := handler.NewDashboardHandler(dashService)
	appHandler := handler.NewAppHandler(registry, view.NewTemplateLoader(), sessions)

	go pruneCatalogs(ctx, catalogs, cfg.SessionTTL)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory SPA",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 7. Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is running..."})
	})

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(authService))
	protected.Post("/stock", stockHandler.CreateStock)
	protected.Get("/stock", stockHandler.GetStock)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	if staticDir != "" {
		app.Static(cfg.UploadURLPath, staticDir)
	}

	app.Get("/app", appHandler.Show)
	app.Get("/app/:view", appHandler.Show)
	app.Post("/app/:view", appHandler.Event)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Join(c)
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
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
	cancel()

	log.Println("Server exited")
}

// newUploadStore picks the configured store. staticDir is set only when
// uploads land on local disk and must be served by the app.
func newUploadStore(ctx context.Context, cfg config.Config) (store upload.Store, staticDir string, err error) {
	if cfg.UploadDriver == config.UploadDriverS3 {
		s3Store, err := upload.NewS3Store(ctx, upload.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			Prefix:    strings.Trim(cfg.UploadDir, "/"),
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}
	local, err := upload.NewLocalStore(cfg.UploadDir, cfg.UploadURLPath)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

// pruneCatalogs forgets the products and sales of sessions that expired.
func pruneCatalogs(ctx context.Context, catalogs *service.Catalogs, maxIdle time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := catalogs.Prune(maxIdle); n > 0 {
				log.Printf("Pruned %d idle session catalogs", n)
			}
		}
	}
}
