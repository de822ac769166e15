package main

import (
	"context"
	"log"
	"os"
	"time"

	"tiffin/internal/auth"
	"tiffin/internal/checkout"
	"tiffin/internal/db"
	"tiffin/internal/delivery"
	"tiffin/internal/menu"
	"tiffin/internal/middleware"
	"tiffin/internal/order"
	"tiffin/internal/schedule"
	"tiffin/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"STORE_TIMEZONE",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	storeLocation, err := time.LoadLocation(os.Getenv("STORE_TIMEZONE"))
	if err != nil {
		log.Fatalf("Invalid STORE_TIMEZONE: %v", err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	var receiptArchive order.Archiver
	if os.Getenv("R2_ENDPOINT") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
		receiptArchive = r2Client
	} else {
		log.Println("R2 not configured, receipt archival disabled")
	}

	// ───────────────────────── AUTH ─────────────────────────
	customerRepo := auth.NewPostgresCustomerRepository(pgDB)
	authService := auth.NewService(customerRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("/protected")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"message": "pong"})
			})
		}
	}

	// ───────────────────────── CORE SERVICES ─────────────────────────
	menuRepo := menu.NewPostgresRepository(pgDB)
	menuService := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(menuService)

	scheduleProvider := schedule.NewPostgresProvider(pgDB, storeLocation)
	scheduleService := schedule.NewService(scheduleProvider, scheduleProvider, storeLocation)
	scheduleHandler := schedule.NewHandler(scheduleService)

	quoteProvider := delivery.NewPostgresProvider(pgDB)

	orderRepo := order.NewPostgresRepository(pgDB)
	orderService := order.NewService(orderRepo, receiptArchive)

	// ───────────────────────── CHECKOUT ─────────────────────────
	sessionStore := checkout.NewStore()
	checkoutHandler := checkout.NewHandler(
		sessionStore,
		menuService,
		scheduleService,
		quoteProvider,
		orderService,
		authService,
	)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	r.GET("/menu", menuHandler.GetMenu)
	r.GET("/menu/items/:id", menuHandler.GetItem)
	r.GET("/slots", scheduleHandler.GetSlots)

	// ───────────────────────── CHECKOUT ROUTES ─────────────────────────
	sessions := r.Group("/checkout/sessions")
	sessions.Use(middleware.OptionalAuth())
	{
		sessions.POST("", checkoutHandler.CreateSession)
		sessions.GET("/:id", checkoutHandler.GetSession)

		sessions.POST("/:id/items", checkoutHandler.AddItem)
		sessions.PATCH("/:id/items/:index", checkoutHandler.SetItemQuantity)
		sessions.DELETE("/:id/items/:index", checkoutHandler.RemoveItem)

		sessions.PUT("/:id/mode", checkoutHandler.SetMode)
		sessions.PUT("/:id/slot", checkoutHandler.SetSlot)
		sessions.PUT("/:id/account", checkoutHandler.SetAccountType)
		sessions.PUT("/:id/contact", checkoutHandler.UpdateContact)

		sessions.POST("/:id/quote", checkoutHandler.RequestQuote)
		sessions.POST("/:id/submit", checkoutHandler.Submit)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("API running at http://localhost:8000")
	r.Run(":8000")
}
