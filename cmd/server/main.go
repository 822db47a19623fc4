package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"founderhub/internal/config"
	"founderhub/internal/handler"
	"founderhub/internal/middleware"
	"founderhub/internal/repository"
	"founderhub/internal/service"
	"founderhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Credential Store ---
	var userRepo repository.UserRepository
	healthCheck := func(context.Context) error { return nil }

	switch appCfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Println("WARN: using in-memory user store, accounts are lost on restart")
		userRepo = repository.NewMemoryUserRepository()
	default:
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			log.Fatalf("Failed to load DB config: %v", err)
		}
		dbPool, err := config.ConnectDB(dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		if err := config.AutoMigrate(dbPool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		userRepo = repository.NewUserRepository(dbPool)
		healthCheck = dbPool.Ping
	}

	ideaCatalog, err := repository.LoadIdeaCatalog(appCfg.IdeasCatalogPath)
	if err != nil {
		log.Fatalf("Failed to load idea catalog: %v", err)
	}

	// --- Login throttling (optional) ---
	var loginLimiter middleware.RateLimiter
	if appCfg.RedisURL != "" {
		rl, err := middleware.NewRedisRateLimiter(appCfg.RedisURL, appCfg.LoginRateLimit, appCfg.LoginRateWindow)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rl.Close()
		loginLimiter = rl
		log.Printf("Login rate limit: %d attempts per %v", appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	}

	// --- Initialize Utilities ---
	sessionTokens := utils.NewSessionTokens(appCfg.JWTSecret, appCfg.SessionTTL)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, sessionTokens, appCfg.BcryptCost)
	ideationService := service.NewIdeationService(ideaCatalog)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	ideationHandler := handler.NewIdeationHandler(ideationService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	if err := middleware.TrustProxies(router, appCfg.TrustedProxies); err != nil {
		log.Fatalf("Failed to configure proxies: %v", err)
	}
	router.Use(middleware.CORS(appCfg.CORSAllowedOrigin))
	router.Use(middleware.Timeout(appCfg.RequestTimeout))

	// --- Register Routes ---
	root := &router.RouterGroup
	authHandler.RegisterAuthRoutes(root, middleware.RequireSession(sessionTokens), middleware.RateLimit(loginLimiter, "login"))
	ideationHandler.RegisterIdeationRoutes(root)

	router.GET("/health", func(c *gin.Context) {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + appCfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", appCfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
