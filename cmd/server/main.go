package main

import (
	"log"
	"strconv"

	"crickpick/config"
	"crickpick/db"
	"crickpick/middlewares"
	"crickpick/routes"
	"crickpick/services"
	"crickpick/utils"
	"crickpick/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis backs the per-match evaluation lease
	if err := services.InitMatchLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Seed the default question catalog on first boot
	utils.SeedDefaultQuestions()

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Configure CORS for your frontend (e.g., localhost:5173 for Vite)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/verifyEmail", routes.VerifyEmailRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.POST("/forgotPassword", routes.ForgotPasswordRouteHandler)
	router.POST("/confirmForgotPassword", routes.VerifyForgotPasswordRouteHandler)
	router.POST("/verifyToken", routes.VerifyTokenRouteHandler)

	// Live leaderboard feed; authenticates via token query param or header
	router.GET("/ws/leaderboard", websocket.LeaderboardHandler)

	// Protected routes (token auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)

		auth.GET("/questions", routes.ListQuestionsRouteHandler)
		auth.POST("/predictions", routes.SubmitPredictionRouteHandler)
		auth.GET("/predictions", routes.GetMyPredictionsRouteHandler)

		auth.GET("/leaderboard/global", routes.GetGlobalLeaderboardRouteHandler)
		auth.GET("/leaderboard/weekly", routes.GetWeeklyLeaderboardRouteHandler)
		auth.GET("/leaderboard/match/:matchId", routes.GetMatchLeaderboardRouteHandler)
	}

	// Admin routes (JWT + RBAC)
	routes.SetupAdminRoutes(router)

	return router
}
