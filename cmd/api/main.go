// main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/hammad535/ideogramfire/auth"
	"github.com/hammad535/ideogramfire/generation"
	"github.com/hammad535/ideogramfire/internal/platform"
	"github.com/hammad535/ideogramfire/models"
	"github.com/hammad535/ideogramfire/processing"
)

type Server struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Router     *gin.Engine
	Configured bool
}

func NewServer() (*Server, error) {
	// Use the shared connection initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.GenerationRun{},
		&models.ImageBatch{},
	); err != nil {
		return nil, err
	}

	cfg, cfgErr := platform.LoadGenerationConfig()
	if cfgErr != nil {
		// The API still serves auth and run lookups; generation endpoints
		// answer 503 until the key is configured.
		log.Printf("Generation disabled: %v", cfgErr)
	}

	router := gin.Default()

	// Add database to context middleware
	router.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})

	// CORS for the frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", os.Getenv("FRONTEND_URL"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		DB:         db,
		Redis:      rdb,
		Router:     router,
		Configured: cfgErr == nil,
	}

	llm := processing.NewOpenAICompleter(cfg)
	gen := processing.NewGenerator(llm, processing.WithSanitizer(processing.NewDefaultSanitizer()))
	batcher := processing.NewImageBatcher(llm, processing.NewIdeogramClient(cfg))

	server.setupRoutes(gen, batcher)

	return server, nil
}

// requireGeneration rejects generation requests while the OpenAI key is
// missing instead of letting them fail mid-pipeline.
func (s *Server) requireGeneration() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Configured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation service not configured"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupRoutes(gen *processing.Generator, batcher *processing.ImageBatcher) {
	// Health check (no auth required)
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	authHandler := auth.NewHandler(s.DB)
	genHandler := generation.NewHandler(s.DB, s.Redis, gen, batcher)

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Ideogramfire API v1"})
	})

	// Auth routes (public - no auth middleware)
	authRoutes := s.Router.Group("/auth")
	{
		authRoutes.GET("/google", authHandler.InitiateGoogleLogin)
		authRoutes.GET("/google/callback", authHandler.GoogleCallback)
		authRoutes.POST("/logout", authHandler.Logout)

		// Protected auth route - requires auth middleware
		authRoutes.GET("/me", auth.AuthMiddleware(), authHandler.GetCurrentUser)
	}

	// Protected routes that require authentication
	protected := s.Router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		// Segment generation pipeline
		segmentRoutes := protected.Group("/video-segments")
		{
			segmentRoutes.POST("/generate", s.requireGeneration(), genHandler.GenerateSegments)
			segmentRoutes.POST("/generate-new-cont", s.requireGeneration(), genHandler.GenerateNewContinuity)
			segmentRoutes.POST("/generate-continuation", s.requireGeneration(), genHandler.GenerateContinuation)
			segmentRoutes.POST("/download", genHandler.DownloadSegments)
		}

		// Marketing image batches and exports
		protected.POST("/process", s.requireGeneration(), genHandler.ProcessImageBatch)
		protected.POST("/process/export/csv", genHandler.ExportBatchCSV)
		protected.POST("/process/export/pdf", genHandler.ExportBatchPDF)

		// Async runs
		runRoutes := protected.Group("/runs")
		{
			runRoutes.POST("", genHandler.CreateRun)
			runRoutes.GET("/:id", genHandler.GetRun)
		}
	}
}

func (s *Server) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	return s.Router.Run(":" + port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
