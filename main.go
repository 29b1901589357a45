package main

import (
	"log"
	"net/http"
	"os"

	"civictriage-be/ai"
	"civictriage-be/config"
	"civictriage-be/controllers"
	"civictriage-be/models"
	"civictriage-be/routes"
	"civictriage-be/services"
	"civictriage-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	if err := models.EnsureFlagIndex(config.GetCollection("flags")); err != nil {
		log.Printf("Failed to ensure flag index: %v", err)
	}

	config.ConnectRedis()

	issueStore := store.NewMongoIssueStore(config.GetCollection("issues"))
	flagStore := store.NewMongoFlagStore(config.GetCollection("flags"))
	lifecycle := services.NewLifecycle(issueStore, flagStore, config.TriagePolicyFromEnv())
	triageClient := ai.NewHTTPClient(os.Getenv("AI_TRIAGE_URL"))
	issueController := controllers.NewIssueController(lifecycle, triageClient)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	r.Use(cors.New(corsConfig))

	routes.IssueRoutes(r, issueController)
	routes.AuthRoutes(r)
	routes.UserRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
