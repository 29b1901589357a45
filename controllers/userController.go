package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civictriage-be/config"
	"civictriage-be/models"
	"civictriage-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetUsers returns the user directory: live users merged with the seed
// set, seed entries suppressed wherever a live user shares the same id.
// Store failures degrade to the seed directory.
func GetUsers(c *gin.Context) {
	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var live []models.User
	cursor, err := userCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("Error fetching users, falling back to seed data:", err)
		c.JSON(http.StatusOK, store.SeedUsers())
		return
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &live); err != nil {
		log.Println("Error decoding users, falling back to seed data:", err)
		c.JSON(http.StatusOK, store.SeedUsers())
		return
	}

	seen := make(map[string]bool, len(live))
	for _, user := range live {
		seen[user.ID] = true
	}
	for _, seeded := range store.SeedUsers() {
		if !seen[seeded.ID] {
			live = append(live, seeded)
		}
	}

	c.JSON(http.StatusOK, live)
}
