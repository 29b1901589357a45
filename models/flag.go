package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FlagType enum
type FlagType string

const (
	FlagGreen FlagType = "green"
	FlagRed   FlagType = "red"
)

// Flag represents a citizen's vote on an issue's legitimacy. Flags are
// created once and never updated or deleted.
type Flag struct {
	ID        string    `bson:"_id" json:"id"`
	IssueID   string    `bson:"issueId" json:"issueId"`
	UserID    string    `bson:"userId" json:"userId"`
	Type      FlagType  `bson:"type" json:"type"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// EnsureFlagIndex creates a unique compound index for (issueId, userId, type)
// so a user can cast at most one flag of each color per issue.
func EnsureFlagIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "issueId", Value: 1}, {Key: "userId", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
