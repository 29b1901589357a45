package store

import (
	"context"

	"civictriage-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssueStore is the persistent IssueStore backed by a MongoDB
// collection.
type MongoIssueStore struct {
	collection *mongo.Collection
}

func NewMongoIssueStore(collection *mongo.Collection) *MongoIssueStore {
	return &MongoIssueStore{collection: collection}
}

func (s *MongoIssueStore) FetchAll(ctx context.Context) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	for i := range issues {
		issues[i].Normalize()
	}
	return issues, nil
}

func (s *MongoIssueStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	issue.Normalize()
	return &issue, nil
}

func (s *MongoIssueStore) Insert(ctx context.Context, issue *models.Issue) error {
	if issue.ID == "" {
		issue.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.collection.InsertOne(ctx, issue)
	return err
}

func (s *MongoIssueStore) Update(ctx context.Context, id string, update IssueUpdate, history []models.StatusEntry) error {
	set := updateDocument(update, history)
	if len(set) == 0 {
		// nothing to change is not an error, but the id must still resolve
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return nil
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMany applies the batch in one unordered bulk write. Records that
// fail individually do not stop the rest.
func (s *MongoIssueStore) UpdateMany(ctx context.Context, updates []BatchUpdate) error {
	var ops []mongo.WriteModel
	for _, u := range updates {
		set := updateDocument(u.Update, u.History)
		if len(set) == 0 {
			continue
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.ID}).
			SetUpdate(bson.M{"$set": set}))
	}
	if len(ops) == 0 {
		return nil
	}

	_, err := s.collection.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	return err
}

// updateDocument translates the closed update allowlist into a $set
// document. The history replaces statusHistory in the same write as the
// status field, so a history entry never lands without its status change.
func updateDocument(update IssueUpdate, history []models.StatusEntry) bson.M {
	set := bson.M{}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.AssignedTo != nil {
		set["assignedTo"] = *update.AssignedTo
	}
	if update.ResolvedAt != nil {
		set["resolvedAt"] = *update.ResolvedAt
	}
	if history != nil {
		set["statusHistory"] = history
	}
	return set
}

// MongoFlagStore is the persistent FlagStore backed by a MongoDB
// collection with a unique (issueId, userId, type) index.
type MongoFlagStore struct {
	collection *mongo.Collection
}

func NewMongoFlagStore(collection *mongo.Collection) *MongoFlagStore {
	return &MongoFlagStore{collection: collection}
}

func (s *MongoFlagStore) CountsFor(ctx context.Context, issueID string) (FlagCounts, error) {
	green, err := s.collection.CountDocuments(ctx, bson.M{"issueId": issueID, "type": models.FlagGreen})
	if err != nil {
		return FlagCounts{}, err
	}
	red, err := s.collection.CountDocuments(ctx, bson.M{"issueId": issueID, "type": models.FlagRed})
	if err != nil {
		return FlagCounts{}, err
	}
	return FlagCounts{Green: green, Red: red}, nil
}

func (s *MongoFlagStore) Insert(ctx context.Context, flag *models.Flag) error {
	if flag.ID == "" {
		flag.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.collection.InsertOne(ctx, flag)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateFlag
	}
	return err
}
