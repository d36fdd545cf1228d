package repository

import (
	"context"
	"time"

	"airplain-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepository implements the key-value SettingsRepository
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

type settingDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoSettingsRepository creates a new settings repository
func NewMongoSettingsRepository(db *mongo.Database) repository.SettingsRepository {
	return &MongoSettingsRepository{
		collection: db.Collection("settings"),
	}
}

// Get returns the value for key, or defaultValue when the key is absent
func (r *MongoSettingsRepository) Get(ctx context.Context, key string, defaultValue string) (string, error) {
	var doc settingDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, err
	}
	return doc.Value, nil
}

// Set stores the value under key
func (r *MongoSettingsRepository) Set(ctx context.Context, key string, value string) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{
			"value":     value,
			"updatedAt": time.Now(),
		}},
		opts,
	)
	return err
}

// Delete removes the key
func (r *MongoSettingsRepository) Delete(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
