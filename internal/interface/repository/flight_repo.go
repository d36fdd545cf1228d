package repository

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	// Index for the active-flights query
	ctx := context.Background()
	activeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "isArchived", Value: 1}, {Key: "startDatetime", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, activeIndex)

	// Index for duplicate detection on lookup and import
	flightIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "airline", Value: 1}, {Key: "flightNumber", Value: 1}, {Key: "startDatetime", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	return &MongoFlightRepository{
		collection: collection,
	}
}

// GetActive returns non-archived flights ordered by departure, bounded by limit
func (r *MongoFlightRepository) GetActive(ctx context.Context, limit int) ([]*entity.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDatetime", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"isArchived": false}, opts)
}

// GetArchived returns archived flights, most recent first
func (r *MongoFlightRepository) GetArchived(ctx context.Context, limit int) ([]*entity.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDatetime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"isArchived": true}, opts)
}

// GetAll returns every flight ordered by departure
func (r *MongoFlightRepository) GetAll(ctx context.Context) ([]*entity.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDatetime", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoFlightRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Flight, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flights []*entity.Flight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// FindByFlightDate finds a flight by airline, number and departure date.
// Returns nil without error when no flight matches.
func (r *MongoFlightRepository) FindByFlightDate(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Flight, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	filter := bson.M{
		"airline":      airline,
		"flightNumber": flightNumber,
		"startDatetime": bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.Add(24 * time.Hour),
		},
	}

	var flight entity.Flight
	err := r.collection.FindOne(ctx, filter).Decode(&flight)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// Insert stores a new flight record
func (r *MongoFlightRepository) Insert(ctx context.Context, flight *entity.Flight) error {
	if flight.ID == "" {
		flight.ID = primitive.NewObjectID().Hex()
	}
	flight.CreatedAt = time.Now()
	flight.UpdatedAt = flight.CreatedAt

	_, err := r.collection.InsertOne(ctx, flight)
	return err
}

// Update replaces the stored flight record by ID
func (r *MongoFlightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	flight.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": flight.ID}, flight)
	return err
}

// Archive flags a flight as archived
func (r *MongoFlightRepository) Archive(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"isArchived": true,
			"updatedAt":  time.Now(),
		}},
	)
	return err
}
