package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/warehouse/internal/domain/models"
)

const (
	adjustmentsCollection = "stock_adjustments"
	snapshotsCollection   = "statistics_snapshots"
)

// Repository defines the journal operations backed by MongoDB.
type Repository interface {
	SaveAdjustment(ctx context.Context, record models.AdjustmentRecord) error
	ListAdjustments(ctx context.Context, productID string, limit int64) ([]models.AdjustmentRecord, error)
	SaveStatisticsSnapshot(ctx context.Context, snapshot models.StatisticsSnapshot) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{client: client, dbName: dbName}

	index := mongo.IndexModel{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}}
	if _, err := repo.collection(adjustmentsCollection).Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("failed to create adjustments index: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// SaveAdjustment appends a stock change to the journal.
func (r *MongoDBRepository) SaveAdjustment(ctx context.Context, record models.AdjustmentRecord) error {
	if _, err := r.collection(adjustmentsCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert stock adjustment: %w", err)
	}
	return nil
}

// ListAdjustments returns the latest journal lines for a product, newest first.
func (r *MongoDBRepository) ListAdjustments(ctx context.Context, productID string, limit int64) ([]models.AdjustmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection(adjustmentsCollection).Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock adjustments: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.AdjustmentRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode stock adjustments: %w", err)
	}
	return records, nil
}

// SaveStatisticsSnapshot stores a dated dashboard snapshot.
func (r *MongoDBRepository) SaveStatisticsSnapshot(ctx context.Context, snapshot models.StatisticsSnapshot) error {
	if _, err := r.collection(snapshotsCollection).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert statistics snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
