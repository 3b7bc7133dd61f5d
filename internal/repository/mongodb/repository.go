package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const reportsCollection = "inventory_reports"

// ErrNoReports is returned by LatestReport when nothing was archived yet.
var ErrNoReports = errors.New("no inventory report archived")

// Repository archives inventory reports.
type Repository interface {
	SaveInventoryReport(ctx context.Context, report models.InventoryReport) error
	LatestReport(ctx context.Context) (models.InventoryReport, error)
}

// MongoDBRepository implements Repository on a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects to uri and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: reportsCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveInventoryReport inserts report as a new document.
func (r *MongoDBRepository) SaveInventoryReport(ctx context.Context, report models.InventoryReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert inventory report: %w", err)
	}
	return nil
}

// LatestReport returns the most recently generated report.
func (r *MongoDBRepository) LatestReport(ctx context.Context) (models.InventoryReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	var report models.InventoryReport
	err := r.collection().FindOne(ctx, bson.D{}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryReport{}, ErrNoReports
	}
	if err != nil {
		return models.InventoryReport{}, fmt.Errorf("failed to load latest inventory report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
