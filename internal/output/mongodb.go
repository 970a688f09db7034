// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

const mongoTimeout = 30 * time.Second

// MongoDBWriter upserts entries into a collection with a unique index on link.
// A link already stored keeps its title.
type MongoDBWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	batchSize  int
}

// NewMongoDBWriter connects and prepares the collection
func NewMongoDBWriter(uri, database, collection string, batchSize int) (*MongoDBWriter, error) {
	if uri == "" {
		return nil, fmt.Errorf("MongoDB connection string is required")
	}
	if database == "" || collection == "" {
		return nil, fmt.Errorf("MongoDB database and collection are required")
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "link", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("link_unique"),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create link index: %w", err)
	}

	return &MongoDBWriter{client: client, collection: coll, batchSize: batchSize}, nil
}

// WriteEntries upserts entries in unordered bulk writes
func (w *MongoDBWriter) WriteEntries(entries []types.Entry) error {
	for i := 0; i < len(entries); i += w.batchSize {
		end := i + w.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := w.writeBatch(entries[i:end]); err != nil {
			return fmt.Errorf("failed to write batch %d-%d: %w", i, end-1, err)
		}
	}
	return nil
}

func (w *MongoDBWriter) writeBatch(batch []types.Entry) error {
	models := make([]mongo.WriteModel, len(batch))
	for i, e := range batch {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "link", Value: e.Link}}).
			SetUpdate(bson.D{{Key: "$setOnInsert", Value: bson.D{
				{Key: "title", Value: e.Title},
				{Key: "created_at", Value: time.Now().UTC()},
			}}}).
			SetUpsert(true)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	_, err := w.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

// Close disconnects from MongoDB
func (w *MongoDBWriter) Close() error {
	if w.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	err := w.client.Disconnect(ctx)
	w.client = nil
	return err
}
