package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDBIndexer returns an indexer bound to an already connected client
func NewMongoDBIndexer(ctx context.Context, client *mongo.Client, dbName string) *MongoDBIndexer {
	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

// IndexAll creates every index the service relies on. Index creation is
// idempotent in mongo, so it is safe to call on every start.
func (m *MongoDBIndexer) IndexAll() error {
	return m.IndexConsultingRequestCollection()
}

func (m *MongoDBIndexer) IndexConsultingRequestCollection() error {
	if err := m.createIndex(ConsultingRequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"status": 1,
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(ConsultingRequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"email": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(ConsultingRequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"createdAt": -1,
		},
		Options: options.Index().SetName("created_at_desc"),
	})
}
