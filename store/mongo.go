package store

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tresidus/tresidus-api/schema"
)

const (
	mongoLogPrefix = "mongo"
)

// MongoStore keeps each request as one document keyed by `_id`.
type MongoStore struct {
	client   *mongo.Client
	database string
}

// ConnectMongo creates and connects a client the way every command in this
// repository does
func ConnectMongo(ctx context.Context, conn string, pool uint64) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(conn)
	if pool > 0 {
		opts.SetMaxPoolSize(pool)
	}

	client, err := mongo.NewClient(opts)
	if nil != err {
		return nil, storageError("connect", err)
	}

	if err := client.Connect(ctx); nil != err {
		return nil, storageError("connect", err)
	}
	return client, nil
}

// NewMongoStore - return mongo db operations
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client:   client,
		database: database,
	}
}

func (m *MongoStore) collection() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.ConsultingRequestCollection)
}

// Init creates the collection indexes
func (m *MongoStore) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := schema.NewMongoDBIndexer(ctx, m.client, m.database).IndexAll(); err != nil {
		return storageError("init", err)
	}
	return nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var r schema.ConsultingRequest
	if err := m.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, storageError("get", err)
	}

	r.Normalize()
	return &r, nil
}

func (m *MongoStore) List(ctx context.Context) ([]schema.ConsultingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := m.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, storageError("list", err)
	}

	requests := make([]schema.ConsultingRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, storageError("list", err)
	}

	for i := range requests {
		requests[i].Normalize()
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("listed %d consulting requests", len(requests))
	return requests, nil
}

func (m *MongoStore) Put(ctx context.Context, request *schema.ConsultingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	record := request.Clone()
	record.Normalize()

	if _, err := m.collection().ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		record,
		options.Replace().SetUpsert(true),
	); err != nil {
		return storageError("put", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := m.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storageError("delete", err)
	}
	return result.DeletedCount > 0, nil
}

// Ping - ping mongo db
func (m *MongoStore) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return storageError("ping", m.client.Ping(ctx, nil))
}

// Close - close mongo db connections
func (m *MongoStore) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}
