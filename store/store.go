package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tresidus/tresidus-api/schema"
)

const (
	storeLogPrefix = "store"
	defaultTimeout = 5 * time.Second
)

const (
	BackendFile     = "file"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// RequestStore persists consulting requests keyed by their id.
//
// A missing record is reported as a nil result rather than an error. Any
// failure of the underlying backend is returned as a *StorageError.
// Concurrent writers to the same id race; the last write wins.
type RequestStore interface {
	Get(ctx context.Context, id string) (*schema.ConsultingRequest, error)
	List(ctx context.Context) ([]schema.ConsultingRequest, error)
	Put(ctx context.Context, request *schema.ConsultingRequest) error
	Delete(ctx context.Context, id string) (bool, error)

	// Init prepares the backend (files, indexes, tables). It is idempotent.
	Init(ctx context.Context) error

	Pinger
	Closer
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

// StorageError wraps a failure of the persistence backend
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Config selects and configures a store backend
type Config struct {
	Backend string

	FilePath string

	MongoConn     string
	MongoDatabase string
	MongoPool     uint64

	ORMConn string
}

// ConfigFromViper reads the store.*, mongo.* and orm.* settings
func ConfigFromViper() Config {
	return Config{
		Backend:       viper.GetString("store.backend"),
		FilePath:      viper.GetString("store.file.path"),
		MongoConn:     viper.GetString("mongo.conn"),
		MongoDatabase: viper.GetString("mongo.database"),
		MongoPool:     viper.GetUint64("mongo.pool"),
		ORMConn:       viper.GetString("orm.conn"),
	}
}

// Open connects the configured backend and initializes it once.
func Open(ctx context.Context, cfg Config) (RequestStore, error) {
	var s RequestStore

	switch cfg.Backend {
	case "", BackendFile:
		s = NewFileStore(cfg.FilePath)
	case BackendMongo:
		client, err := ConnectMongo(ctx, cfg.MongoConn, cfg.MongoPool)
		if err != nil {
			return nil, err
		}
		s = NewMongoStore(client, cfg.MongoDatabase)
	case BackendPostgres:
		db, err := gorm.Open("postgres", withStatementTimeout(cfg.ORMConn, defaultTimeout))
		if err != nil {
			return nil, storageError("connect", err)
		}
		s = NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if err := s.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}

	log.WithField("prefix", storeLogPrefix).Infof("initialized %s store", backendName(cfg.Backend))
	return s, nil
}

func backendName(backend string) string {
	if backend == "" {
		return BackendFile
	}
	return backend
}
