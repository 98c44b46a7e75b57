package store

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/tresidus/tresidus-api/schema"
)

const DefaultFilePath = "data/consulting-requests.json"

// FileStore keeps every request in a single JSON array which is rewritten
// wholesale on each mutation. List returns requests in insertion order.
type FileStore struct {
	path string

	// mu serializes read-modify-write cycles within this process only
	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileStore{path: path}
}

// Path returns the location of the backing document
func (f *FileStore) Path() string {
	return f.path
}

// Init creates the data directory and an empty document when missing
func (f *FileStore) Init(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return storageError("init", err)
	}

	if _, err := os.Stat(f.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return storageError("init", err)
	}

	log.WithField("prefix", storeLogPrefix).Infof("creating request document at %s", f.path)
	return storageError("init", f.save([]schema.ConsultingRequest{}))
}

func (f *FileStore) Get(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests, err := f.load()
	if err != nil {
		return nil, storageError("get", err)
	}

	for _, r := range requests {
		if r.ID == id {
			found := r.Clone()
			return &found, nil
		}
	}
	return nil, nil
}

func (f *FileStore) List(ctx context.Context) ([]schema.ConsultingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests, err := f.load()
	if err != nil {
		return nil, storageError("list", err)
	}
	return requests, nil
}

func (f *FileStore) Put(ctx context.Context, request *schema.ConsultingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests, err := f.load()
	if err != nil {
		return storageError("put", err)
	}

	record := request.Clone()
	record.Normalize()

	replaced := false
	for i := range requests {
		if requests[i].ID == record.ID {
			requests[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		requests = append(requests, record)
	}

	return storageError("put", f.save(requests))
}

func (f *FileStore) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests, err := f.load()
	if err != nil {
		return false, storageError("delete", err)
	}

	for i := range requests {
		if requests[i].ID == id {
			requests = append(requests[:i], requests[i+1:]...)
			return true, storageError("delete", f.save(requests))
		}
	}
	return false, nil
}

// Ping checks the backing document is still readable
func (f *FileStore) Ping() error {
	_, err := os.Stat(f.path)
	return storageError("ping", err)
}

func (f *FileStore) Close() {}

func (f *FileStore) load() ([]schema.ConsultingRequest, error) {
	data, err := ioutil.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []schema.ConsultingRequest{}, nil
		}
		return nil, err
	}

	requests := []schema.ConsultingRequest{}
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Normalize()
	}
	return requests, nil
}

// save writes to a temp file and renames it over the document so readers
// never observe a partial write.
func (f *FileStore) save(requests []schema.ConsultingRequest) error {
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := f.path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
