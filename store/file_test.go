package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresidus/tresidus-api/schema"
)

func newTestFileStore(t *testing.T) (*FileStore, func()) {
	dir, err := ioutil.TempDir("", "tresidus-store")
	require.NoError(t, err)

	s := NewFileStore(filepath.Join(dir, "data", "consulting-requests.json"))
	require.NoError(t, s.Init(context.Background()))

	return s, func() { os.RemoveAll(dir) }
}

func TestFileStoreBehaviour(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	exerciseRequestStore(t, s)
}

func TestFileStoreInitIsIdempotent(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	data, err := ioutil.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	r := requestAda.Clone()
	require.NoError(t, s.Put(context.Background(), &r))

	// a second Init must not truncate existing data
	require.NoError(t, s.Init(context.Background()))

	all, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFileStoreListKeepsInsertionOrder(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	ctx := context.Background()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		r := requestAda.Clone()
		r.ID = id
		require.NoError(t, s.Put(ctx, &r))
	}

	// replacing a record keeps its position
	r := requestAda.Clone()
	r.ID = "a"
	r.Status = schema.StatusCompleted
	require.NoError(t, s.Put(ctx, &r))

	all, err := s.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, r := range all {
		got = append(got, r.ID)
	}
	assert.Equal(t, ids, got)
	assert.Equal(t, schema.StatusCompleted, all[1].Status)
}

func TestFileStoreRoundTripKeepsEveryField(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	ctx := context.Background()
	for _, fixture := range []schema.ConsultingRequest{requestAda, requestGrace} {
		r := fixture.Clone()
		require.NoError(t, s.Put(ctx, &r))
	}

	// a fresh handle reads only what was serialized
	reopened := NewFileStore(s.Path())
	all, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []schema.ConsultingRequest{requestAda, requestGrace}, all)

	data, err := ioutil.ReadFile(s.Path())
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "", raw[0]["company"])
	assert.Equal(t, "", raw[0]["phone"])
	assert.Equal(t, "", raw[0]["preferredDate"])
	assert.Equal(t, []interface{}{}, raw[0]["communications"])
}

func TestFileStoreMissingDocumentReadsEmpty(t *testing.T) {
	dir, err := ioutil.TempDir("", "tresidus-store")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s := NewFileStore(filepath.Join(dir, "absent.json"))
	all, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	require.NoError(t, ioutil.WriteFile(s.Path(), []byte("{not json"), 0640))

	_, err := s.List(context.Background())
	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list", se.Op)

	_, err = s.Get(context.Background(), "x")
	assert.Error(t, err)
}

func TestFileStorePingFailsWithoutDocument(t *testing.T) {
	s, cleanup := newTestFileStore(t)
	defer cleanup()

	require.NoError(t, os.Remove(s.Path()))
	assert.Error(t, s.Ping())
}

func TestNewFileStoreDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFilePath, NewFileStore("").Path())
}
