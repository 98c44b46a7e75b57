package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tresidus/tresidus-api/schema"
)

var (
	tsMarch1 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	tsMarch2 = time.Date(2024, 3, 2, 14, 15, 0, 123000000, time.UTC)

	requestAda = schema.ConsultingRequest{
		ID:                      "0f6c5a8e-5f0e-4c77-9a4c-6f1f3c1d0a01",
		Name:                    "Ada",
		Email:                   "ada@example.com",
		Company:                 "",
		Phone:                   "",
		ProjectType:             "General Consulting",
		Budget:                  "Not specified",
		Timeline:                "Flexible",
		Description:             "Need a model",
		PreferredDate:           "",
		PreferredTime:           "",
		CommunicationPreference: "email",
		Notes:                   "",
		Status:                  schema.StatusPending,
		CreatedAt:               tsMarch1,
		UpdatedAt:               tsMarch1,
		Communications:          []schema.Communication{},
	}

	requestGrace = schema.ConsultingRequest{
		ID:                      "0f6c5a8e-5f0e-4c77-9a4c-6f1f3c1d0a02",
		Name:                    "Grace",
		Email:                   "grace@navy.example",
		Company:                 "Navy",
		Phone:                   "+1 555 0100",
		ProjectType:             "Data Analytics",
		Budget:                  "$10,000 - $50,000",
		Timeline:                "1-3 months",
		Description:             "Compiler telemetry",
		PreferredDate:           "2024-04-01",
		PreferredTime:           "10:00",
		CommunicationPreference: "phone",
		Notes:                   "call after lunch",
		Status:                  schema.StatusContacted,
		CreatedAt:               tsMarch1,
		UpdatedAt:               tsMarch2,
		Communications: []schema.Communication{
			{
				ID:               "c-1",
				Type:             schema.CommunicationCall,
				Subject:          "intro",
				Content:          "left a voicemail",
				Method:           "phone",
				FollowUpRequired: true,
				FollowUpDate:     "2024-03-05",
				CreatedAt:        tsMarch2,
				CreatedBy:        "admin",
			},
		},
	}
)

// exerciseRequestStore checks the behaviour every backend must share
func exerciseRequestStore(t *testing.T, s RequestStore) {
	ctx := context.Background()

	missing, err := s.Get(ctx, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	ada := requestAda.Clone()
	grace := requestGrace.Clone()
	assert.NoError(t, s.Put(ctx, &ada))
	assert.NoError(t, s.Put(ctx, &grace))

	got, err := s.Get(ctx, ada.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, requestAda, *got)
	}

	got, err = s.Get(ctx, grace.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, requestGrace, *got)
	}

	all, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// replace keeps a single record for the id
	ada.Status = schema.StatusScheduled
	ada.UpdatedAt = tsMarch2
	assert.NoError(t, s.Put(ctx, &ada))

	all, err = s.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	got, err = s.Get(ctx, ada.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, schema.StatusScheduled, got.Status)
		assert.Equal(t, tsMarch2, got.UpdatedAt)
		assert.Equal(t, tsMarch1, got.CreatedAt)
	}

	deleted, err := s.Delete(ctx, ada.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, ada.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)

	got, err = s.Get(ctx, ada.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, s.Ping())
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := storageError("put", cause)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "put", se.Op)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "storage put failed: disk full", err.Error())

	assert.Nil(t, storageError("put", nil))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "dynamo"})
	assert.EqualError(t, err, `unknown store backend "dynamo"`)
}
