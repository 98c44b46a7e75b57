package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormDefaults(t *testing.T) {
	f := NewForm(New("http://localhost:5000", nil))

	assert.Equal(t, "General Consulting", f.Fields.ProjectType)
	assert.Equal(t, "Not specified", f.Fields.Budget)
	assert.Equal(t, "Flexible", f.Fields.Timeline)
	assert.Equal(t, "email", f.Fields.CommunicationPreference)
	assert.Empty(t, f.Fields.Name)
	assert.Contains(t, ProjectTypes, f.Fields.ProjectType)
	assert.Contains(t, BudgetRanges, f.Fields.Budget)
	assert.Contains(t, TimelineOptions, f.Fields.Timeline)
}

func TestFormSubmit(t *testing.T) {
	ts, cleanup := newTestBackend(t)
	defer cleanup()

	c := New(ts.URL, nil)
	f := NewForm(c)
	f.Fields.Name = "Ada"
	f.Fields.Email = "ada@x.io"
	f.Fields.Description = "Need ML help"
	f.Fields.Budget = "Under $10,000"

	created, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, f.Submitted)
	assert.False(t, f.Submitting)
	assert.Empty(t, f.Error)
	assert.Equal(t, defaultFields(), f.Fields)

	stored, err := c.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Under $10,000", stored.Budget)

	f.Reset()
	assert.False(t, f.Submitted)
}

func TestFormSubmitValidationError(t *testing.T) {
	ts, cleanup := newTestBackend(t)
	defer cleanup()

	f := NewForm(New(ts.URL, nil))
	f.Fields.Name = "Ada"
	f.Fields.Email = "not-an-email"
	f.Fields.Description = "Need ML help"

	_, err := f.Submit(context.Background())
	assert.Error(t, err)
	assert.False(t, f.Submitted)
	assert.Equal(t, "Invalid email format", f.Error)
	// fields are kept for correction
	assert.Equal(t, "Ada", f.Fields.Name)
}

func TestFormSubmitNetworkError(t *testing.T) {
	f := NewForm(New(closedURL(), nil))
	f.Fields.Name = "Ada"

	_, err := f.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Network error. Please try again later.", f.Error)
	assert.False(t, f.Submitting)
}
