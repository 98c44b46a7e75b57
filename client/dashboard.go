package client

import (
	"context"
	"errors"
	"strings"

	"github.com/tresidus/tresidus-api/consts"
	"github.com/tresidus/tresidus-api/consulting"
	"github.com/tresidus/tresidus-api/schema"
)

const (
	errFetchRequests = "Failed to fetch consulting requests"
	errFetchRequest  = "Failed to fetch consulting request"
	errBackendDown   = "Network error. Please check if the backend server is running."
)

// Dashboard is the admin view over every consulting request. Filtering and
// search run locally over the fetched list.
type Dashboard struct {
	client *Client

	Requests     []schema.ConsultingRequest
	Selected     *schema.ConsultingRequest
	StatusFilter string
	Search       string
	Loading      bool
	Error        string
}

func NewDashboard(c *Client) *Dashboard {
	return &Dashboard{
		client:       c,
		Requests:     []schema.ConsultingRequest{},
		StatusFilter: consts.StatusFilterAll,
	}
}

// Load fetches the full list into the dashboard
func (d *Dashboard) Load(ctx context.Context) error {
	d.Loading = true
	defer func() { d.Loading = false }()

	requests, err := d.client.List(ctx)
	if err != nil {
		d.Error = failureMessage(err, errFetchRequests)
		return err
	}

	d.Error = ""
	d.Requests = requests
	return nil
}

func (d *Dashboard) SetStatusFilter(status string) {
	d.StatusFilter = status
}

func (d *Dashboard) SetSearch(q string) {
	d.Search = q
}

// Filtered returns the requests matching the status filter and whose name,
// company or email contains the search text, ignoring case
func (d *Dashboard) Filtered() []schema.ConsultingRequest {
	q := strings.ToLower(d.Search)

	filtered := make([]schema.ConsultingRequest, 0, len(d.Requests))
	for _, r := range d.Requests {
		if d.StatusFilter != consts.StatusFilterAll && d.StatusFilter != "" && string(r.Status) != d.StatusFilter {
			continue
		}

		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Company), q) &&
			!strings.Contains(strings.ToLower(r.Email), q) {
			continue
		}

		filtered = append(filtered, r)
	}
	return filtered
}

// Counts returns the number of shown and of all requests
func (d *Dashboard) Counts() (shown, total int) {
	return len(d.Filtered()), len(d.Requests)
}

// Select loads a single request as the detail view
func (d *Dashboard) Select(ctx context.Context, id string) error {
	r, err := d.client.Get(ctx, id)
	if err != nil {
		d.Error = failureMessage(err, errFetchRequest)
		return err
	}

	d.merge(*r)
	selected := r.Clone()
	d.Selected = &selected
	return nil
}

// Deselect closes the detail view
func (d *Dashboard) Deselect() {
	d.Selected = nil
}

// UpdateStatus changes the status of a request and merges the result into
// both the list and the detail view
func (d *Dashboard) UpdateStatus(ctx context.Context, id string, status schema.RequestStatus) error {
	r, err := d.client.Update(ctx, id, consulting.UpdateInput{Status: &status})
	if err != nil {
		return err
	}

	d.merge(*r)
	return nil
}

// AddCommunication logs a communication on the selected request. It does
// nothing without a selection or content.
func (d *Dashboard) AddCommunication(ctx context.Context, in consulting.CommunicationInput) error {
	if d.Selected == nil || strings.TrimSpace(in.Content) == "" {
		return nil
	}

	id := d.Selected.ID
	if _, err := d.client.AddCommunication(ctx, id, in); err != nil {
		return err
	}

	r, err := d.client.Get(ctx, id)
	if err != nil {
		return err
	}

	d.merge(*r)
	return nil
}

// merge replaces the list entry and the detail view holding the same id
func (d *Dashboard) merge(r schema.ConsultingRequest) {
	for i := range d.Requests {
		if d.Requests[i].ID == r.ID {
			d.Requests[i] = r.Clone()
			break
		}
	}

	if d.Selected != nil && d.Selected.ID == r.ID {
		selected := r.Clone()
		d.Selected = &selected
	}
}

// failureMessage picks the message shown for a failed call
func failureMessage(err error, apiFailure string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiFailure
	}
	return errBackendDown
}
