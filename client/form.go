package client

import (
	"context"
	"errors"

	"github.com/tresidus/tresidus-api/consts"
	"github.com/tresidus/tresidus-api/consulting"
)

const errSubmitNetwork = "Network error. Please try again later."

// choices offered by the public form
var (
	ProjectTypes = []string{
		consts.DefaultProjectType,
		"AI Strategy Development",
		"Machine Learning Implementation",
		"Data Analytics",
		"Process Automation",
		"Custom AI Solutions",
		"Technology Assessment",
		"Digital Transformation",
	}

	BudgetRanges = []string{
		consts.DefaultBudget,
		"Under $10,000",
		"$10,000 - $50,000",
		"$50,000 - $100,000",
		"$100,000 - $500,000",
		"Over $500,000",
	}

	TimelineOptions = []string{
		consts.DefaultTimeline,
		"ASAP",
		"1-3 months",
		"3-6 months",
		"6-12 months",
		"Over 1 year",
	}
)

// Form is the public consulting request form
type Form struct {
	client *Client

	Fields     consulting.CreateInput
	Submitting bool
	Submitted  bool
	Error      string
}

func NewForm(c *Client) *Form {
	return &Form{
		client: c,
		Fields: defaultFields(),
	}
}

func defaultFields() consulting.CreateInput {
	return consulting.CreateInput{
		ProjectType:             consts.DefaultProjectType,
		Budget:                  consts.DefaultBudget,
		Timeline:                consts.DefaultTimeline,
		CommunicationPreference: consts.DefaultCommunicationPreference,
	}
}

// Submit posts the fields. On success the fields go back to their defaults
// and the success panel shows; on failure Error holds the message to show.
func (f *Form) Submit(ctx context.Context) (*Created, error) {
	f.Submitting = true
	f.Error = ""
	defer func() { f.Submitting = false }()

	created, err := f.client.Create(ctx, f.Fields)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			f.Error = apiErr.Message
		} else {
			f.Error = errSubmitNetwork
		}
		return nil, err
	}

	f.Submitted = true
	f.Fields = defaultFields()
	return created, nil
}

// Reset hides the success panel for a new submission
func (f *Form) Reset() {
	f.Submitted = false
	f.Error = ""
}
