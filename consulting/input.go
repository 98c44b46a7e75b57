package consulting

import (
	"regexp"
	"strings"
	"time"

	"github.com/tresidus/tresidus-api/consts"
	"github.com/tresidus/tresidus-api/schema"
)

// emailPattern accepts anything shaped like local@domain.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address passes the intake form's email check
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CreateInput carries the fields of the public consulting form
type CreateInput struct {
	Name                    string `json:"name"`
	Email                   string `json:"email"`
	Company                 string `json:"company"`
	Phone                   string `json:"phone"`
	ProjectType             string `json:"projectType"`
	Budget                  string `json:"budget"`
	Timeline                string `json:"timeline"`
	Description             string `json:"description"`
	PreferredDate           string `json:"preferredDate"`
	PreferredTime           string `json:"preferredTime"`
	CommunicationPreference string `json:"communicationPreference"`
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Description) == "" {
		return invalid(reasonMissingRequestFields)
	}

	if !ValidEmail(strings.TrimSpace(in.Email)) {
		return invalid(reasonInvalidEmail)
	}
	return nil
}

// UpdateInput is a partial update. Only non-nil fields are applied.
type UpdateInput struct {
	Name                    *string               `json:"name"`
	Email                   *string               `json:"email"`
	Company                 *string               `json:"company"`
	Phone                   *string               `json:"phone"`
	ProjectType             *string               `json:"projectType"`
	Budget                  *string               `json:"budget"`
	Timeline                *string               `json:"timeline"`
	Description             *string               `json:"description"`
	PreferredDate           *string               `json:"preferredDate"`
	PreferredTime           *string               `json:"preferredTime"`
	CommunicationPreference *string               `json:"communicationPreference"`
	Notes                   *string               `json:"notes"`
	Status                  *schema.RequestStatus `json:"status"`
}

func (in UpdateInput) validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid(reasonBlankField + "name")
	}

	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return invalid(reasonBlankField + "description")
	}

	if in.Email != nil && !ValidEmail(strings.TrimSpace(*in.Email)) {
		return invalid(reasonInvalidEmail)
	}

	if in.Status != nil && !in.Status.Valid() {
		return invalid(reasonInvalidStatus)
	}
	return nil
}

func (in UpdateInput) apply(r *schema.ConsultingRequest) {
	setTrimmed := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setTrimmed(&r.Name, in.Name)
	setTrimmed(&r.Company, in.Company)
	setTrimmed(&r.Phone, in.Phone)
	setTrimmed(&r.ProjectType, in.ProjectType)
	setTrimmed(&r.Budget, in.Budget)
	setTrimmed(&r.Timeline, in.Timeline)
	setTrimmed(&r.Description, in.Description)
	setTrimmed(&r.PreferredDate, in.PreferredDate)
	setTrimmed(&r.PreferredTime, in.PreferredTime)
	setTrimmed(&r.CommunicationPreference, in.CommunicationPreference)

	if in.Email != nil {
		r.Email = normalizeEmail(*in.Email)
	}

	// notes are kept verbatim
	if in.Notes != nil {
		r.Notes = *in.Notes
	}

	if in.Status != nil {
		r.Status = *in.Status
	}
}

// CommunicationInput is a follow-up record logged by an admin
type CommunicationInput struct {
	Type             schema.CommunicationType `json:"type"`
	Subject          string                   `json:"subject"`
	Content          string                   `json:"content"`
	Method           string                   `json:"method"`
	FollowUpRequired bool                     `json:"followUpRequired"`
	FollowUpDate     string                   `json:"followUpDate"`
}

func (in CommunicationInput) validate() error {
	if in.Type == "" || strings.TrimSpace(in.Content) == "" {
		return invalid(reasonMissingCommunicationFields)
	}

	if !in.Type.Valid() {
		return invalid(reasonInvalidCommunicationType)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func newRequest(id string, in CreateInput, now time.Time) schema.ConsultingRequest {
	return schema.ConsultingRequest{
		ID:                      id,
		Name:                    strings.TrimSpace(in.Name),
		Email:                   normalizeEmail(in.Email),
		Company:                 strings.TrimSpace(in.Company),
		Phone:                   strings.TrimSpace(in.Phone),
		ProjectType:             withDefault(in.ProjectType, consts.DefaultProjectType),
		Budget:                  withDefault(in.Budget, consts.DefaultBudget),
		Timeline:                withDefault(in.Timeline, consts.DefaultTimeline),
		Description:             strings.TrimSpace(in.Description),
		PreferredDate:           strings.TrimSpace(in.PreferredDate),
		PreferredTime:           strings.TrimSpace(in.PreferredTime),
		CommunicationPreference: withDefault(in.CommunicationPreference, consts.DefaultCommunicationPreference),
		Status:                  schema.StatusPending,
		CreatedAt:               now,
		UpdatedAt:               now,
		Communications:          []schema.Communication{},
	}
}

func newCommunication(id string, in CommunicationInput, now time.Time) schema.Communication {
	return schema.Communication{
		ID:               id,
		Type:             in.Type,
		Subject:          strings.TrimSpace(in.Subject),
		Content:          strings.TrimSpace(in.Content),
		Method:           withDefault(in.Method, consts.DefaultCommunicationMethod),
		FollowUpRequired: in.FollowUpRequired,
		FollowUpDate:     in.FollowUpDate,
		CreatedAt:        now,
		CreatedBy:        consts.CommunicationCreator,
	}
}
