package schema

import (
	"time"
)

const (
	ConsultingRequestCollection = "consulting_requests"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusContacted RequestStatus = "contacted"
	StatusScheduled RequestStatus = "scheduled"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

// RequestStatuses lists every status in workflow order
var RequestStatuses = []RequestStatus{
	StatusPending,
	StatusContacted,
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether the status belongs to the fixed status set
func (s RequestStatus) Valid() bool {
	for _, v := range RequestStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type CommunicationType string

const (
	CommunicationEmail   CommunicationType = "email"
	CommunicationCall    CommunicationType = "call"
	CommunicationMeeting CommunicationType = "meeting"
	CommunicationNote    CommunicationType = "note"
)

var CommunicationTypes = []CommunicationType{
	CommunicationEmail,
	CommunicationCall,
	CommunicationMeeting,
	CommunicationNote,
}

func (t CommunicationType) Valid() bool {
	for _, v := range CommunicationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ConsultingRequest is a prospective client's request submitted from the public form.
// The request id doubles as the mongo document key.
type ConsultingRequest struct {
	ID                      string          `json:"id" bson:"_id"`
	Name                    string          `json:"name" bson:"name"`
	Email                   string          `json:"email" bson:"email"`
	Company                 string          `json:"company" bson:"company"`
	Phone                   string          `json:"phone" bson:"phone"`
	ProjectType             string          `json:"projectType" bson:"projectType"`
	Budget                  string          `json:"budget" bson:"budget"`
	Timeline                string          `json:"timeline" bson:"timeline"`
	Description             string          `json:"description" bson:"description"`
	PreferredDate           string          `json:"preferredDate" bson:"preferredDate"`
	PreferredTime           string          `json:"preferredTime" bson:"preferredTime"`
	CommunicationPreference string          `json:"communicationPreference" bson:"communicationPreference"`
	Notes                   string          `json:"notes" bson:"notes"`
	Status                  RequestStatus   `json:"status" bson:"status"`
	CreatedAt               time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt" bson:"updatedAt"`
	Communications          []Communication `json:"communications" bson:"communications"`
}

// Communication is a follow-up contact log entry owned by one ConsultingRequest
type Communication struct {
	ID               string            `json:"id" bson:"id"`
	Type             CommunicationType `json:"type" bson:"type"`
	Subject          string            `json:"subject" bson:"subject"`
	Content          string            `json:"content" bson:"content"`
	Method           string            `json:"method" bson:"method"`
	FollowUpRequired bool              `json:"followUpRequired" bson:"followUpRequired"`
	FollowUpDate     string            `json:"followUpDate" bson:"followUpDate"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
	CreatedBy        string            `json:"createdBy" bson:"createdBy"`
}

// Normalize replaces a nil communication list with an empty one so the
// record always serializes `communications` as an array, and moves every
// timestamp to UTC regardless of how the backend decoded it.
func (r *ConsultingRequest) Normalize() {
	if r.Communications == nil {
		r.Communications = []Communication{}
	}

	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	for i := range r.Communications {
		r.Communications[i].CreatedAt = r.Communications[i].CreatedAt.UTC()
	}
}

// Touch refreshes UpdatedAt, never letting it fall behind CreatedAt.
func (r *ConsultingRequest) Touch(now time.Time) {
	if now.Before(r.CreatedAt) {
		now = r.CreatedAt
	}
	r.UpdatedAt = now
}

// Clone returns a copy that shares no communication slice with r
func (r ConsultingRequest) Clone() ConsultingRequest {
	c := r
	c.Communications = make([]Communication, len(r.Communications))
	copy(c.Communications, r.Communications)
	return c
}

// Timestamp returns the current time with the precision every backend can
// round-trip: UTC, truncated to milliseconds.
func Timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
