package consulting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/tresidus/tresidus-api/schema"
	"github.com/tresidus/tresidus-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "consulting")
}

// Notifier hands a newly created request to the outbound notification
// channel. Implementations must not block on delivery.
type Notifier interface {
	Notify(ctx context.Context, request schema.ConsultingRequest) error
}

// Service implements the consulting request lifecycle on top of a RequestStore
type Service struct {
	store    store.RequestStore
	notifier Notifier

	created        tally.Counter
	updated        tally.Counter
	deleted        tally.Counter
	appended       tally.Counter
	notifyFailed   tally.Counter
	rejectedInputs tally.Counter

	newID func() string
	now   func() time.Time
}

func NewService(s store.RequestStore, notifier Notifier, scope tally.Scope) *Service {
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Service{
		store:          s,
		notifier:       notifier,
		created:        scope.Counter("requests.created"),
		updated:        scope.Counter("requests.updated"),
		deleted:        scope.Counter("requests.deleted"),
		appended:       scope.Counter("communications.appended"),
		notifyFailed:   scope.Counter("notifications.failed"),
		rejectedInputs: scope.Counter("validation.failed"),
		newID:          func() string { return uuid.New().String() },
		now:            schema.Timestamp,
	}
}

func (s *Service) reject(err error) error {
	s.rejectedInputs.Inc(1)
	return err
}

// CreateRequest validates and stores a new request in the pending state, then
// hands it to the notifier. A notification failure never fails the call.
func (s *Service) CreateRequest(ctx context.Context, in CreateInput) (*schema.ConsultingRequest, error) {
	if err := in.validate(); err != nil {
		return nil, s.reject(err)
	}

	r := newRequest(s.newID(), in, s.now())
	if err := s.store.Put(ctx, &r); err != nil {
		return nil, err
	}
	s.created.Inc(1)

	log.WithField("id", r.ID).Info("consulting request created")

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, r.Clone()); err != nil {
			s.notifyFailed.Inc(1)
			log.WithError(err).WithField("id", r.ID).Warn("fail to notify the new consulting request")
		}
	}

	return &r, nil
}

// ListRequests returns every stored request
func (s *Service) ListRequests(ctx context.Context) ([]schema.ConsultingRequest, error) {
	requests, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if requests == nil {
		requests = []schema.ConsultingRequest{}
	}
	return requests, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if r == nil {
		return nil, ErrRequestNotFound
	}
	return r, nil
}

// UpdateRequest merges the provided fields onto the stored request
func (s *Service) UpdateRequest(ctx context.Context, id string, in UpdateInput) (*schema.ConsultingRequest, error) {
	if err := in.validate(); err != nil {
		return nil, s.reject(err)
	}

	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(r)
	r.Touch(s.now())

	if err := s.store.Put(ctx, r); err != nil {
		return nil, err
	}
	s.updated.Inc(1)

	return r, nil
}

// AppendCommunication adds a follow-up record to the end of the request's
// communication log
func (s *Service) AppendCommunication(ctx context.Context, id string, in CommunicationInput) (*schema.Communication, error) {
	if err := in.validate(); err != nil {
		return nil, s.reject(err)
	}

	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	c := newCommunication(s.newID(), in, now)
	r.Communications = append(r.Communications, c)
	r.Touch(now)

	if err := s.store.Put(ctx, r); err != nil {
		return nil, err
	}
	s.appended.Inc(1)

	return &c, nil
}

// DeleteRequest removes the request and returns what was removed
func (s *Service) DeleteRequest(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if !deleted {
		return nil, ErrRequestNotFound
	}
	s.deleted.Inc(1)

	return r, nil
}

// Ping reports the health of the underlying store
func (s *Service) Ping() error {
	return s.store.Ping()
}
