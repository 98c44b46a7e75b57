package background

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/RichardKnop/machinery/v1/backends/result"
	"github.com/RichardKnop/machinery/v1/tasks"

	"github.com/tresidus/tresidus-api/consts"
	"github.com/tresidus/tresidus-api/schema"
)

const (
	ModeQueue    = "queue"
	ModeInline   = "inline"
	ModeDisabled = "disabled"
)

// TaskSender publishes a task signature to the broker
type TaskSender interface {
	SendTask(signature *tasks.Signature) (*result.AsyncResult, error)
}

// QueueNotifier enqueues a notify task for the worker. The task is never
// retried and the broker round trip happens off the caller's goroutine.
type QueueNotifier struct {
	sender TaskSender
	wg     sync.WaitGroup
}

func NewQueueNotifier(sender TaskSender) *QueueNotifier {
	return &QueueNotifier{sender: sender}
}

func (q *QueueNotifier) Notify(ctx context.Context, request schema.ConsultingRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return err
	}

	sig := &tasks.Signature{
		Name: consts.NotifyTaskName,
		Args: []tasks.Arg{
			{
				Type:  "string",
				Value: string(payload),
			},
		},
		RetryCount: 0,
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if _, err := q.sender.SendTask(sig); err != nil {
			log.WithError(err).WithField("id", request.ID).Error("fail to enqueue consulting request notification")
		}
	}()
	return nil
}

// Wait blocks until every pending enqueue has finished
func (q *QueueNotifier) Wait() {
	q.wg.Wait()
}

// InlineNotifier delivers in a detached goroutine of the calling process
type InlineNotifier struct {
	center NotificationCenter
	wg     sync.WaitGroup
}

func NewInlineNotifier(center NotificationCenter) *InlineNotifier {
	return &InlineNotifier{center: center}
}

func (n *InlineNotifier) Notify(ctx context.Context, request schema.ConsultingRequest) error {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		// detached from the request context, which ends with the response
		if err := n.center.NotifyConsultingRequest(context.Background(), request); err != nil {
			log.WithError(err).WithField("id", request.ID).Error("fail to deliver consulting request notification")
		}
	}()
	return nil
}

// Wait blocks until every pending delivery has finished
func (n *InlineNotifier) Wait() {
	n.wg.Wait()
}

// DiscardNotifier drops every notification
type DiscardNotifier struct{}

func (DiscardNotifier) Notify(context.Context, schema.ConsultingRequest) error {
	return nil
}
