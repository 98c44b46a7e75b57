package background

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/RichardKnop/machinery/v1"

	"github.com/tresidus/tresidus-api/consts"
	"github.com/tresidus/tresidus-api/schema"
)

const deliveryTimeout = 30 * time.Second

// BackgroundManager runs the machinery worker consuming notify tasks
type BackgroundManager struct {
	center NotificationCenter

	taskServer *machinery.Server

	mu       sync.Mutex
	worker   *machinery.Worker
	stopOnce sync.Once
}

func New(taskServer *machinery.Server, center NotificationCenter) *BackgroundManager {
	return &BackgroundManager{
		center:     center,
		taskServer: taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// RegisterTasks registers every task the worker consumes
func (m *BackgroundManager) RegisterTasks() error {
	return m.RegisterTask(consts.NotifyTaskName, m.NotifyConsultingRequest)
}

// NotifyConsultingRequest is the task delivering the notification of a new
// consulting request. The payload is the JSON encoded request.
func (m *BackgroundManager) NotifyConsultingRequest(payload string) error {
	var request schema.ConsultingRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		log.WithError(err).Error("invalid consulting request payload")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := m.center.NotifyConsultingRequest(ctx, request); err != nil {
		log.WithError(err).WithField("id", request.ID).Error("fail to deliver consulting request notification")
		return err
	}
	return nil
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	m.mu.Lock()
	if m.worker != nil {
		m.mu.Unlock()
		return errors.New("background worker has started")
	}
	worker := m.taskServer.NewWorker("tresidus-notify-worker", 5)
	m.worker = worker
	m.mu.Unlock()

	// Launch blocks and quits the worker on SIGINT/SIGTERM by itself
	return worker.Launch()
}

// Stop asks a running worker to quit. Only the first call has an effect.
func (m *BackgroundManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.worker != nil {
		m.stopOnce.Do(m.worker.Quit)
	}
}
