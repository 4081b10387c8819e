package jobqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/billing"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/database"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/documents"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/env"
	"github.com/QuoteKitHQ/QuoteKit/internal/pkg/storage"
)

// Manager manages the global job queue and its handlers
type Manager struct {
	queue   *Queue
	mu      sync.Mutex
	running bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := env.GetEnvAsInt("JOB_QUEUE_WORKERS", 3)
		globalManager = &Manager{
			queue: NewQueue(workerCount),
		}
		globalManager.registerHandlers()
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// registerHandlers binds the document render and billing reconcile
// processors to the queue.
func (m *Manager) registerHandlers() {
	m.queue.RegisterHandler(JobTypeDocumentRender, func(ctx context.Context, job *Job) error {
		documentLogID, ok := job.UintPayload("document_log_id")
		if !ok {
			return fmt.Errorf("job %s: missing document_log_id payload", job.ID)
		}

		var store documents.Store
		cfg, err := storage.LoadConfig()
		if err != nil {
			return fmt.Errorf("storage config: %w", err)
		}
		if cfg.IsEnabled() {
			client, err := storage.NewClient(cfg)
			if err != nil {
				return fmt.Errorf("storage client: %w", err)
			}
			store = client
		}

		svc := documents.NewService(database.GetDB(), store)
		return svc.Render(ctx, documentLogID)
	})

	m.queue.RegisterHandler(JobTypeBillingReconcile, func(ctx context.Context, job *Job) error {
		userID, ok := job.UintPayload("user_id")
		if !ok {
			return fmt.Errorf("job %s: missing user_id payload", job.ID)
		}

		svc := billing.NewServiceFromDB(database.GetDB())
		plan, err := svc.ReconcileAccountPlan(ctx, userID)
		if err != nil {
			return err
		}
		log.Infof("[JobQueue Manager] Reconciled account %d to plan %s", userID, plan)
		return nil
	})
}

// Start starts the job queue
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true

	log.Info("[JobQueue Manager] Starting job queue")
	m.queue.Start()
	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false

	log.Info("[JobQueue Manager] Stopping job queue...")
	m.queue.Stop()
	log.Info("[JobQueue Manager] Stopped successfully")
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// EnqueueDocumentRender queues an asynchronous render for a document log row
func EnqueueDocumentRender(documentLogID uint) (*Job, error) {
	return GetManager().GetQueue().EnqueueJob(JobTypeDocumentRender, map[string]interface{}{
		"document_log_id": documentLogID,
	})
}

// EnqueueBillingReconcile queues a plan reconciliation for an account
func EnqueueBillingReconcile(userID uint) (*Job, error) {
	return GetManager().GetQueue().EnqueueJob(JobTypeBillingReconcile, map[string]interface{}{
		"user_id": userID,
	})
}
