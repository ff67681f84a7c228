package services

import (
	"errors"
	"sync"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/logger"
	"taskpad/internal/models"
	"taskpad/internal/persistence"
)

const component = "TaskService"

// TaskService owns the task store and decides when it reaches the gateway.
// All mutating calls come from the UI thread.
type TaskService struct {
	store   *models.TaskStore
	gateway persistence.Gateway
	policy  config.SavePolicy
	logger  logger.Logger

	// saveMu serialises writes so a signal-driven flush cannot overtake one
	// started on the UI thread.
	saveMu sync.Mutex

	mu        sync.Mutex
	lastSaved time.Time
	lastErr   error
	changes   uint64
	savedAt   uint64
	shutdown  bool
}

// NewTaskService wires a store to a gateway using the given save policy.
func NewTaskService(store *models.TaskStore, gateway persistence.Gateway, policy config.SavePolicy, log logger.Logger) *TaskService {
	if log == nil {
		log = logger.NewNop()
	}
	return &TaskService{
		store:   store,
		gateway: gateway,
		policy:  policy,
		logger:  log,
	}
}

// Store exposes the underlying store for read access and change listeners.
func (ts *TaskService) Store() *models.TaskStore {
	return ts.store
}

// DataPath returns the location of the snapshot.
func (ts *TaskService) DataPath() string {
	return ts.gateway.Path()
}

// Load replaces the store with the persisted snapshot. On a *LoadError the
// store is reset to empty and the error is returned so the caller can warn.
func (ts *TaskService) Load() error {
	tasks, err := ts.gateway.Load()
	if err != nil {
		ts.logger.Error(component, err, map[string]interface{}{"path": ts.gateway.Path()})
		ts.store.Replace(nil)
		return err
	}
	ts.store.Replace(tasks)
	ts.logger.Info(component, "tasks loaded", map[string]interface{}{
		"path":  ts.gateway.Path(),
		"count": len(tasks),
	})
	return nil
}

// Add appends a task. Blank text is ignored: changed is false and err nil.
func (ts *TaskService) Add(text string) (bool, error) {
	task, ok := ts.store.Add(text)
	if !ok {
		ts.logger.Debug(component, "ignored blank task", nil)
		return false, nil
	}
	ts.logger.Debug(component, "task added", map[string]interface{}{"id": task.ID, "total": ts.store.Len()})
	return true, ts.afterMutation()
}

// Edit changes a task's text. Blank text or an unknown ID is a no-op.
func (ts *TaskService) Edit(id, text string) (bool, error) {
	if !ts.store.Edit(id, text) {
		return false, nil
	}
	ts.logger.Debug(component, "task edited", map[string]interface{}{"id": id})
	return true, ts.afterMutation()
}

// Toggle flips a task's completion flag.
func (ts *TaskService) Toggle(id string) (bool, error) {
	if !ts.store.Toggle(id) {
		return false, nil
	}
	ts.logger.Debug(component, "task toggled", map[string]interface{}{"id": id})
	return true, ts.afterMutation()
}

// Delete removes a task. Confirmation is the caller's concern.
func (ts *TaskService) Delete(id string) (bool, error) {
	if !ts.store.Delete(id) {
		return false, nil
	}
	ts.logger.Debug(component, "task deleted", map[string]interface{}{"id": id, "total": ts.store.Len()})
	return true, ts.afterMutation()
}

// Stats returns completion statistics of the current list.
func (ts *TaskService) Stats() models.Stats {
	return ts.store.Stats()
}

func (ts *TaskService) afterMutation() error {
	ts.mu.Lock()
	ts.changes++
	closed := ts.shutdown
	ts.mu.Unlock()

	if closed {
		ts.logger.Warning(component, "change after shutdown not saved", nil)
		return nil
	}
	if ts.policy != config.SavePolicyMutation {
		return nil
	}
	return ts.Flush()
}

// Pending reports whether the list changed since the last successful save.
func (ts *TaskService) Pending() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.changes != ts.savedAt
}

// Flush writes the whole list regardless of policy.
func (ts *TaskService) Flush() error {
	ts.saveMu.Lock()
	defer ts.saveMu.Unlock()

	ts.mu.Lock()
	generation := ts.changes
	ts.mu.Unlock()

	tasks := ts.store.Tasks()
	err := ts.gateway.Save(tasks)

	ts.mu.Lock()
	ts.lastErr = err
	if err == nil {
		ts.lastSaved = time.Now()
		ts.savedAt = generation
	}
	ts.mu.Unlock()

	if err != nil {
		ts.logger.Error(component, err, map[string]interface{}{"path": ts.gateway.Path()})
		return err
	}
	ts.logger.Debug(component, "tasks saved", map[string]interface{}{"count": len(tasks)})
	return nil
}

// FlushPending saves only when there are unsaved changes. It is the save
// performed before the window closes.
func (ts *TaskService) FlushPending() error {
	if !ts.Pending() {
		return nil
	}
	return ts.Flush()
}

// LastSave reports when the last successful write happened and the result
// of the most recent attempt.
func (ts *TaskService) LastSave() (time.Time, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.lastSaved, ts.lastErr
}

// Shutdown writes any unsaved changes and releases the gateway. Later
// mutations only change memory. Calling it more than once is harmless.
func (ts *TaskService) Shutdown() {
	ts.mu.Lock()
	if ts.shutdown {
		ts.mu.Unlock()
		return
	}
	ts.shutdown = true
	ts.mu.Unlock()

	if err := ts.FlushPending(); err != nil {
		var saveErr *persistence.SaveError
		if errors.As(err, &saveErr) {
			ts.logger.Warning(component, "final save failed", map[string]interface{}{"path": saveErr.Path})
		}
	}
	if err := ts.gateway.Close(); err != nil {
		ts.logger.Error(component, err, nil)
	}
	ts.logger.Info(component, "shutdown completed", nil)
}
