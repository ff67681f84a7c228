package models

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Task is a single to-do entry. ID only identifies the entry inside the
// running process and is never written to the snapshot.
type Task struct {
	ID   string
	Text string
	Done bool
}

// NewTask creates an open task with a fresh ID. The text is stored as given.
func NewTask(text string, done bool) Task {
	return Task{ID: uuid.NewString(), Text: text, Done: done}
}

// Stats summarises completion of the store.
type Stats struct {
	Completed int
	Total     int
	Percent   int
}

// Empty reports the "no tasks" state, in which Percent is always 0.
func (s Stats) Empty() bool {
	return s.Total == 0
}

// ComputeStats derives completion counts; Percent is floor(100*completed/total).
func ComputeStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Percent = 100 * stats.Completed / stats.Total
	}
	return stats
}

// TaskStore holds the ordered task list for the session. Order is display
// order: the entry at index i is shown as task number i+1.
type TaskStore struct {
	mu        sync.RWMutex
	tasks     []Task
	listeners []func()
}

// NewTaskStore creates an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make([]Task, 0)}
}

// OnChange registers a listener called after every effective mutation.
func (s *TaskStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *TaskStore) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// Add appends a new open task. Blank text is ignored and reported with ok=false.
func (s *TaskStore) Add(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}
	task := NewTask(text, false)

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.notify()
	return task, true
}

// Edit replaces the text of the task with the given ID. Blank text or an
// unknown ID leaves the store untouched.
func (s *TaskStore) Edit(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Text = text
	s.mu.Unlock()

	s.notify()
	return true
}

// Toggle flips the done flag of the task with the given ID.
func (s *TaskStore) Toggle(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Done = !s.tasks[i].Done
	s.mu.Unlock()

	s.notify()
	return true
}

// Delete removes the task with the given ID.
func (s *TaskStore) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.notify()
	return true
}

// Replace swaps the whole list, e.g. with the contents of a loaded snapshot.
func (s *TaskStore) Replace(tasks []Task) {
	s.mu.Lock()
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	s.mu.Unlock()

	s.notify()
}

// Tasks returns a copy of the list in display order.
func (s *TaskStore) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// IndexOf returns the zero-based position of the task, or -1.
func (s *TaskStore) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id)
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Stats computes completion statistics for the current list.
func (s *TaskStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.tasks)
}

func (s *TaskStore) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
