package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/models"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the only snapshot layout this build reads and writes.
const SnapshotVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrBlankTask          = errors.New("snapshot contains a task with blank text")
	ErrTrailingData       = errors.New("unexpected data after snapshot")
)

// Record is one persisted task. Only text and completion are stored.
type Record struct {
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Snapshot is the on-disk representation of the whole ordered list.
type Snapshot struct {
	Version int      `json:"version" yaml:"version"`
	Tasks   []Record `json:"tasks" yaml:"tasks"`
}

// NewSnapshot captures tasks in display order.
func NewSnapshot(tasks []models.Task) Snapshot {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, Record{Text: t.Text, Done: t.Done})
	}
	return Snapshot{Version: SnapshotVersion, Tasks: records}
}

// Validate checks the version and that every record carries text.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	for i, r := range s.Tasks {
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("%w (position %d)", ErrBlankTask, i+1)
		}
	}
	return nil
}

// ToTasks rebuilds store entries, assigning each a fresh ID.
func (s Snapshot) ToTasks() []models.Task {
	tasks := make([]models.Task, 0, len(s.Tasks))
	for _, r := range s.Tasks {
		tasks = append(tasks, models.NewTask(r.Text, r.Done))
	}
	return tasks
}

// Codec turns a Snapshot into bytes and back.
type Codec interface {
	Name() string
	Encode(Snapshot) ([]byte, error)
	Decode([]byte) (Snapshot, error)
}

type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(s Snapshot) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

func (JSONCodec) Decode(b []byte) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Snapshot{}, ErrTrailingData
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(b []byte) (Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
