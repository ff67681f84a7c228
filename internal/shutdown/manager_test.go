package shutdown

import (
	"testing"
	"time"

	"taskpad/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.NewNop(), time.Second)
	var order []string
	m.Register("service", Func(func() { order = append(order, "service") }))
	m.Register("clock", Func(func() { order = append(order, "clock") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"clock", "service"}, order)
	assert.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel must be closed")
	}
}

func TestShutdownDoesNotWaitForeverOnStuckComponent(t *testing.T) {
	m := NewManager(logger.NewNop(), 20*time.Millisecond)
	block := make(chan struct{})
	defer close(block)
	m.Register("stuck", Func(func() { <-block }))

	start := time.Now()
	m.Shutdown()
	assert.Less(t, time.Since(start), time.Second)
}
