package observability

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNewShutdownManager(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{
			name:            "with custom timeout",
			timeout:         10 * time.Second,
			expectedTimeout: 10 * time.Second,
		},
		{
			name:            "with zero timeout uses default",
			timeout:         0,
			expectedTimeout: 30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(InfoLevel, &bytes.Buffer{})
			server := &http.Server{}

			sm := NewShutdownManager(logger, server, tt.timeout)
			if sm.shutdownTimeout != tt.expectedTimeout {
				t.Errorf("Expected timeout %v, got %v", tt.expectedTimeout, sm.shutdownTimeout)
			}
		})
	}
}

func TestShutdownRunsRegisteredFuncs(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, time.Second)

	var called []int
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		called = append(called, 1)
		return nil
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		called = append(called, 2)
		return nil
	})

	if err := sm.shutdown(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(called) != 2 {
		t.Errorf("Expected 2 shutdown funcs to run, got %d", len(called))
	}
}

func TestShutdownReportsErrors(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, time.Second)

	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		return errors.New("close failed")
	})

	if err := sm.shutdown(context.Background()); err == nil {
		t.Error("Expected an error when a shutdown func fails")
	}
}

func TestShutdownDrainsServer(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	server := &http.Server{Addr: "127.0.0.1:0"}

	sm := NewShutdownManager(logger, server, time.Second)
	if err := sm.shutdown(context.Background()); err != nil {
		t.Fatalf("Shutting down an unstarted server should succeed, got %v", err)
	}
}
