package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestStartEmptySpecDisabled(t *testing.T) {
	s := New()
	s.SetExportFunction(func(context.Context) error { return nil })
	if err := s.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("expected scheduler to stay stopped")
	}
	s.Stop()
}

func TestStartWithoutFunction(t *testing.T) {
	s := New()
	if err := s.Start("@every 1m"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("expected scheduler to stay stopped")
	}
}

func TestStartInvalidSpec(t *testing.T) {
	s := New()
	s.SetExportFunction(func(context.Context) error { return nil })
	if err := s.Start("every now and then"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if s.IsRunning() {
		t.Fatal("expected scheduler to stay stopped")
	}
}

func TestExportRuns(t *testing.T) {
	s := New()
	calls := make(chan struct{}, 4)
	s.SetExportFunction(func(ctx context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	})
	if err := s.Start("@every 1s"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()
	if !s.IsRunning() {
		t.Fatal("expected scheduler to run")
	}

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("export did not run")
	}
}
