package authoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSaver struct {
	mu      sync.Mutex
	calls   int
	lastLen int
	err     error
	block   chan struct{} // when set, SaveItems waits until closed
}

func (f *fakeSaver) SaveItems(_ context.Context, _ string, items []Item) error {
	f.mu.Lock()
	f.calls++
	f.lastLen = len(items)
	block := f.block
	err := f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return err
}

func TestSaveCoordinator_SuccessThenAutoRevert(t *testing.T) {
	fs := &fakeSaver{}
	c := NewSaveCoordinator(fs, 20*time.Millisecond)

	if st, _ := c.State(); st != SaveIdle {
		t.Fatalf("expected idle, got %s", st)
	}
	if err := c.Save(context.Background(), "sess-1", []Item{{}, {}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if st, _ := c.State(); st != SaveSuccess {
		t.Fatalf("expected success, got %s", st)
	}
	if fs.lastLen != 2 {
		t.Fatalf("saver must receive the full list")
	}

	deadline := time.Now().Add(time.Second)
	for {
		if st, _ := c.State(); st == SaveIdle {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("success state never reverted to idle")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSaveCoordinator_ErrorSurfacedAndRetryable(t *testing.T) {
	boom := errors.New("backend down")
	fs := &fakeSaver{err: boom}
	c := NewSaveCoordinator(fs, time.Minute)

	items := []Item{{}}
	if err := c.Save(context.Background(), "sess-1", items); !errors.Is(err, boom) {
		t.Fatalf("expected save failure, got %v", err)
	}
	st, lastErr := c.State()
	if st != SaveError || !errors.Is(lastErr, boom) {
		t.Fatalf("expected error state carrying the failure, got %s/%v", st, lastErr)
	}

	// retry with the identical list must reach the saver again
	fs.err = nil
	if err := c.Save(context.Background(), "sess-1", items); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if fs.calls != 2 {
		t.Fatalf("expected 2 saver calls, got %d", fs.calls)
	}
	if st, _ := c.State(); st != SaveSuccess {
		t.Fatalf("expected success after retry, got %s", st)
	}
}

func TestSaveCoordinator_RefusesConcurrentSaves(t *testing.T) {
	fs := &fakeSaver{block: make(chan struct{})}
	c := NewSaveCoordinator(fs, time.Minute)

	done := make(chan error, 1)
	go func() { done <- c.Save(context.Background(), "sess-1", nil) }()

	// wait until the first save is in flight
	deadline := time.Now().Add(time.Second)
	for {
		if st, _ := c.State(); st == SaveSaving {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first save never reached the saving state")
		}
		time.Sleep(time.Millisecond)
	}

	if err := c.Save(context.Background(), "sess-1", nil); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}

	close(fs.block)
	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
	if fs.calls != 1 {
		t.Fatalf("in-flight guard leaked a second saver call")
	}
}
