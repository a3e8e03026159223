package spool

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	logadapter "github.com/veloboard/flapship/internal/adapters/log"
	"github.com/veloboard/flapship/internal/domain"
)

// fakeRenderer records the order messages are dispatched in.
type fakeRenderer struct {
	ids []domain.ContentID
	err error
}

func (r *fakeRenderer) ShowContent(ctx context.Context, id domain.ContentID, content domain.Content) (domain.Outcome, error) {
	if r.err != nil {
		return domain.Outcome{}, r.err
	}
	r.ids = append(r.ids, id)
	return domain.Outcome{Status: domain.StatusAccepted}, nil
}

func TestScanProcessesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeMessage(t, dir, "20-second.toml", `view = "results"`+"\nstage = 2\nlines = [\"B\"]")
	writeMessage(t, dir, "10-first.toml", `view = "results"`+"\nstage = 1\nlines = [\"A\"]")

	renderer := &fakeRenderer{}
	w := NewWatcher(dir, renderer, logadapter.NewNoopLogger())
	w.Scan(context.Background())

	if len(renderer.ids) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(renderer.ids))
	}
	if renderer.ids[0].Stage != 1 || renderer.ids[1].Stage != 2 {
		t.Fatalf("expected name order, got %+v", renderer.ids)
	}

	// Processed files carry the sent suffix and are not picked up again.
	if _, err := os.Stat(filepath.Join(dir, "10-first.toml"+sentSuffix)); err != nil {
		t.Fatalf("expected sent marker: %v", err)
	}
	w.Scan(context.Background())
	if len(renderer.ids) != 2 {
		t.Fatalf("sent files must not be redelivered, got %d dispatches", len(renderer.ids))
	}
}

func TestScanSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeMessage(t, dir, "bad.toml", "lines = [unterminated")
	writeMessage(t, dir, "good.toml", `lines = ["HELLO"]`)

	renderer := &fakeRenderer{}
	w := NewWatcher(dir, renderer, logadapter.NewNoopLogger())
	w.Scan(context.Background())

	if len(renderer.ids) != 1 {
		t.Fatalf("expected only the good message, got %d dispatches", len(renderer.ids))
	}
	// The malformed file stays for the operator to inspect.
	if _, err := os.Stat(filepath.Join(dir, "bad.toml")); err != nil {
		t.Fatalf("malformed file should remain: %v", err)
	}
}

func TestScanLeavesFailedDispatches(t *testing.T) {
	dir := t.TempDir()
	writeMessage(t, dir, "msg.toml", `lines = ["HELLO"]`)

	renderer := &fakeRenderer{err: domain.ErrThrottled}
	w := NewWatcher(dir, renderer, logadapter.NewNoopLogger())
	w.Scan(context.Background())

	// Not renamed, so the next scan retries it.
	if _, err := os.Stat(filepath.Join(dir, "msg.toml")); err != nil {
		t.Fatalf("failed message should remain pending: %v", err)
	}
}

// slowRenderer counts dispatches while holding each one open, the way a
// dispatch sits behind the rate gate.
type slowRenderer struct {
	mu    sync.Mutex
	count int
	delay time.Duration
}

func (r *slowRenderer) ShowContent(ctx context.Context, id domain.ContentID, content domain.Content) (domain.Outcome, error) {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	time.Sleep(r.delay)
	return domain.Outcome{Status: domain.StatusAccepted}, nil
}

func TestConcurrentScansDispatchOnce(t *testing.T) {
	dir := t.TempDir()
	writeMessage(t, dir, "msg.toml", `lines = ["HELLO"]`)

	renderer := &slowRenderer{delay: 300 * time.Millisecond}
	w := NewWatcher(dir, renderer, logadapter.NewNoopLogger())

	// A second scan starting while the first is still dispatching must
	// wait its turn and then find the file already renamed.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Scan(context.Background())
		}()
	}
	wg.Wait()

	if renderer.count != 1 {
		t.Fatalf("message dispatched %d times, want exactly once", renderer.count)
	}
	if _, err := os.Stat(filepath.Join(dir, "msg.toml"+sentSuffix)); err != nil {
		t.Fatalf("expected sent marker: %v", err)
	}
}

func TestRunPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()

	renderer := &fakeRenderer{}
	w := NewWatcher(dir, renderer, logadapter.NewNoopLogger())
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeMessage(t, dir, "late.toml", `lines = ["HELLO"]`)

	deadline := time.After(3 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(dir, "late.toml"+sentSuffix)); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("watcher never processed the new file")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
