package app

import (
	"context"
	"errors"
	"testing"
	"time"

	logadapter "github.com/veloboard/flapship/internal/adapters/log"
	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/ports"
)

// fakeSender scripts board responses and records every call.
type fakeSender struct {
	gridStatus int
	gridErr    error
	textStatus int
	textErr    error

	gridCalls int
	textCalls int
	lastGrid  board.Grid
	lastText  string
	lastMeta  ports.SendMetadata
}

func (s *fakeSender) SendGrid(ctx context.Context, grid board.Grid, meta ports.SendMetadata) (int, error) {
	s.gridCalls++
	s.lastGrid = grid
	s.lastMeta = meta
	return s.gridStatus, s.gridErr
}

func (s *fakeSender) SendText(ctx context.Context, text string, meta ports.SendMetadata) (int, error) {
	s.textCalls++
	s.lastText = text
	s.lastMeta = meta
	return s.textStatus, s.textErr
}

func newTestDispatcher(sender *fakeSender, fallbackText string) *Dispatcher {
	gate := NewGate(16*time.Second, newFakeClock())
	meta := ports.SendMetadata{BoardURL: "http://board.local", APIKey: "key"}
	return NewDispatcher(gate, sender, meta, fallbackText, logadapter.NewNoopLogger())
}

func testGrid() board.Grid {
	return board.Assemble([]board.Row{board.FormatLine("HELLO", board.AlignLeft)})
}

func TestDispatchAccepted(t *testing.T) {
	sender := &fakeSender{gridStatus: 200}
	d := newTestDispatcher(sender, "")

	outcome, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if outcome.Status != domain.StatusAccepted {
		t.Fatalf("expected accepted, got %v", outcome.Status)
	}
	if sender.gridCalls != 1 || sender.textCalls != 0 {
		t.Fatalf("expected 1 grid call and 0 text calls, got %d/%d", sender.gridCalls, sender.textCalls)
	}
}

func TestDispatchUnchangedIsSuccess(t *testing.T) {
	sender := &fakeSender{gridStatus: 304}
	d := newTestDispatcher(sender, "")

	outcome, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if outcome.Status != domain.StatusUnchanged {
		t.Fatalf("expected unchanged, got %v", outcome.Status)
	}
	if !outcome.OK() {
		t.Fatal("unchanged must be success-flavored")
	}
}

func TestDispatchThrottledNoRetry(t *testing.T) {
	sender := &fakeSender{gridStatus: 503}
	d := newTestDispatcher(sender, "")

	_, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{})
	if !errors.Is(err, domain.ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}
	if sender.gridCalls != 1 || sender.textCalls != 0 {
		t.Fatalf("throttle must not be retried: %d grid calls, %d text calls", sender.gridCalls, sender.textCalls)
	}
}

func TestDispatchRejectedTriggersOneFallback(t *testing.T) {
	sender := &fakeSender{gridStatus: 400, textStatus: 200}
	d := newTestDispatcher(sender, "")

	outcome, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{Title: "STAGE 12", Stage: 12})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if outcome.Status != domain.StatusAccepted || !outcome.Fallback {
		t.Fatalf("expected accepted fallback outcome, got %+v", outcome)
	}
	if sender.gridCalls != 1 {
		t.Fatalf("expected exactly 1 grid call, got %d", sender.gridCalls)
	}
	if sender.textCalls != 1 {
		t.Fatalf("expected exactly 1 fallback call, got %d", sender.textCalls)
	}
	if sender.lastText != "STAGE 12 12" {
		t.Fatalf("unexpected fallback text %q", sender.lastText)
	}
}

func TestDispatchFallbackFailure(t *testing.T) {
	sender := &fakeSender{gridStatus: 400, textStatus: 500}
	d := newTestDispatcher(sender, "")

	_, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{Title: "RESULTS"})
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if sender.textCalls != 1 {
		t.Fatalf("fallback is one-shot, got %d text calls", sender.textCalls)
	}
}

func TestDispatchTestModeSkipsFallback(t *testing.T) {
	sender := &fakeSender{gridStatus: 400}
	d := newTestDispatcher(sender, "")

	_, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{Test: true})
	if err == nil {
		t.Fatal("expected an error for 400 in test mode")
	}
	if sender.textCalls != 0 {
		t.Fatalf("test dispatch must not fall back, got %d text calls", sender.textCalls)
	}
	if !sender.lastMeta.Test {
		t.Fatal("test flag must reach the sender")
	}
}

func TestDispatchTransportFailure(t *testing.T) {
	sender := &fakeSender{gridErr: errors.New("connection refused")}
	d := newTestDispatcher(sender, "")

	_, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if sender.textCalls != 0 {
		t.Fatal("transport failures do not fall back")
	}
}

func TestDispatchRejectsMalformedGridLocally(t *testing.T) {
	sender := &fakeSender{gridStatus: 200}
	d := newTestDispatcher(sender, "")

	grid := testGrid()
	grid[3][7] = 99

	_, err := d.Dispatch(context.Background(), grid, DispatchRequest{})
	if !errors.Is(err, domain.ErrMalformedGrid) {
		t.Fatalf("expected ErrMalformedGrid, got %v", err)
	}
	if sender.gridCalls != 0 {
		t.Fatalf("malformed grid must never reach the wire, got %d calls", sender.gridCalls)
	}
}

func TestDispatchCustomFallbackTemplate(t *testing.T) {
	sender := &fakeSender{gridStatus: 400, textStatus: 200}
	d := newTestDispatcher(sender, "NOW SHOWING {title}")

	_, err := d.Dispatch(context.Background(), testGrid(), DispatchRequest{Title: "STANDINGS", Stage: 3})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if sender.lastText != "NOW SHOWING STANDINGS" {
		t.Fatalf("unexpected fallback text %q", sender.lastText)
	}
}

func TestRenderFallbackOmitsZeroStage(t *testing.T) {
	got := renderFallback(DefaultFallbackText, DispatchRequest{Title: "RESULTS"})
	if got != "RESULTS" {
		t.Fatalf("zero stage should render empty, got %q", got)
	}
}
