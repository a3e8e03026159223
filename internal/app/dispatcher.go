package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/ports"
)

// DefaultFallbackText is the template for the degraded plain-text payload
// sent after a 400. The board's interpretation of free text is not pinned
// down anywhere authoritative, so the format stays configurable.
const DefaultFallbackText = "{title} {stage}"

// DispatchRequest carries per-dispatch context: the identity behind the
// grid (used when building fallback text) and the test flag.
type DispatchRequest struct {
	Title string
	Stage int

	// Test marks a test dispatch: flagged to the endpoint, 400 fallback
	// disabled.
	Test bool
}

// Dispatcher owns the transmission protocol: rate gate, defensive re-check,
// submission, response classification and the one-shot text fallback.
type Dispatcher struct {
	gate     *Gate
	sender   ports.BoardSender
	logger   ports.Logger
	meta     ports.SendMetadata
	fallback string
}

// NewDispatcher creates a dispatcher. fallbackText is the template for the
// 400 fallback payload; empty means DefaultFallbackText.
func NewDispatcher(gate *Gate, sender ports.BoardSender, meta ports.SendMetadata, fallbackText string, logger ports.Logger) *Dispatcher {
	if fallbackText == "" {
		fallbackText = DefaultFallbackText
	}
	return &Dispatcher{
		gate:     gate,
		sender:   sender,
		logger:   logger,
		meta:     meta,
		fallback: fallbackText,
	}
}

// Dispatch transmits one grid to the board.
//
// The grid is re-checked locally before any network contact; a grid that
// somehow bypassed the sanitize gate is rejected with domain.ErrMalformedGrid
// and zero HTTP calls. Response classification:
//
//	2xx  accepted
//	304  unchanged (success-flavored: the board already shows this content)
//	503  the board throttled us; fail without retry
//	400  payload rejected; one-shot plain-text fallback unless a test dispatch
//	else transport failure, surfaced as-is
func (d *Dispatcher) Dispatch(ctx context.Context, grid board.Grid, req DispatchRequest) (domain.Outcome, error) {
	if err := d.gate.Acquire(ctx); err != nil {
		return domain.Outcome{}, err
	}

	if err := checkGrid(grid); err != nil {
		return domain.Outcome{}, err
	}

	meta := d.meta
	meta.Test = meta.Test || req.Test

	status, err := d.sender.SendGrid(ctx, grid, meta)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("send grid: %w", err)
	}

	switch {
	case status/100 == 2:
		d.logger.Info("grid accepted", ports.Int("status", status))
		return domain.Outcome{Status: domain.StatusAccepted}, nil

	case status == 304:
		d.logger.Info("grid unchanged")
		return domain.Outcome{Status: domain.StatusUnchanged}, nil

	case status == 503:
		d.logger.Warn("board throttled the dispatch")
		return domain.Outcome{}, domain.ErrThrottled

	case status == 400 && !meta.Test:
		d.logger.Warn("grid rejected, attempting text fallback")
		return d.dispatchFallback(ctx, meta, req)

	default:
		return domain.Outcome{}, fmt.Errorf("board returned status %d", status)
	}
}

// dispatchFallback sends the degraded plain-text payload. Attempted at most
// once per dispatch, and it re-acquires the gate like any other call.
func (d *Dispatcher) dispatchFallback(ctx context.Context, meta ports.SendMetadata, req DispatchRequest) (domain.Outcome, error) {
	if err := d.gate.Acquire(ctx); err != nil {
		return domain.Outcome{}, err
	}

	text := renderFallback(d.fallback, req)

	status, err := d.sender.SendText(ctx, text, meta)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("%w: fallback failed: %v", domain.ErrRejected, err)
	}
	if status/100 != 2 {
		return domain.Outcome{}, fmt.Errorf("%w: fallback returned status %d", domain.ErrRejected, status)
	}

	d.logger.Info("text fallback accepted")
	return domain.Outcome{Status: domain.StatusAccepted, Fallback: true}, nil
}

// checkGrid verifies every code is in range. Dimensions cannot be wrong on
// a board.Grid value, so range is the only thing left to defend against a
// caller that bypassed Sanitize.
func checkGrid(grid board.Grid) error {
	for i, row := range grid {
		for j, c := range row {
			if c < 0 || c > board.MaxCode {
				return fmt.Errorf("%w: code %d at row %d col %d", domain.ErrMalformedGrid, c, i, j)
			}
		}
	}
	return nil
}

// renderFallback resolves the {title} and {stage} placeholders. A stage of
// zero renders as empty rather than "0".
func renderFallback(tmpl string, req DispatchRequest) string {
	stage := ""
	if req.Stage != 0 {
		stage = strconv.Itoa(req.Stage)
	}
	text := strings.NewReplacer("{title}", req.Title, "{stage}", stage).Replace(tmpl)
	return strings.TrimSpace(text)
}
