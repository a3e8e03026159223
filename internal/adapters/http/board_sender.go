package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/ports"
)

// Request headers fixed by the board's remote control API.
const (
	keyHeader  = "X-Vestaboard-Read-Write-Key"
	testHeader = "X-Board-Test"
)

// BoardSender implements ports.BoardSender over HTTP.
// It serializes payloads and reports the endpoint's status code verbatim;
// interpreting that code is the dispatcher's job.
type BoardSender struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewBoardSender creates a new HTTP board sender.
func NewBoardSender(client ports.HTTPClient, logger ports.Logger) *BoardSender {
	return &BoardSender{
		client: client,
		logger: logger,
	}
}

// textPayload is the fallback request body: a short plain-text string
// instead of a grid.
type textPayload struct {
	Text string `json:"text"`
}

// SendGrid submits a full display update as the nested 6x22 numeric body.
func (s *BoardSender) SendGrid(ctx context.Context, grid board.Grid, meta ports.SendMetadata) (int, error) {
	body, err := json.Marshal(grid.Ints())
	if err != nil {
		return 0, fmt.Errorf("marshal grid: %w", err)
	}
	return s.post(ctx, body, meta)
}

// SendText submits the degraded plain-text fallback payload.
func (s *BoardSender) SendText(ctx context.Context, text string, meta ports.SendMetadata) (int, error) {
	body, err := json.Marshal(textPayload{Text: text})
	if err != nil {
		return 0, fmt.Errorf("marshal text: %w", err)
	}
	return s.post(ctx, body, meta)
}

func (s *BoardSender) post(ctx context.Context, body []byte, meta ports.SendMetadata) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, meta.BoardURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(keyHeader, meta.APIKey)
	if meta.Test {
		req.Header.Set(testHeader, "true")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the board's response body
	// carries nothing the dispatcher needs.
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug("board responded",
		ports.Int("status", resp.StatusCode),
		ports.Int("bytes", len(body)),
	)

	return resp.StatusCode, nil
}
