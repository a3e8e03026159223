// Package spool watches a drop directory for message files written by
// external producers (the out-of-scope scheduler or scraper) and pushes
// them through the standard render pipeline. Processed files are renamed
// with a ".sent" suffix and swept after a retention window.
package spool

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/veloboard/flapship/internal/domain"
)

// sentSuffix marks files that have already been dispatched.
const sentSuffix = ".sent"

// Message is the TOML shape of one spooled render request.
type Message struct {
	View   string   `toml:"view"`
	Stage  int      `toml:"stage"`
	Title  string   `toml:"title"`
	Accent string   `toml:"accent"`
	Align  string   `toml:"align"`
	Lines  []string `toml:"lines"`
}

// ReadMessage parses a spool file into an identity and its content.
func ReadMessage(path string) (domain.ContentID, domain.Content, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ContentID{}, domain.Content{}, err
	}

	var m Message
	if err := toml.Unmarshal(b, &m); err != nil {
		return domain.ContentID{}, domain.Content{}, fmt.Errorf("parse message: %w", err)
	}

	id := domain.ContentID{View: m.View, Stage: m.Stage}
	if id.View == "" {
		id.View = "message"
	}

	content := domain.Content{
		Title:  m.Title,
		Accent: m.Accent,
	}
	for _, text := range m.Lines {
		content.Lines = append(content.Lines, domain.Line{Text: text, Align: m.Align})
	}

	if content.Empty() {
		return id, content, fmt.Errorf("read message: %w", domain.ErrNoContent)
	}
	return id, content, nil
}
