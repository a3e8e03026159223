package domain

import "fmt"

// ContentID identifies one piece of scheduled content, e.g. the results view
// for stage 12. It is the key the dispatch cache is indexed by.
type ContentID struct {
	// View is the view kind, e.g. "results", "standings", "message".
	View string

	// Stage is the numeric stage parameter; zero when the view has none.
	Stage int
}

// Key renders the identity as a stable string for cache lookups.
func (id ContentID) Key() string {
	return fmt.Sprintf("%s/%d", id.View, id.Stage)
}

// Line is one source line of text with its alignment policy. Align uses the
// board vocabulary ("left", "center", "right"); anything else means left.
type Line struct {
	Text  string `json:"text"`
	Align string `json:"align,omitempty"`
}

// Content is a render request's source material, already resolved into
// strings by the caller. The core never fetches or scrapes.
type Content struct {
	// Title becomes the accent-flanked header row. Empty means no header.
	Title string `json:"title,omitempty"`

	// Accent is the header color name ("red", "blue", ...).
	Accent string `json:"accent,omitempty"`

	// Lines are the body rows, top to bottom.
	Lines []Line `json:"lines"`
}

// Empty reports whether the content has nothing to show.
func (c Content) Empty() bool {
	return c.Title == "" && len(c.Lines) == 0
}
