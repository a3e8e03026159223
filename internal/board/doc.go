// Package board contains the pure rendering pipeline for the split-flap
// display: character-to-code encoding, line formatting, header composition,
// grid assembly and the sanitize pass.
//
// Everything in this package is total and side-effect free. No function here
// ever returns an error: characters without a flap mapping become blanks,
// oversized input is truncated, malformed grids are coerced into shape. The
// display has no fallback glyph, so degrading silently beats rejecting a
// whole render request for one bad character.
//
// # Pipeline
//
//   - [Encode]: text -> symbol codes
//   - [FormatLine]: text + alignment -> one 22-wide Row
//   - [Header]: title + accent color -> a color-flanked Row
//   - [Assemble]: up to 6 Rows -> a Grid
//   - [Sanitize]: arbitrary numeric input -> a guaranteed-conformant Grid
//
// Sanitize is the sole gate before dispatch and is re-run even on grids the
// caller believes are already valid.
package board
