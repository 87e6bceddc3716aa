// Package viz renders render-time feedback in the terminal.
//
//   - [StatusLine] and [Watch]: the plain progress line, refreshed on an
//     interval while workers run
//   - [RunProgress]: the same information as a Bubble Tea program
//   - [Preview]: a Braille thumbnail of a finished canvas
//   - [SummaryTable]: per-pole shares of a canvas
//
// Nothing here touches the numeric result; progress is read from the
// atomic counter the workers bump.
package viz
