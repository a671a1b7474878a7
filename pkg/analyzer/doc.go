// Package analyzer orchestrates one analysis run: resolve the profile,
// stream its posts, aggregate engagement metrics, then ask the AI for an
// insight report. The AI stage is best-effort; everything before it is
// required and aborts the run with a stage-tagged error.
package analyzer
