// Package insight turns aggregated engagement data into an AI-generated
// report. BuildPrompt renders the request, GeminiClient sends it, and
// ParseReport splits the free-form Markdown answer into report fields.
// The model's output format is not guaranteed, so parsing never fails; at
// worst the whole response lands in the report's Summary.
package insight
