// Package report renders run reports as text, JSON, or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"sqlcoach/internal/domain"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ValidFormat reports whether name is a supported output format.
func ValidFormat(name string) bool {
	return name == FormatText || name == FormatJSON || name == FormatHTML
}

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// statusLabel is the fixed-width tag printed per result line.
var statusLabel = map[domain.Status]string{
	domain.StatusPass:  "PASS ",
	domain.StatusFail:  "FAIL ",
	domain.StatusError: "ERROR",
	domain.StatusSkip:  "SKIP ",
}

var statusColor = map[domain.Status]string{
	domain.StatusPass:  colorGreen,
	domain.StatusFail:  colorRed,
	domain.StatusError: colorRed,
	domain.StatusSkip:  colorYellow,
}

// WriteText renders the report as one line per exercise plus a summary.
// Colors are applied only when color is true (stdout is a terminal).
func WriteText(out io.Writer, rep *domain.Report, color bool) error {
	if _, err := fmt.Fprintf(out, "engine: %s\n", rep.Engine); err != nil {
		return err
	}

	for _, res := range rep.Results {
		label := statusLabel[res.Status]
		if color {
			label = statusColor[res.Status] + label + colorReset
		}
		line := fmt.Sprintf("%s %s (%s)", label, res.Exercise, res.Category)
		if res.Status == domain.StatusPass {
			line += fmt.Sprintf("  %s", res.Duration.Round(time.Millisecond))
		}
		if res.Message != "" {
			line += ": " + res.Message
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	s := rep.Summarize()
	_, err := fmt.Fprintf(out, "\n%d exercises: %d passed, %d failed, %d errors, %d skipped\n",
		s.Total, s.Pass, s.Fail, s.Error, s.Skip)
	return err
}

// jsonResult is the wire shape of one result.
type jsonResult struct {
	Exercise   string `json:"exercise"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type jsonSummary struct {
	Total  int `json:"total"`
	Pass   int `json:"pass"`
	Fail   int `json:"fail"`
	Errors int `json:"errors"`
	Skip   int `json:"skip"`
}

type jsonReport struct {
	Engine  string       `json:"engine"`
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(out io.Writer, rep *domain.Report) error {
	doc := jsonReport{Engine: rep.Engine, Results: make([]jsonResult, 0, len(rep.Results))}
	for _, res := range rep.Results {
		doc.Results = append(doc.Results, jsonResult{
			Exercise:   res.Exercise,
			Category:   string(res.Category),
			Status:     string(res.Status),
			Message:    res.Message,
			DurationMS: res.Duration.Milliseconds(),
		})
	}
	s := rep.Summarize()
	doc.Summary = jsonSummary{Total: s.Total, Pass: s.Pass, Fail: s.Fail, Errors: s.Error, Skip: s.Skip}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
