package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guikcd/sensu-plugins-aws/internal/models"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(outcome models.CheckOutcome) (string, error)
}

// PluginFormatter renders the Sensu/Nagios status line, e.g.
// "CRITICAL: ASG resources not found: ..." or "OK"
type PluginFormatter struct{}

// Format implements the Formatter interface for plugin output
func (f *PluginFormatter) Format(outcome models.CheckOutcome) (string, error) {
	return statusLine(outcome), nil
}

// JSONFormatter formats the outcome as a single-line JSON document
type JSONFormatter struct{}

type jsonOutcome struct {
	Status    string                   `json:"status"`
	ExitCode  int                      `json:"exitCode"`
	Output    string                   `json:"output"`
	Problems  []string                 `json:"problems"`
	Resources []models.FlaggedResource `json:"resources"`
	ErrorType string                   `json:"errorType,omitempty"`
}

// Format implements the Formatter interface for JSON output
func (f *JSONFormatter) Format(outcome models.CheckOutcome) (string, error) {
	doc := jsonOutcome{
		Status:    outcome.Status.String(),
		ExitCode:  outcome.Status.ExitCode(),
		Output:    statusLine(outcome),
		Problems:  outcome.Problems,
		Resources: outcome.Resources,
		ErrorType: outcome.ErrorType,
	}

	// Ensure we have non-nil slices for proper JSON serialization
	if doc.Problems == nil {
		doc.Problems = []string{}
	}
	if doc.Resources == nil {
		doc.Resources = []models.FlaggedResource{}
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(jsonData), nil
}

// statusLine builds "<SEVERITY>" or "<SEVERITY>: <message>" on a single line
func statusLine(outcome models.CheckOutcome) string {
	severity := outcome.Status.String()
	if outcome.Message == "" {
		return severity
	}
	return severity + ": " + escapeValue(outcome.Message)
}

// escapeValue keeps the monitoring output on one line
func escapeValue(value string) string {
	value = strings.ReplaceAll(value, "\r", "\\r")
	value = strings.ReplaceAll(value, "\n", "\\n")
	return value
}

// FormatterFactory creates a formatter based on the specified format
func FormatterFactory(format string) (Formatter, error) {
	switch format {
	case "plugin":
		return &PluginFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported formats: plugin, json)", format)
	}
}
