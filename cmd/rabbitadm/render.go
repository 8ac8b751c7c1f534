package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type listJSONPayload[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

type doneJSONPayload struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
}

// renderList prints a list result as a table, or as JSON with --json.
func renderList[T any](cmd *cobra.Command, s *session, operation, noun string, result admin.Result[[]T], headers []string, row func(T) []string) error {
	if result.HasFaulted() {
		return faultedError(operation, "listing "+noun, result.Errors)
	}

	if s.flags.jsonOutput {
		items := result.Data
		if items == nil {
			items = []T{}
		}
		return writeJSON(cmd.OutOrStdout(), listJSONPayload[T]{Count: len(items), Items: items})
	}

	if !result.HasResult() {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s found.\n", noun)
		return nil
	}

	rows := make([][]string, 0, len(result.Data))
	for _, item := range result.Data {
		rows = append(rows, row(item))
	}
	return writeTable(cmd.OutOrStdout(), headers, rows)
}

// renderDone reports the outcome of an operation without a payload.
func renderDone(cmd *cobra.Command, s *session, operation, context string, result admin.Result[admin.Empty]) error {
	if result.HasFaulted() {
		return faultedError(operation, context, result.Errors)
	}

	if s.flags.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), doneJSONPayload{
			Status:     "ok",
			Operation:  operation,
			Method:     result.DebugInfo.Method,
			URL:        result.DebugInfo.URL,
			StatusCode: result.DebugInfo.StatusCode,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", okMarker(out), context)
	if s.flags.verbose {
		fmt.Fprintf(out, "  %s %s -> %d\n", result.DebugInfo.Method, result.DebugInfo.URL, result.DebugInfo.StatusCode)
	}
	return nil
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := strings.Join(headers, "\t")
	if supportsUnicode(w) {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(writer, header)

	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func okMarker(w io.Writer) string {
	if supportsUnicode(w) {
		return okStyle.Render("✓")
	}
	return "[OK]"
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
