package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/diagnosis"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: output format %q", common.ErrInvalidConfig, format)
	}
}

// RenderInterpretation writes a human-readable interpretation of a signal.
func RenderInterpretation(w io.Writer, sig model.RawSignal, interp model.Interpretation) error {
	style := StatusStyle(interp.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n",
		StatusIcon(interp.Status),
		style.Bold(true).Render(strings.ToUpper(string(interp.Status))),
		SubtleStyle.Render(fmt.Sprintf("severity: %s", interp.Severity)))
	fmt.Fprintf(&b, "%s\n\n", interp.Message)
	fmt.Fprintf(&b, "%s %s\n\n",
		BoldStyle.Render("Confidence:"),
		fmt.Sprintf("%s (%s)", interp.ConfidenceNarrative, interp.ConfidenceBand))

	b.WriteString(BoldStyle.Render("Recommendations") + "\n")
	for i, r := range interp.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, r)
	}
	b.WriteString("\n" + BoldStyle.Render("Actions") + "\n")
	for _, a := range interp.Actions {
		fmt.Fprintf(&b, "  • %s\n", a)
	}

	title := fmt.Sprintf("%s %q", ChickenIcon, sig.Label)
	if _, err := fmt.Fprintln(w, RenderBox(title, strings.TrimRight(b.String(), "\n"))); err != nil {
		return fmt.Errorf("failed to write interpretation: %w", err)
	}
	return nil
}

// RenderPredictionTable writes one row per stored prediction.
func RenderPredictionTable(w io.Writer, predictions []model.Prediction) error {
	if len(predictions) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No predictions recorded yet"))
		return err
	}

	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, []string{
			p.ID,
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(p.Signal.Label, 32),
			fmt.Sprintf("%.2f", p.Signal.Confidence),
			StatusStyle(p.Interpretation.Status).Render(string(p.Interpretation.Status)),
			string(p.Interpretation.Severity),
		})
	}

	return writeTable(w, []string{"ID", "WHEN", "LABEL", "CONF", "STATUS", "SEVERITY"}, rows)
}

// RenderDiseaseTable writes the disease reference list.
func RenderDiseaseTable(w io.Writer, refs []diagnosis.DiseaseReference) error {
	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{r.Keyword, r.CanonicalName, string(r.PathogenType), string(r.Urgency)})
	}
	return writeTable(w, []string{"KEYWORD", "DISEASE", "PATHOGEN", "URGENCY"}, rows)
}

// RenderStatusSummary writes per-status counts in fixed status order.
func RenderStatusSummary(w io.Writer, title string, counts map[model.Status]int) error {
	total := 0
	for _, n := range counts {
		total += n
	}

	var b strings.Builder
	for _, s := range model.Statuses() {
		fmt.Fprintf(&b, "%s %-9s %d\n", StatusIcon(s), StatusStyle(s).Render(string(s)), counts[s])
	}
	fmt.Fprintf(&b, "%s %d", BoldStyle.Render("Total:"), total)

	if _, err := fmt.Fprintln(w, RenderBox(ChartIcon+" "+title, b.String())); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var head strings.Builder
	for i, h := range header {
		head.WriteString(TableCellStyle.Render(pad(h, widths[i])))
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(head.String()))
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(TableCellStyle.Render(pad(cell, widths[i])))
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
