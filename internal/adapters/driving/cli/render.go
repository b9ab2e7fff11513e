package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

var (
	colourPrimary   = lipgloss.Color("#7C3AED") // Purple
	colourSecondary = lipgloss.Color("#06B6D4") // Cyan
	colourMuted     = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess   = lipgloss.Color("#A6E3A1") // Green
	colourError     = lipgloss.Color("#F38BA8") // Red

	entityStyle    = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	tagStyle       = lipgloss.NewStyle().Foreground(colourSecondary)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(colourMuted)
	highlightStyle = lipgloss.NewStyle().Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(colourSuccess)
	errorStyle     = lipgloss.NewStyle().Foreground(colourError)
)

// renderResults writes a human-readable view of a lookup batch.
// Documents are listed before pages.
func renderResults(w io.Writer, results []domain.LookupResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", entityStyle.Render(r.Entity.Value), mutedStyle.Render("("+r.Entity.Type+")"))

		if !r.HasResults() {
			fmt.Fprintf(w, "  %s\n", mutedStyle.Render("No results"))
			continue
		}

		tags := make([]string, len(r.Data.Summary))
		for j, tag := range r.Data.Summary {
			tags[j] = tagStyle.Render("[" + tag + "]")
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(tags, " "))

		renderSection(w, "Documents", r.Data.Details.Documents)
		renderSection(w, "Pages", r.Data.Details.Pages)
	}
}

func renderSection(w io.Writer, name string, items []domain.FormattedResult) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(w, "\n  %s\n", sectionStyle.Render(fmt.Sprintf("%s (%d)", name, len(items))))
	for _, item := range items {
		title := item.Title
		if !item.IsPage() && item.FileExtension != "" {
			title += "." + item.FileExtension
		}

		line := fmt.Sprintf("    [%s] %s", item.Icon, title)
		if item.SizeHumanReadable != "" {
			line += "  " + mutedStyle.Render(item.SizeHumanReadable)
		}
		fmt.Fprintln(w, line)

		if item.Path != "" {
			fmt.Fprintf(w, "      %s\n", mutedStyle.Render(item.Path))
		}
		if item.ContainingFolder != "" {
			fmt.Fprintf(w, "      %s %s\n", mutedStyle.Render("in"), item.ContainingFolder)
		}
		if item.HitHighlightedSummary != "" {
			fmt.Fprintf(w, "      %s\n", renderHighlights(item.HitHighlightedSummary))
		}
	}
}

// renderHighlights turns the formatted hit summary into terminal text.
func renderHighlights(summary string) string {
	summary = strings.ReplaceAll(summary, "&#8230;", "…")

	var b strings.Builder
	for {
		before, rest, found := strings.Cut(summary, "<strong>")
		b.WriteString(before)
		if !found {
			break
		}
		match, after, _ := strings.Cut(rest, "</strong>")
		b.WriteString(highlightStyle.Render(match))
		summary = after
	}
	return b.String()
}
