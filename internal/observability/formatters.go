// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/lead-enricher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the normalized profile.
func (p *Printer) PrintProfile(profile *types.NormalizedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	if profile.FullName != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.FullName))
	} else if profile.FirstName != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s %s\n", profile.FirstName, profile.LastName))
	}
	if profile.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.Title))
	}
	if profile.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CompanyName))
	}
	if profile.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	}
	if profile.EmployeeCount != nil {
		sb.WriteString(fmt.Sprintf("Size:     %d employees\n", *profile.EmployeeCount))
	} else if profile.CompanySize != "" {
		sb.WriteString(fmt.Sprintf("Size:     %s\n", profile.CompanySize))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Quality Score: %.2f\n", profile.DataQualityScore))

	if len(profile.DataSources) > 0 {
		sb.WriteString("Sources:\n")
		count := min(len(profile.DataSources), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.DataSources[i]))
		}
		if len(profile.DataSources) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.DataSources)-maxItemsToShow))
		}
	}

	p.printBox("NORMALIZED PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintNews outputs a summary of the aggregated company news signal.
func (p *Printer) PrintNews(news *types.CompanyNews) {
	if news == nil || len(news.Articles) == 0 {
		return
	}

	var sb strings.Builder

	if len(news.Themes) > 0 {
		sb.WriteString(fmt.Sprintf("Themes: %s\n\n", strings.Join(news.Themes, ", ")))
	}

	count := min(len(news.Articles), maxItemsToShow)
	for i := 0; i < count; i++ {
		article := news.Articles[i]
		sb.WriteString(fmt.Sprintf("  • %s\n", article.Title))
		if article.Source != "" {
			sb.WriteString(fmt.Sprintf("    (%s)\n", article.Source))
		}
	}
	if len(news.Articles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(news.Articles)-maxItemsToShow))
	}

	p.printBox("COMPANY NEWS", strings.TrimRight(sb.String(), "\n"))
}

// PrintCopy outputs the generated personalization copy.
func (p *Printer) PrintCopy(record *types.FinalizedRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Intro Hook:\n")
	sb.WriteString(wrapIndent(record.PersonalizationIntro, boxWidth-8))
	sb.WriteString("\nCTA:\n")
	sb.WriteString(wrapIndent(record.PersonalizationCTA, boxWidth-8))

	p.printBox("PERSONALIZED COPY", strings.TrimRight(sb.String(), "\n"))
}

// wrapIndent wraps text to the given width with a two-space indent.
func wrapIndent(text string, width int) string {
	if width < 10 {
		width = 10
	}

	var sb strings.Builder
	line := "  "
	for _, word := range strings.Fields(text) {
		if len(line)+len(word)+1 > width && line != "  " {
			sb.WriteString(line + "\n")
			line = "  "
		}
		if line != "  " {
			line += " "
		}
		line += word
	}
	if strings.TrimSpace(line) != "" {
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
