package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

// ConsoleFormatter renders an aligned plain-text report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "INDONESIAN TAX CALCULATION")
	if results.Metadata.Period != "" {
		fmt.Fprintf(&buf, "Rate tables: %s (%s)\n", results.Metadata.Period, results.Metadata.Description)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	for i, s := range DescribeAll(results) {
		fmt.Fprintln(&buf)
		writeSection(&buf, i+1, s)
	}

	if failed := results.FailedCount(); failed > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%d of %d computations were rejected\n", failed, len(results.Outcomes))
	}
	return buf.Bytes(), nil
}

func writeSection(buf *bytes.Buffer, n int, s Section) {
	heading := fmt.Sprintf("%d. %s - %s", n, s.Name, s.Title)
	fmt.Fprintln(buf, heading)
	fmt.Fprintln(buf, strings.Repeat("-", len(heading)))
	if s.Error != "" {
		fmt.Fprintf(buf, "  REJECTED: %s\n", s.Error)
		return
	}

	width := 0
	for _, l := range s.Lines {
		if len(l.Label) > width {
			width = len(l.Label)
		}
	}
	for _, l := range s.Lines {
		marker := " "
		if l.Emphasis {
			marker = "*"
		}
		fmt.Fprintf(buf, " %s %-*s  %s\n", marker, width, l.Label, l.Display())
	}
	for _, note := range s.Notes {
		fmt.Fprintf(buf, "  Note: %s\n", note)
	}
}
